package curriculum

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid training configuration")

// Config of a curriculum training run
type Config struct {
	Length int // length of the permutations to train on
	Epochs int // epoch budget

	Passes      int // learning passes over the working slice per epoch
	Horizon     int // iteration bound of a learning episode
	EvalHorizon int // iteration bound of a greedy evaluation

	Epsilon float64
	Gamma   float64
	Seed    uint64

	// number of permutations the working slice starts with, 0 for the whole training set
	InitialSubset int
}

// DefaultConfig returns the configuration used by the command line for lists of the given length
func DefaultConfig(length int) Config {
	return Config{
		Length:      length,
		Epochs:      10000,
		Passes:      1,
		Horizon:     100,
		EvalHorizon: 100,
		Epsilon:     0.1,
		Gamma:       0.9,
		Seed:        0,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig(c.Length)
	if c.Passes == 0 {
		c.Passes = def.Passes
	}
	if c.Horizon == 0 {
		c.Horizon = def.Horizon
	}
	if c.EvalHorizon == 0 {
		c.EvalHorizon = c.Horizon
	}
	return c
}

func (c Config) validate() error {
	switch {
	case c.Length < 2:
		return fmt.Errorf("%w: length %d leaves no unsorted permutation", ErrInvalidConfig, c.Length)
	case c.Epochs < 1:
		return fmt.Errorf("%w: epochs must be positive", ErrInvalidConfig)
	case c.Passes < 1 || c.Horizon < 1 || c.EvalHorizon < 1:
		return fmt.Errorf("%w: passes and horizons must be positive", ErrInvalidConfig)
	case c.Epsilon < 0 || c.Epsilon > 1:
		return fmt.Errorf("%w: epsilon %f outside [0, 1]", ErrInvalidConfig, c.Epsilon)
	case c.Gamma < 0 || c.Gamma > 1:
		return fmt.Errorf("%w: gamma %f outside [0, 1]", ErrInvalidConfig, c.Gamma)
	case c.InitialSubset < 0:
		return fmt.Errorf("%w: negative initial subset", ErrInvalidConfig)
	}
	return nil
}
