package sorting

import "errors"

var (
	// ErrInvalidAction is returned when stepping with NOOP or an id outside 0..8
	ErrInvalidAction = errors.New("invalid action")

	// ErrEpisodeDone is returned when stepping after TERMINATE without a Reset
	ErrEpisodeDone = errors.New("episode already terminated")

	ErrEmptyList     = errors.New("list must not be empty")
	ErrNegativeValue = errors.New("list values must be non-negative")
)
