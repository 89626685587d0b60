package types

import "github.com/zeu5/rl-sorting/sorting"

// Environment that RL policies interact with.
// Observations, actions and rewards follow the sorting surface:
// observation codes in [0, 4607], action ids 0..8, integer rewards.
type Environment interface {
	// Reset called at the start of each episode
	Reset() sorting.Observation
	// Step applies one action, returns next observation, reward and whether the episode ended
	Step(sorting.Action) (sorting.Observation, int, bool, error)
	// List contents at this point of the episode
	List() []int
}

// EnvironmentFactory produces an environment bound to an initial list
type EnvironmentFactory func([]int) (Environment, error)

// SortingFactory builds sorting environments
func SortingFactory() EnvironmentFactory {
	return func(list []int) (Environment, error) {
		env, err := sorting.NewEnvironment(list)
		if err != nil {
			return nil, err
		}
		return env, nil
	}
}

var _ Environment = &sorting.Environment{}
