package types

import "github.com/zeu5/rl-sorting/sorting"

// Trace of an episode as tuples (observation, action, reward, nextObservation)
type Trace struct {
	observations     []sorting.Observation
	actions          []sorting.Action
	rewards          []int
	nextObservations []sorting.Observation
}

func NewTrace() *Trace {
	return &Trace{
		observations:     make([]sorting.Observation, 0),
		actions:          make([]sorting.Action, 0),
		rewards:          make([]int, 0),
		nextObservations: make([]sorting.Observation, 0),
	}
}

func (t *Trace) Slice(from, to int) *Trace {
	slicedTrace := NewTrace()
	for i := from; i < to; i++ {
		slicedTrace.Append(t.observations[i], t.actions[i], t.rewards[i], t.nextObservations[i])
	}
	return slicedTrace
}

func (t *Trace) Append(obs sorting.Observation, action sorting.Action, reward int, nextObs sorting.Observation) {
	t.observations = append(t.observations, obs)
	t.actions = append(t.actions, action)
	t.rewards = append(t.rewards, reward)
	t.nextObservations = append(t.nextObservations, nextObs)
}

func (t *Trace) Len() int {
	return len(t.observations)
}

func (t *Trace) Get(i int) (sorting.Observation, sorting.Action, int, sorting.Observation, bool) {
	if i < 0 || i >= len(t.observations) {
		return 0, sorting.NoOp, 0, 0, false
	}
	return t.observations[i], t.actions[i], t.rewards[i], t.nextObservations[i], true
}

func (t *Trace) Last() (sorting.Observation, sorting.Action, int, sorting.Observation, bool) {
	return t.Get(len(t.observations) - 1)
}

// Actions taken in the episode, in order
func (t *Trace) Actions() []sorting.Action {
	out := make([]sorting.Action, len(t.actions))
	copy(out, t.actions)
	return out
}

// TotalReward sums the rewards collected in the episode
func (t *Trace) TotalReward() int {
	total := 0
	for _, r := range t.rewards {
		total += r
	}
	return total
}

// Solved is true when the episode ended with TERMINATE on a sorted list
func (t *Trace) Solved() bool {
	_, a, r, _, ok := t.Last()
	return ok && a == sorting.Terminate && r == sorting.RewardSorted
}
