package types

import (
	"github.com/zeu5/rl-sorting/sorting"
	"golang.org/x/exp/rand"
)

type Policy interface {
	// NextAction picks the action to take from the observation, false to stop the episode
	NextAction(int, sorting.Observation) (sorting.Action, bool)
	// Update is called after every transition (step, obs, action, reward, nextObs)
	Update(int, sorting.Observation, sorting.Action, int, sorting.Observation)
	// UpdateIteration is called at the end of each episode with its trace
	UpdateIteration(int, *Trace)
	Reset()
}

// RandomPolicy picks uniformly among the selectable actions and never learns
type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomPolicy) Reset() {

}

func (r *RandomPolicy) UpdateIteration(_ int, _ *Trace) {

}

func (r *RandomPolicy) NextAction(_ int, _ sorting.Observation) (sorting.Action, bool) {
	i := r.rand.Intn(len(sorting.SelectableActions))
	return sorting.SelectableActions[i], true
}

func (r *RandomPolicy) Update(_ int, _ sorting.Observation, _ sorting.Action, _ int, _ sorting.Observation) {
}
