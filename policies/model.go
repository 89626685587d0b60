package policies

import (
	"github.com/zeu5/rl-sorting/sorting"
	"github.com/zeu5/rl-sorting/util"
)

// StateAction keys the frequency tables
type StateAction struct {
	Observation sorting.Observation
	Action      sorting.Action
}

// Outcomes are the empirical distributions observed after taking an action in a state
type Outcomes struct {
	Rewards *util.MultiSet[int]
	Next    *util.MultiSet[sorting.Observation]
}

func newOutcomes() *Outcomes {
	return &Outcomes{
		Rewards: util.NewMultiSet[int](),
		Next:    util.NewMultiSet[sorting.Observation](),
	}
}

// DynamicsModel records how often each (state, action) produced each reward and next state
type DynamicsModel struct {
	outcomes map[StateAction]*Outcomes
	visits   map[StateAction]int
	keys     []StateAction
}

func NewDynamicsModel() *DynamicsModel {
	return &DynamicsModel{
		outcomes: make(map[StateAction]*Outcomes),
		visits:   make(map[StateAction]int),
		keys:     make([]StateAction, 0),
	}
}

func (m *DynamicsModel) get(key StateAction) *Outcomes {
	o, ok := m.outcomes[key]
	if !ok {
		o = newOutcomes()
		m.outcomes[key] = o
		m.keys = append(m.keys, key)
	}
	return o
}

// Observe records one transition and returns the updated visit count of (state, action)
func (m *DynamicsModel) Observe(state sorting.Observation, action sorting.Action, reward int, next sorting.Observation) int {
	key := StateAction{Observation: state, Action: action}
	o := m.get(key)
	o.Rewards.Add(reward)
	o.Next.Add(next)
	m.visits[key] += 1
	return m.visits[key]
}

func (m *DynamicsModel) Visits(state sorting.Observation, action sorting.Action) int {
	return m.visits[StateAction{Observation: state, Action: action}]
}

// Outcomes returns the recorded distributions of (state, action), false if never visited
func (m *DynamicsModel) Outcomes(state sorting.Observation, action sorting.Action) (*Outcomes, bool) {
	o, ok := m.outcomes[StateAction{Observation: state, Action: action}]
	return o, ok
}

// ExpectedReward is the empirical mean immediate reward of (state, action)
func (m *DynamicsModel) ExpectedReward(state sorting.Observation, action sorting.Action) float64 {
	key := StateAction{Observation: state, Action: action}
	visits := m.visits[key]
	o, ok := m.outcomes[key]
	if !ok || visits == 0 {
		return 0
	}
	norm := 1.0 / float64(visits)
	expected := 0.0
	o.Rewards.Each(func(r, count int) {
		expected += float64(count) * norm * float64(r)
	})
	return expected
}

// ExpectedValue is the empirical expectation of value(next) over the next states of (state, action)
func (m *DynamicsModel) ExpectedValue(state sorting.Observation, action sorting.Action, value func(sorting.Observation) float64) float64 {
	key := StateAction{Observation: state, Action: action}
	visits := m.visits[key]
	o, ok := m.outcomes[key]
	if !ok || visits == 0 {
		return 0
	}
	norm := 1.0 / float64(visits)
	expected := 0.0
	o.Next.Each(func(next sorting.Observation, count int) {
		expected += float64(count) * norm * value(next)
	})
	return expected
}

// Keys lists the visited (state, action) pairs in the order they were first observed
func (m *DynamicsModel) Keys() []StateAction {
	out := make([]StateAction, len(m.keys))
	copy(out, m.keys)
	return out
}

// Merge adds the counts of other into m.
// Used to combine tables collected by independent workers.
func (m *DynamicsModel) Merge(other *DynamicsModel) {
	for _, key := range other.keys {
		o := m.get(key)
		oo := other.outcomes[key]
		o.Rewards.Merge(oo.Rewards)
		o.Next.Merge(oo.Next)
		m.visits[key] += other.visits[key]
	}
}
