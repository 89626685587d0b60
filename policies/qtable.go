package policies

import (
	"math"

	"github.com/zeu5/rl-sorting/sorting"
)

// ActionValue is a single entry of the Q-table
type ActionValue struct {
	Action sorting.Action `json:"action"`
	Value  float64        `json:"value"`
}

// actions are kept in the order they were first set so that Max breaks ties
// in favour of the earliest inserted action
type actionValues struct {
	order  []sorting.Action
	values map[sorting.Action]float64
}

// QTable maps an observation to the estimated value of each visited action.
// It only grows.
type QTable struct {
	table  map[sorting.Observation]*actionValues
	states []sorting.Observation
}

func NewQTable() *QTable {
	return &QTable{
		table:  make(map[sorting.Observation]*actionValues),
		states: make([]sorting.Observation, 0),
	}
}

// Get returns the value of (state, action) or def when it has not been set
func (q *QTable) Get(state sorting.Observation, action sorting.Action, def float64) float64 {
	av, ok := q.table[state]
	if !ok {
		return def
	}
	val, ok := av.values[action]
	if !ok {
		return def
	}
	return val
}

func (q *QTable) Has(state sorting.Observation, action sorting.Action) bool {
	av, ok := q.table[state]
	if !ok {
		return false
	}
	_, ok = av.values[action]
	return ok
}

func (q *QTable) Set(state sorting.Observation, action sorting.Action, val float64) {
	av, ok := q.table[state]
	if !ok {
		av = &actionValues{
			order:  make([]sorting.Action, 0, len(sorting.SelectableActions)),
			values: make(map[sorting.Action]float64),
		}
		q.table[state] = av
		q.states = append(q.states, state)
	}
	if _, ok := av.values[action]; !ok {
		av.order = append(av.order, action)
	}
	av.values[action] = val
}

func (q *QTable) HasState(state sorting.Observation) bool {
	_, ok := q.table[state]
	return ok
}

// Max returns the best action for the state, false if no action has a value yet
func (q *QTable) Max(state sorting.Observation) (sorting.Action, float64, bool) {
	av, ok := q.table[state]
	if !ok || len(av.order) == 0 {
		return sorting.NoOp, 0, false
	}
	maxAction := sorting.NoOp
	maxVal := math.Inf(-1)
	for _, a := range av.order {
		if val := av.values[a]; val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	return maxAction, maxVal, true
}

// MaxValue returns the best value for the state or def when the state is unknown
func (q *QTable) MaxValue(state sorting.Observation, def float64) float64 {
	_, val, ok := q.Max(state)
	if !ok {
		return def
	}
	return val
}

// Values lists the entries of a state in insertion order
func (q *QTable) Values(state sorting.Observation) []ActionValue {
	av, ok := q.table[state]
	if !ok {
		return []ActionValue{}
	}
	out := make([]ActionValue, len(av.order))
	for i, a := range av.order {
		out[i] = ActionValue{Action: a, Value: av.values[a]}
	}
	return out
}

// States lists the observations with at least one entry, in insertion order
func (q *QTable) States() []sorting.Observation {
	out := make([]sorting.Observation, len(q.states))
	copy(out, q.states)
	return out
}

// Len is the number of (state, action) entries
func (q *QTable) Len() int {
	total := 0
	for _, av := range q.table {
		total += len(av.order)
	}
	return total
}
