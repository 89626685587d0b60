package policies

import (
	"github.com/zeu5/rl-sorting/sorting"
	"github.com/zeu5/rl-sorting/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// ModelBasedPolicy is an epsilon-greedy tabular learner.
// Every transition updates the empirical dynamics model and then backs up
// Q(s,a) with the expectation over all rewards and next states observed so far:
//
//	Q(s,a) <- (1-alpha) Q(s,a) + alpha (E[r|s,a] + gamma E[max Q(s',.)|s,a]),  alpha = 1/visits(s,a)
type ModelBasedPolicy struct {
	qTable  *QTable
	model   *DynamicsModel
	epsilon float64
	gamma   float64
	rand    *rand.Rand
}

var _ types.Policy = &ModelBasedPolicy{}

func NewModelBasedPolicy(epsilon, gamma float64, seed uint64) *ModelBasedPolicy {
	return &ModelBasedPolicy{
		qTable:  NewQTable(),
		model:   NewDynamicsModel(),
		epsilon: epsilon,
		gamma:   gamma,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

func (m *ModelBasedPolicy) Reset() {
	m.qTable = NewQTable()
	m.model = NewDynamicsModel()
}

func (m *ModelBasedPolicy) QTable() *QTable {
	return m.qTable
}

func (m *ModelBasedPolicy) Model() *DynamicsModel {
	return m.model
}

// Greedy returns the greedy policy over the current Q-table, sharing its random source
func (m *ModelBasedPolicy) Greedy() *GreedyPolicy {
	return &GreedyPolicy{
		qTable: m.qTable,
		rand:   m.rand,
	}
}

// NextAction explores uniformly on a cold start (last action NOOP), when the state
// is unvisited or its best value is negative, and with probability epsilon.
// Otherwise it exploits the best known action.
func (m *ModelBasedPolicy) NextAction(_ int, obs sorting.Observation) (sorting.Action, bool) {
	if obs.LastAction() == sorting.NoOp {
		return randomAction(m.rand), true
	}
	action, val, ok := m.qTable.Max(obs)
	if !ok || val < 0 {
		return randomAction(m.rand), true
	}
	if m.rand.Float64() < m.epsilon {
		return randomAction(m.rand), true
	}
	return action, true
}

func (m *ModelBasedPolicy) Update(_ int, obs sorting.Observation, action sorting.Action, reward int, next sorting.Observation) {
	visits := m.model.Observe(obs, action, reward, next)
	alpha := 1 / float64(visits)

	expReward := m.model.ExpectedReward(obs, action)
	expNext := m.model.ExpectedValue(obs, action, func(s sorting.Observation) float64 {
		return m.qTable.MaxValue(s, 0)
	})

	curVal := m.qTable.Get(obs, action, 0)
	newVal := (1-alpha)*curVal + alpha*(expReward+m.gamma*expNext)
	m.qTable.Set(obs, action, newVal)
}

func (m *ModelBasedPolicy) UpdateIteration(_ int, _ *types.Trace) {

}

// uniform weights over the selectable actions
var uniformWeights = func() []float64 {
	w := make([]float64, len(sorting.SelectableActions))
	for i := range w {
		w[i] = 1
	}
	return w
}()

// randomAction draws uniformly among the selectable actions (NOOP excluded)
func randomAction(src *rand.Rand) sorting.Action {
	w := sampleuv.NewWeighted(uniformWeights, src)
	i, _ := w.Take()
	return sorting.SelectableActions[i]
}
