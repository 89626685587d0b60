package policies

import (
	"github.com/zeu5/rl-sorting/sorting"
	"github.com/zeu5/rl-sorting/types"
	"golang.org/x/exp/rand"
)

// GreedyPolicy always takes the best valued action, no exploration.
// Observations without any value fall back to a uniform random action.
type GreedyPolicy struct {
	qTable *QTable
	rand   *rand.Rand
}

var _ types.Policy = &GreedyPolicy{}

func NewGreedyPolicy(qTable *QTable, seed uint64) *GreedyPolicy {
	return &GreedyPolicy{
		qTable: qTable,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

func (g *GreedyPolicy) QTable() *QTable {
	return g.qTable
}

func (g *GreedyPolicy) NextAction(_ int, obs sorting.Observation) (sorting.Action, bool) {
	action, _, ok := g.qTable.Max(obs)
	if !ok {
		return randomAction(g.rand), true
	}
	return action, true
}

func (g *GreedyPolicy) Update(_ int, _ sorting.Observation, _ sorting.Action, _ int, _ sorting.Observation) {
}

func (g *GreedyPolicy) UpdateIteration(_ int, _ *types.Trace) {

}

func (g *GreedyPolicy) Reset() {

}

// Execute runs the policy on env from a fresh reset until TERMINATE or bound steps
func Execute(env types.Environment, policy types.Policy, bound int) (*types.Trace, error) {
	agent := types.NewAgent(&types.AgentConfig{
		Horizon:     bound,
		Policy:      policy,
		Environment: env,
	})
	return agent.RunEpisode(0)
}
