package curriculum

import (
	"context"
	"slices"

	"github.com/zeu5/rl-sorting/policies"
	"github.com/zeu5/rl-sorting/types"
	"github.com/zeu5/rl-sorting/util"
)

// EpochStats summarizes one epoch of training
type EpochStats struct {
	Epoch            int  `json:"epoch"`
	WorkingSet       int  `json:"working_set"`
	WorkingSolved    int  `json:"working_solved"`
	FullSetEvaluated bool `json:"full_set_evaluated"`
	FullSolved       int  `json:"full_solved"`
	Readmitted       int  `json:"readmitted"`
	Steps            int  `json:"steps"`
}

// Result of a training run.
// Policy is nil when the epoch budget ran out before the whole set was solved.
type Result struct {
	Solved     bool
	Epochs     int
	Policy     *policies.GreedyPolicy
	Learner    *policies.ModelBasedPolicy
	History    []EpochStats
	WorkingSet [][]int
	// greedy traces of the last full set evaluation, in training set order
	Evaluation []*types.Trace
}

// TrainingSet lists all the permutations of {0, ..., n-1} in reverse lexicographic
// order, without the sorted one
func TrainingSet(n int) [][]int {
	perms := util.Permutations(n)
	slices.Reverse(perms)
	if len(perms) == 0 {
		return perms
	}
	return perms[:len(perms)-1]
}

// Trainer drills a model based learner on a working slice of permutations and
// grows the slice with every permutation a greedy rollout fails to sort
type Trainer struct {
	config    Config
	factory   types.EnvironmentFactory
	learner   *policies.ModelBasedPolicy
	analyzers []types.Analyzer

	trainingSet [][]int
	working     [][]int
	inWorking   map[string]bool
	episodes    int

	// OnEpoch is called at the end of every epoch
	OnEpoch func(EpochStats)
}

func NewTrainer(config Config, factory types.EnvironmentFactory) (*Trainer, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	t := &Trainer{
		config:      config,
		factory:     factory,
		learner:     policies.NewModelBasedPolicy(config.Epsilon, config.Gamma, config.Seed),
		analyzers:   make([]types.Analyzer, 0),
		trainingSet: TrainingSet(config.Length),
		inWorking:   make(map[string]bool),
	}
	initial := len(t.trainingSet)
	if config.InitialSubset > 0 && config.InitialSubset < initial {
		initial = config.InitialSubset
	}
	t.working = make([][]int, 0, len(t.trainingSet))
	for _, perm := range t.trainingSet[:initial] {
		t.admit(perm)
	}
	return t, nil
}

func (t *Trainer) Config() Config {
	return t.config
}

func (t *Trainer) Learner() *policies.ModelBasedPolicy {
	return t.learner
}

func (t *Trainer) AddAnalyzer(a types.Analyzer) {
	t.analyzers = append(t.analyzers, a)
}

// WorkingSet is a copy of the permutations currently drilled
func (t *Trainer) WorkingSet() [][]int {
	out := make([][]int, len(t.working))
	for i, perm := range t.working {
		out[i] = slices.Clone(perm)
	}
	return out
}

// admit appends perm to the working slice unless it is already there
func (t *Trainer) admit(perm []int) bool {
	key := util.Key(perm)
	if t.inWorking[key] {
		return false
	}
	t.inWorking[key] = true
	t.working = append(t.working, slices.Clone(perm))
	return true
}

// Run trains until every permutation of the training set is solved greedily
// or the epoch budget is exhausted. Running out of epochs is not an error.
func (t *Trainer) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Learner: t.learner,
		History: make([]EpochStats, 0),
	}

	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			result.WorkingSet = t.WorkingSet()
			return result, ctx.Err()
		default:
		}

		stats, evaluation, err := t.runEpoch(epoch)
		if err != nil {
			result.WorkingSet = t.WorkingSet()
			return result, err
		}
		result.Epochs = epoch + 1
		result.History = append(result.History, stats)
		if t.OnEpoch != nil {
			t.OnEpoch(stats)
		}
		if evaluation != nil {
			result.Solved = true
			result.Evaluation = evaluation
			result.Policy = t.learner.Greedy()
			break
		}
	}
	result.WorkingSet = t.WorkingSet()
	return result, nil
}

// runEpoch returns the traces of the full set evaluation when every permutation was solved
func (t *Trainer) runEpoch(epoch int) (EpochStats, []*types.Trace, error) {
	stats := EpochStats{Epoch: epoch + 1}

	// the slice does not grow while learning
	working := t.working
	for pass := 0; pass < t.config.Passes; pass++ {
		for _, perm := range working {
			trace, err := t.learn(perm)
			if err != nil {
				return stats, nil, err
			}
			stats.Steps += trace.Len()
			for _, a := range t.analyzers {
				a.Analyze(epoch, perm, trace)
			}
		}
	}

	stats.WorkingSet = len(working)
	failed, _, err := t.evaluate(working)
	if err != nil {
		return stats, nil, err
	}
	stats.WorkingSolved = len(working) - len(failed)
	if len(failed) > 0 {
		return stats, nil, nil
	}

	stats.FullSetEvaluated = true
	failed, traces, err := t.evaluate(t.trainingSet)
	if err != nil {
		return stats, nil, err
	}
	stats.FullSolved = len(t.trainingSet) - len(failed)
	for _, perm := range failed {
		if t.admit(perm) {
			stats.Readmitted += 1
		}
	}
	if len(failed) > 0 {
		return stats, nil, nil
	}
	return stats, traces, nil
}

// learn runs one learning episode on a fresh environment
func (t *Trainer) learn(perm []int) (*types.Trace, error) {
	env, err := t.factory(perm)
	if err != nil {
		return nil, err
	}
	agent := types.NewAgent(&types.AgentConfig{
		Horizon:     t.config.Horizon,
		Policy:      t.learner,
		Environment: env,
	})
	trace, err := agent.RunEpisode(t.episodes)
	t.episodes += 1
	return trace, err
}

// evaluate rolls out the greedy policy on each permutation and returns the ones it
// fails to sort along with all the traces
func (t *Trainer) evaluate(perms [][]int) ([][]int, []*types.Trace, error) {
	greedy := t.learner.Greedy()
	failed := make([][]int, 0)
	traces := make([]*types.Trace, 0, len(perms))
	for _, perm := range perms {
		env, err := t.factory(perm)
		if err != nil {
			return nil, nil, err
		}
		trace, err := policies.Execute(env, greedy, t.config.EvalHorizon)
		if err != nil {
			return nil, nil, err
		}
		traces = append(traces, trace)
		if !trace.Solved() {
			failed = append(failed, perm)
		}
	}
	return failed, traces, nil
}
