package types

import (
	"errors"
	"os"
	"path"
	"testing"

	"github.com/zeu5/rl-sorting/sorting"
)

// scriptedPolicy plays a fixed list of actions and then gives up
type scriptedPolicy struct {
	actions    []sorting.Action
	updates    int
	iterations []int
}

func (s *scriptedPolicy) NextAction(step int, _ sorting.Observation) (sorting.Action, bool) {
	if step >= len(s.actions) {
		return sorting.NoOp, false
	}
	return s.actions[step], true
}

func (s *scriptedPolicy) Update(int, sorting.Observation, sorting.Action, int, sorting.Observation) {
	s.updates += 1
}

func (s *scriptedPolicy) UpdateIteration(episode int, _ *Trace) {
	s.iterations = append(s.iterations, episode)
}

func (s *scriptedPolicy) Reset() {}

func newAgent(t *testing.T, list []int, horizon int, policy Policy) *Agent {
	env, err := SortingFactory()(list)
	if err != nil {
		t.Fatal(err)
	}
	return NewAgent(&AgentConfig{
		Horizon:     horizon,
		Policy:      policy,
		Environment: env,
	})
}

func TestRunEpisodeSolves(t *testing.T) {
	policy := &scriptedPolicy{actions: []sorting.Action{sorting.IncJ, sorting.Swap, sorting.Terminate, sorting.IncI}}
	trace, err := newAgent(t, []int{1, 0}, 10, policy).RunEpisode(7)
	if err != nil {
		t.Fatal(err)
	}
	if trace.Len() != 3 || !trace.Solved() || trace.TotalReward() != 110 {
		t.Errorf("expected a solved 3 step trace worth 110, got %d steps worth %d", trace.Len(), trace.TotalReward())
	}
	if policy.updates != 3 || len(policy.iterations) != 1 || policy.iterations[0] != 7 {
		t.Errorf("unexpected policy callbacks: %d updates, iterations %v", policy.updates, policy.iterations)
	}
	prefix := trace.Slice(0, 2)
	if prefix.Len() != 2 || prefix.Solved() || prefix.TotalReward() != 10 {
		t.Errorf("unexpected prefix of %d steps worth %d", prefix.Len(), prefix.TotalReward())
	}
	if _, _, _, _, ok := trace.Get(3); ok {
		t.Errorf("expected out of range Get to fail")
	}
}

func TestRunEpisodeHorizon(t *testing.T) {
	policy := &scriptedPolicy{actions: []sorting.Action{sorting.IncK, sorting.IncK, sorting.IncK, sorting.IncK}}
	trace, err := newAgent(t, []int{2, 1, 0}, 2, policy).RunEpisode(0)
	if err != nil {
		t.Fatal(err)
	}
	if trace.Len() != 2 || trace.Solved() {
		t.Errorf("expected the horizon to cut the episode at 2 steps, got %d", trace.Len())
	}
}

func TestRunEpisodeError(t *testing.T) {
	policy := &scriptedPolicy{actions: []sorting.Action{sorting.IncI, sorting.NoOp, sorting.Swap}}
	trace, err := newAgent(t, []int{1, 0}, 10, policy).RunEpisode(0)
	if !errors.Is(err, sorting.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if trace.Len() != 1 {
		t.Errorf("expected the partial trace to keep 1 step, got %d", trace.Len())
	}
}

func TestRandomPolicy(t *testing.T) {
	a, b := NewRandomPolicy(3), NewRandomPolicy(3)
	for i := 0; i < 200; i++ {
		x, ok := a.NextAction(i, 0)
		y, _ := b.NextAction(i, 0)
		if !ok || x == sorting.NoOp || !x.Valid() {
			t.Fatalf("unexpected action %s", x)
		}
		if x != y {
			t.Fatalf("expected equal seeds to draw the same actions")
		}
	}
}

func TestRewardAnalyzer(t *testing.T) {
	solved := NewTrace()
	solved.Append(0, sorting.Terminate, sorting.RewardSorted, 0)
	failed := NewTrace()
	failed.Append(0, sorting.Terminate, sorting.RewardUnsorted, 0)

	r := NewRewardAnalyzer()
	r.Analyze(0, nil, solved)
	r.Analyze(0, nil, failed)
	r.Analyze(2, nil, solved)

	ds := r.DataSet().(*RewardDataSet)
	expected := []float64{0, 0, 100}
	if len(ds.MeanRewards) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, ds.MeanRewards)
	}
	for i := range expected {
		if ds.MeanRewards[i] != expected[i] {
			t.Errorf("epoch %d: expected %f, got %f", i, expected[i], ds.MeanRewards[i])
		}
	}

	dir := t.TempDir()
	RewardPlotComparator(dir)([]string{"run"}, []DataSet{ds})
	if _, err := os.Stat(path.Join(dir, "rewards.png")); err != nil {
		t.Errorf("expected the plot to be written: %s", err)
	}

	r.Reset()
	if len(r.DataSet().(*RewardDataSet).MeanRewards) != 0 {
		t.Errorf("expected an empty dataset after reset")
	}
}
