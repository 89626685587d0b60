package policies

import (
	"math"
	"testing"

	"github.com/zeu5/rl-sorting/sorting"
	"github.com/zeu5/rl-sorting/types"
)

const tolerance = 1e-9

func TestBackupExpectation(t *testing.T) {
	p := NewModelBasedPolicy(0.1, 0.5, 1)
	s0 := sorting.Observation(1)
	s1 := sorting.Observation(2)
	s2 := sorting.Observation(3)
	s3 := sorting.Observation(4)

	p.Update(0, s0, sorting.IncI, 0, s1)
	if v := p.QTable().Get(s0, sorting.IncI, math.NaN()); v != 0 {
		t.Fatalf("expected 0 after first visit, got %f", v)
	}

	p.Update(1, s1, sorting.Terminate, 100, s2)
	if v := p.QTable().Get(s1, sorting.Terminate, 0); v != 100 {
		t.Fatalf("expected 100, got %f", v)
	}

	// visits 2, alpha 1/2, E[r] = 0, E[V(s')] = 100
	p.Update(2, s0, sorting.IncI, 0, s1)
	want := 0.5*0 + 0.5*(0+0.5*100)
	if v := p.QTable().Get(s0, sorting.IncI, 0); math.Abs(v-want) > tolerance {
		t.Fatalf("expected %f, got %f", want, v)
	}

	// visits 3, alpha 1/3, E[r] = 10/3, E[V(s')] = 2/3 * 100 + 1/3 * 0
	p.Update(3, s0, sorting.IncI, 10, s3)
	prev := want
	want = (2.0/3.0)*prev + (1.0/3.0)*(10.0/3.0+0.5*(2.0/3.0*100))
	if v := p.QTable().Get(s0, sorting.IncI, 0); math.Abs(v-want) > tolerance {
		t.Errorf("expected %f, got %f", want, v)
	}

	if got := p.Model().ExpectedReward(s0, sorting.IncI); math.Abs(got-10.0/3.0) > tolerance {
		t.Errorf("expected mean reward 10/3, got %f", got)
	}
	if p.Model().Visits(s0, sorting.IncI) != 3 {
		t.Errorf("expected 3 visits, got %d", p.Model().Visits(s0, sorting.IncI))
	}
}

func checkModelInvariants(t *testing.T, p *ModelBasedPolicy) {
	t.Helper()
	m := p.Model()
	for _, key := range m.Keys() {
		o, ok := m.Outcomes(key.Observation, key.Action)
		if !ok {
			t.Fatalf("missing outcomes for %+v", key)
		}
		visits := m.Visits(key.Observation, key.Action)
		if o.Rewards.Len() != visits || o.Next.Len() != visits {
			t.Errorf("%+v: rewards %d, next %d, visits %d", key, o.Rewards.Len(), o.Next.Len(), visits)
		}
	}
	q := p.QTable()
	for _, s := range q.States() {
		for _, av := range q.Values(s) {
			if m.Visits(s, av.Action) < 1 {
				t.Errorf("Q entry (%d, %s) without visits", s, av.Action)
			}
			if av.Action == sorting.NoOp {
				t.Errorf("NOOP must never be learned")
			}
		}
	}
}

func runEpisodes(t *testing.T, p types.Policy, lists [][]int, episodes int) {
	t.Helper()
	for _, list := range lists {
		env, err := sorting.NewEnvironment(list)
		if err != nil {
			t.Fatal(err)
		}
		agent := types.NewAgent(&types.AgentConfig{Horizon: 50, Policy: p, Environment: env})
		for e := 0; e < episodes; e++ {
			if _, err := agent.RunEpisode(e); err != nil {
				t.Fatalf("episode failed: %s", err)
			}
		}
	}
}

func TestVisitCountInvariant(t *testing.T) {
	p := NewModelBasedPolicy(0.2, 0.9, 42)
	runEpisodes(t, p, [][]int{{2, 0, 1}, {1, 0}, {3, 1, 2, 0}}, 30)
	if p.QTable().Len() == 0 {
		t.Fatalf("expected the Q-table to be populated")
	}
	checkModelInvariants(t, p)
}

func TestTrainingReproducible(t *testing.T) {
	lists := [][]int{{2, 1, 0}, {1, 0, 2}}
	p1 := NewModelBasedPolicy(0.1, 0.9, 7)
	p2 := NewModelBasedPolicy(0.1, 0.9, 7)
	runEpisodes(t, p1, lists, 20)
	runEpisodes(t, p2, lists, 20)

	s1, s2 := p1.QTable().States(), p2.QTable().States()
	if len(s1) != len(s2) {
		t.Fatalf("state counts differ: %d vs %d", len(s1), len(s2))
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("state %d differs: %d vs %d", i, s1[i], s2[i])
		}
		v1, v2 := p1.QTable().Values(s1[i]), p2.QTable().Values(s2[i])
		if len(v1) != len(v2) {
			t.Fatalf("state %d: entry counts differ", s1[i])
		}
		for j := range v1 {
			if v1[j] != v2[j] {
				t.Errorf("state %d: %+v vs %+v", s1[i], v1[j], v2[j])
			}
		}
	}
}

func TestModelMerge(t *testing.T) {
	a := NewDynamicsModel()
	b := NewDynamicsModel()
	a.Observe(1, sorting.Swap, 10, 2)
	b.Observe(1, sorting.Swap, -10, 3)
	b.Observe(1, sorting.Swap, 10, 2)
	b.Observe(5, sorting.IncI, 0, 6)
	a.Merge(b)

	if a.Visits(1, sorting.Swap) != 3 || a.Visits(5, sorting.IncI) != 1 {
		t.Errorf("unexpected visits after merge")
	}
	if got := a.ExpectedReward(1, sorting.Swap); math.Abs(got-10.0/3.0) > tolerance {
		t.Errorf("expected 10/3, got %f", got)
	}
	value := func(s sorting.Observation) float64 { return float64(s) }
	if got := a.ExpectedValue(1, sorting.Swap, value); math.Abs(got-7.0/3.0) > tolerance {
		t.Errorf("expected 7/3, got %f", got)
	}
	if len(a.Keys()) != 2 {
		t.Errorf("expected 2 keys, got %d", len(a.Keys()))
	}
}
