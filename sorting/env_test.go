package sorting

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

func newEnv(t *testing.T, list []int) *Environment {
	t.Helper()
	e, err := NewEnvironment(list)
	if err != nil {
		t.Fatalf("failed to create environment: %s", err)
	}
	return e
}

func step(t *testing.T, e *Environment, a Action) (Observation, int, bool) {
	t.Helper()
	o, r, done, err := e.Step(a)
	if err != nil {
		t.Fatalf("step %s failed: %s", a, err)
	}
	return o, r, done
}

func TestNewEnvironmentRejectsBadLists(t *testing.T) {
	if _, err := NewEnvironment(nil); !errors.Is(err, ErrEmptyList) {
		t.Errorf("expected ErrEmptyList, got %v", err)
	}
	if _, err := NewEnvironment([]int{1, -2}); !errors.Is(err, ErrNegativeValue) {
		t.Errorf("expected ErrNegativeValue, got %v", err)
	}
}

func TestResetIdempotent(t *testing.T) {
	input := []int{2, 0, 1}
	e := newEnv(t, input)
	first := e.Reset()

	step(t, e, IncJ)
	step(t, e, Swap)
	step(t, e, IncK)
	step(t, e, IncI)

	o1 := e.Reset()
	l1 := e.List()
	o2 := e.Reset()
	l2 := e.List()
	if o1 != o2 || o1 != first {
		t.Errorf("expected identical observations, got %d, %d, %d", first, o1, o2)
	}
	if !slices.Equal(l1, input) || !slices.Equal(l2, input) {
		t.Errorf("expected list %v after reset, got %v and %v", input, l1, l2)
	}
	if e.LastAction() != NoOp {
		t.Errorf("expected last action NOOP after reset, got %s", e.LastAction())
	}
}

func TestEnvironmentCopiesInput(t *testing.T) {
	input := []int{1, 0}
	e := newEnv(t, input)
	step(t, e, IncJ)
	step(t, e, Swap)
	if !slices.Equal(input, []int{1, 0}) {
		t.Fatalf("caller list was mutated: %v", input)
	}
	input[0] = 7
	e.Reset()
	if !slices.Equal(e.List(), []int{1, 0}) {
		t.Errorf("environment aliased the caller list: %v", e.List())
	}
}

func TestNoOpRejected(t *testing.T) {
	e := newEnv(t, []int{1, 0})
	before := e.Observation()
	_, _, _, err := e.Step(NoOp)
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	for _, a := range []Action{-1, 9, 42} {
		if _, _, _, err := e.Step(a); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("expected ErrInvalidAction for %d, got %v", int(a), err)
		}
	}
	if e.Observation() != before {
		t.Errorf("rejected action changed the observation")
	}
}

func TestSwapSameCursor(t *testing.T) {
	for _, list := range [][]int{{3, 1, 2}, {0, 0}, {5}} {
		e := newEnv(t, list)
		for i := 0; i < len(list); i++ {
			_, r, _ := step(t, e, Swap)
			if r != RewardBadSwap {
				t.Errorf("expected %d for i == j == %d, got %d", RewardBadSwap, i, r)
			}
			if !slices.Equal(e.List(), list) {
				t.Errorf("list changed on i == j swap: %v", e.List())
			}
			step(t, e, IncI)
			step(t, e, IncJ)
		}
	}
}

func TestSwapOutOfBounds(t *testing.T) {
	e := newEnv(t, []int{1, 0})
	step(t, e, IncI)
	step(t, e, IncI)
	_, r, done := step(t, e, Swap)
	if r != RewardBadSwap || done {
		t.Errorf("expected %d and not done, got %d, %v", RewardBadSwap, r, done)
	}
	if !slices.Equal(e.List(), []int{1, 0}) {
		t.Errorf("out of bounds swap mutated the list: %v", e.List())
	}
}

func TestSwapTwiceRestores(t *testing.T) {
	lists := [][]int{{3, 1, 2}, {0, 1, 2}, {2, 1, 0}, {4, 4, 1}}
	for _, list := range lists {
		n := len(list)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				e := newEnv(t, list)
				for x := 0; x < i; x++ {
					step(t, e, IncI)
				}
				for x := 0; x < j; x++ {
					step(t, e, IncJ)
				}
				_, r1, _ := step(t, e, Swap)
				_, r2, _ := step(t, e, Swap)
				if !slices.Equal(e.List(), list) {
					t.Errorf("%v: double swap (%d, %d) gave %v", list, i, j, e.List())
				}
				if list[i] != list[j] && r1 != -r2 {
					t.Errorf("%v: rewards %d and %d for (%d, %d) are not mirrored", list, r1, r2, i, j)
				}
				lo, hi := min(i, j), max(i, j)
				want := RewardBadSwap
				if list[hi] < list[lo] {
					want = RewardGoodSwap
				}
				if r1 != want {
					t.Errorf("%v: first swap (%d, %d) expected %d, got %d", list, i, j, want, r1)
				}
			}
		}
	}
}

func TestTerminateReward(t *testing.T) {
	cases := []struct {
		list   []int
		moves  []Action
		reward int
	}{
		{[]int{0, 1, 2}, nil, RewardSorted},
		{[]int{1, 1, 2}, []Action{IncI, IncJ, IncJ, IncK}, RewardSorted},
		{[]int{1, 0}, nil, RewardUnsorted},
		{[]int{1, 0}, []Action{IncJ, Swap}, RewardSorted},
		{[]int{2, 1, 0}, []Action{IncI, IncI, IncI}, RewardUnsorted},
	}
	for _, c := range cases {
		e := newEnv(t, c.list)
		for _, a := range c.moves {
			step(t, e, a)
		}
		o, r, done := step(t, e, Terminate)
		if r != c.reward || !done {
			t.Errorf("%v: expected reward %d and done, got %d, %v", c.list, c.reward, r, done)
		}
		if o.LastAction() != Terminate {
			t.Errorf("expected last action TERMINATE, got %s", o.LastAction())
		}
		if _, _, _, err := e.Step(IncI); !errors.Is(err, ErrEpisodeDone) {
			t.Errorf("expected ErrEpisodeDone after terminate, got %v", err)
		}
	}
}

func TestCursorsSaturate(t *testing.T) {
	list := []int{2, 0, 1}
	e := newEnv(t, list)
	for x := 0; x < len(list)+5; x++ {
		step(t, e, IncI)
		step(t, e, IncJ)
	}
	i, j, _ := e.Cursors()
	if i != len(list) || j != len(list) {
		t.Errorf("expected cursors at %d, got %d, %d", len(list), i, j)
	}
	f := e.Flags()
	if !f.IEqLen || !f.JEqLen || f.ListIGtJ {
		t.Errorf("unexpected flags %+v", f)
	}

	step(t, e, SetIZero)
	step(t, e, SetJZero)
	i, j, _ = e.Cursors()
	if i != 0 || j != 0 {
		t.Errorf("expected cursors reset, got %d, %d", i, j)
	}
}

func TestCounterFlags(t *testing.T) {
	e := newEnv(t, []int{1, 0})
	if !e.Flags().KEqZero {
		t.Fatalf("expected k == 0 after reset")
	}
	step(t, e, IncK)
	o, _, _ := step(t, e, IncK)
	if !o.Flags().KEqLen || o.Flags().KEqZero {
		t.Errorf("expected k == len after two increments, got %+v", o.Flags())
	}
	o, _, _ = step(t, e, IncK)
	if o.Flags().KEqLen {
		t.Errorf("expected k != len after three increments")
	}
	o, _, _ = step(t, e, SetKZero)
	if !o.Flags().KEqZero || o.LastAction() != SetKZero {
		t.Errorf("unexpected observation after SETKZERO %+v", o.Flags())
	}
}

func TestObservationMatchesState(t *testing.T) {
	e := newEnv(t, []int{1, 0})
	o, r, done := step(t, e, IncJ)
	if r != 0 || done {
		t.Fatalf("unexpected reward %d or done %v", r, done)
	}
	want := Encode(Flags{IEqZero: true, KEqZero: true, ILtJ: true, ListIGtJ: true}, IncJ)
	if o != want {
		t.Errorf("expected observation %d, got %d", want, o)
	}
}

func TestRender(t *testing.T) {
	e := newEnv(t, []int{1, 0})
	step(t, e, IncJ)
	buf := new(bytes.Buffer)
	e.Render(buf)
	out := buf.String()
	for _, want := range []string{"i = 0, j = 1", "list = [1 0]", "last action = INCJ", "list[i] > list[j]", "i < j"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestParseAction(t *testing.T) {
	for a := NoOp; a <= Swap; a++ {
		parsed, err := ParseAction(a.String())
		if err != nil || parsed != a {
			t.Errorf("parse %s: got %s, %v", a, parsed, err)
		}
	}
	if _, err := ParseAction("JUMP"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", err)
	}
}
