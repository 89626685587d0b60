package sorting

import (
	"fmt"
	"io"
	"slices"
)

const (
	RewardSorted   = 100
	RewardUnsorted = -100
	RewardGoodSwap = 10
	RewardBadSwap  = -10
)

// Environment is an agent sorting a list of non-negative integers
// with two cursors (i, j) and a counter (k).
// The list and the cursors are hidden, the agent only sees the Observation.
type Environment struct {
	initial []int
	list    []int
	i       int
	j       int
	k       Counter
	flags   Flags
	last    Action
	done    bool
}

// NewEnvironment creates an environment bound to a copy of list.
// The returned environment is already reset.
func NewEnvironment(list []int) (*Environment, error) {
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	for _, v := range list {
		if v < 0 {
			return nil, fmt.Errorf("%w: %v", ErrNegativeValue, list)
		}
	}
	e := &Environment{
		initial: slices.Clone(list),
	}
	e.Reset()
	return e, nil
}

// Reset restores the original list, zeroes the cursors and the counter
// and returns the initial observation (last action NOOP)
func (e *Environment) Reset() Observation {
	e.list = slices.Clone(e.initial)
	e.i = 0
	e.j = 0
	e.k = 0
	e.last = NoOp
	e.done = false
	e.updateFlags()
	return e.Observation()
}

func (e *Environment) updateFlags() {
	e.flags = ComputeFlags(e.list, e.i, e.j, e.k)
}

// Step applies exactly one action and returns the new observation,
// the reward and whether the episode terminated.
// NOOP and ids outside 0..8 are rejected with ErrInvalidAction and leave the state untouched.
func (e *Environment) Step(a Action) (Observation, int, bool, error) {
	if !a.Valid() || a == NoOp {
		return e.Observation(), 0, e.done, fmt.Errorf("%w: %s", ErrInvalidAction, a)
	}
	if e.done {
		return e.Observation(), 0, true, ErrEpisodeDone
	}

	n := len(e.list)
	reward := 0

	switch a {
	case Terminate:
		e.done = true
		if e.Sorted() {
			reward = RewardSorted
		} else {
			reward = RewardUnsorted
		}
	case IncI:
		e.i = min(e.i+1, n)
	case IncJ:
		e.j = min(e.j+1, n)
	case IncK:
		e.k = e.k.Inc()
	case SetIZero:
		e.i = 0
	case SetJZero:
		e.j = 0
	case SetKZero:
		e.k = 0
	case Swap:
		reward = e.swap()
	}

	e.last = a
	e.updateFlags()
	return e.Observation(), reward, e.done, nil
}

func (e *Environment) swap() int {
	n := len(e.list)
	if e.i >= n || e.j >= n {
		return RewardBadSwap
	}
	e.list[e.i], e.list[e.j] = e.list[e.j], e.list[e.i]

	switch {
	case e.i < e.j:
		if e.list[e.i] < e.list[e.j] {
			return RewardGoodSwap
		}
	case e.j < e.i:
		if e.list[e.j] < e.list[e.i] {
			return RewardGoodSwap
		}
	}
	// i == j swaps an element with itself
	return RewardBadSwap
}

// Observation encodes the current flags and last action
func (e *Environment) Observation() Observation {
	return Encode(e.flags, e.last)
}

// Sorted reports whether the list is non-decreasing
func (e *Environment) Sorted() bool {
	return slices.IsSorted(e.list)
}

// List returns a copy of the current list contents
func (e *Environment) List() []int {
	return slices.Clone(e.list)
}

func (e *Environment) Len() int {
	return len(e.list)
}

func (e *Environment) Cursors() (int, int, Counter) {
	return e.i, e.j, e.k
}

func (e *Environment) Flags() Flags {
	return e.flags
}

func (e *Environment) LastAction() Action {
	return e.last
}

func (e *Environment) Done() bool {
	return e.done
}

// Render writes a human readable dump of the environment to w
func (e *Environment) Render(w io.Writer) {
	f := e.flags
	cmp := func(b bool, yes, no string) string {
		if b {
			return yes
		}
		return no
	}
	fmt.Fprintf(w, "i = %d, j = %d\n", e.i, e.j)
	fmt.Fprintf(w, "k = %d, len = %d\n", uint64(e.k), len(e.list))
	fmt.Fprintf(w, "list = %v\n", e.list)
	fmt.Fprintf(w, "last action = %s\n", e.last)
	fmt.Fprintln(w, "---------------------------------")
	fmt.Fprintf(w, "i %s 0, j %s 0\n", cmp(f.IEqZero, "=", "!="), cmp(f.JEqZero, "=", "!="))
	fmt.Fprintf(w, "i %s len, j %s len\n", cmp(f.IEqLen, "=", "!="), cmp(f.JEqLen, "=", "!="))
	fmt.Fprintf(w, "k %s 0, k %s len\n", cmp(f.KEqZero, "=", "!="), cmp(f.KEqLen, "=", "!="))
	fmt.Fprintf(w, "i %s j, j %s i\n", cmp(f.ILtJ, "<", ">="), cmp(f.JLtI, "<", ">="))
	fmt.Fprintf(w, "list[i] %s list[j]\n", cmp(f.ListIGtJ, ">", "<="))
}
