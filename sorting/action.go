package sorting

import "fmt"

// Action is one of the nine pointer-manipulation primitives the agent can perform
type Action int

const (
	NoOp Action = iota
	Terminate
	IncI
	IncJ
	IncK
	SetIZero
	SetJZero
	SetKZero
	Swap
)

// NumActions is the size of the action id surface (0..8)
const NumActions = 9

var actionNames = [NumActions]string{
	"NOOP",
	"TERMINATE",
	"INCI",
	"INCJ",
	"INCK",
	"SETIZERO",
	"SETJZERO",
	"SETKZERO",
	"SWAP",
}

// SelectableActions are the actions a policy is allowed to choose.
// NOOP keeps its id but is never selected.
var SelectableActions = []Action{
	Terminate,
	IncI,
	IncJ,
	IncK,
	SetIZero,
	SetJZero,
	SetKZero,
	Swap,
}

func (a Action) Valid() bool {
	return a >= NoOp && a <= Swap
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps an action name (as printed by String) back to the action
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return NoOp, fmt.Errorf("%w: unknown action name %q", ErrInvalidAction, name)
}
