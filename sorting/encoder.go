package sorting

// Observation is the bounded code through which a policy perceives the environment.
// Bits 0-8 hold the flags, bits 9-12 hold the last action.
type Observation int

const (
	flagBits = 9
	flagMask = 1<<flagBits - 1

	// MaxObservation is the largest code Encode can produce
	MaxObservation Observation = flagMask + Observation(Swap)<<flagBits

	// NumObservations is the size of the observation space
	NumObservations = int(MaxObservation) + 1
)

// Flags are the nine predicates over the cursors, counter and list.
// Each field maps to one bit of the observation in declaration order.
type Flags struct {
	IEqZero  bool
	JEqZero  bool
	IEqLen   bool
	JEqLen   bool
	KEqZero  bool
	KEqLen   bool
	ILtJ     bool
	JLtI     bool
	ListIGtJ bool
}

// ComputeFlags derives the flags from the cursors, the counter and the list.
// list[i] > list[j] is only evaluated when both cursors are in bounds.
func ComputeFlags(list []int, i, j int, k Counter) Flags {
	n := len(list)
	return Flags{
		IEqZero:  i == 0,
		JEqZero:  j == 0,
		IEqLen:   i == n,
		JEqLen:   j == n,
		KEqZero:  k == 0,
		KEqLen:   k.Equals(n),
		ILtJ:     i < j,
		JLtI:     j < i,
		ListIGtJ: i < n && j < n && list[i] > list[j],
	}
}

func (f Flags) bits() [flagBits]bool {
	return [flagBits]bool{
		f.IEqZero,
		f.JEqZero,
		f.IEqLen,
		f.JEqLen,
		f.KEqZero,
		f.KEqLen,
		f.ILtJ,
		f.JLtI,
		f.ListIGtJ,
	}
}

// Encode packs the flags and the last action into an observation
func Encode(f Flags, last Action) Observation {
	code := 0
	for b, set := range f.bits() {
		if set {
			code |= 1 << b
		}
	}
	return Observation(code | int(last)<<flagBits)
}

// Decode is the inverse of Encode
func Decode(o Observation) (Flags, Action) {
	code := int(o)
	bit := func(b int) bool { return code&(1<<b) != 0 }
	f := Flags{
		IEqZero:  bit(0),
		JEqZero:  bit(1),
		IEqLen:   bit(2),
		JEqLen:   bit(3),
		KEqZero:  bit(4),
		KEqLen:   bit(5),
		ILtJ:     bit(6),
		JLtI:     bit(7),
		ListIGtJ: bit(8),
	}
	return f, Action(code >> flagBits)
}

// LastAction extracts the last action bits of the observation
func (o Observation) LastAction() Action {
	return Action(int(o) >> flagBits)
}

func (o Observation) Flags() Flags {
	f, _ := Decode(o)
	return f
}
