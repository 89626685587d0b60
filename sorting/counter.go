package sorting

import "math"

// MaxCounter is the value at which the k register saturates
const MaxCounter = math.MaxUint64

// Counter is the free-running k register. Incrementing past MaxCounter is a no-op.
type Counter uint64

func (c Counter) Inc() Counter {
	if c == MaxCounter {
		return c
	}
	return c + 1
}

// Equals compares the counter against a list length
func (c Counter) Equals(n int) bool {
	return n >= 0 && uint64(c) == uint64(n)
}
