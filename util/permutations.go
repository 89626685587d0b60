package util

import (
	"slices"
	"strconv"
)

// Permutations lists all the permutations of {0, ..., n-1}
// in lexicographic order.
// The algorithm is drawn from "The Art of Computer Programming"
// Section 7.2.1.2, Algorithm L
func Permutations(n int) [][]int {
	if n <= 0 {
		return [][]int{}
	}
	a := make([]int, n)
	for i := range a {
		a[i] = i
	}
	result := make([][]int, 0)
	for {
		// L1. Visit
		result = append(result, slices.Clone(a))

		// L2. Find j
		j := n - 2
		for j >= 0 && a[j] >= a[j+1] {
			j--
		}
		if j < 0 {
			return result
		}

		// L3. Increase a[j]
		l := n - 1
		for a[j] >= a[l] {
			l--
		}
		a[j], a[l] = a[l], a[j]

		// L4. Reverse a[j+1..n-1]
		slices.Reverse(a[j+1:])
	}
}

// Key renders a list as a map key
func Key(list []int) string {
	b := make([]byte, 0, len(list)*3)
	for i, v := range list {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}
