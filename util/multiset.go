package util

// MultiSet counts occurrences of keys.
// Keys are iterated in the order they were first added so that sums over
// the multiset are reproducible.
type MultiSet[K comparable] struct {
	keys   []K
	counts []int
	index  map[K]int
	total  int
}

func NewMultiSet[K comparable]() *MultiSet[K] {
	return &MultiSet[K]{
		keys:   make([]K, 0),
		counts: make([]int, 0),
		index:  make(map[K]int),
	}
}

func (m *MultiSet[K]) Add(key K) {
	m.AddN(key, 1)
}

// AddN adds n occurrences of key, n must be positive
func (m *MultiSet[K]) AddN(key K, n int) {
	if n <= 0 {
		return
	}
	i, ok := m.index[key]
	if !ok {
		i = len(m.keys)
		m.index[key] = i
		m.keys = append(m.keys, key)
		m.counts = append(m.counts, 0)
	}
	m.counts[i] += n
	m.total += n
}

func (m *MultiSet[K]) Count(key K) int {
	i, ok := m.index[key]
	if !ok {
		return 0
	}
	return m.counts[i]
}

// Len is the total multiplicity
func (m *MultiSet[K]) Len() int {
	return m.total
}

// Distinct is the number of distinct keys
func (m *MultiSet[K]) Distinct() int {
	return len(m.keys)
}

func (m *MultiSet[K]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each visits the keys with their counts in insertion order
func (m *MultiSet[K]) Each(f func(K, int)) {
	for i, k := range m.keys {
		f(k, m.counts[i])
	}
}

// Merge adds all the occurrences of other to m
func (m *MultiSet[K]) Merge(other *MultiSet[K]) {
	other.Each(func(k K, c int) {
		m.AddN(k, c)
	})
}
