package median

// Mediator is a dual-heap running-window median structure: a circular
// value buffer, a position index per slot, and a signed-offset heap
// whose non-negative indices form a min-heap (values >= median) and
// whose negative indices form a max-heap (values <= median); index 0
// holds the median.
//
// Ordering: inserts are strictly serial within one instance. A filter
// pass running in parallel must own its own instance per worker;
// Mediator has no internal locking.
type Mediator struct {
	data []float64 // circular queue of values
	pos  []int     // index into heap for each data slot
	heap []int     // signed-offset heap of indexes into data; heap[0] is the median
	n    int       // capacity
	idx  int       // next slot to overwrite in the circular queue
	ct   int       // number of items inserted so far, capped at n
}

// NewMediator allocates a capacity-n running-median structure, filled
// with the initial heap pattern "median, max, min, max, min, ..." so
// that any first insertion is valid.
func NewMediator(n int) *Mediator {
	m := &Mediator{
		data: make([]float64, n),
		pos:  make([]int, n),
		// heap is addressed by signed offsets in [-n/2, n/2]; shift by
		// n/2 to get a 0-based backing array.
		heap: make([]int, n+1),
		n:    n,
	}
	half := n / 2
	for i := n - 1; i >= 0; i-- {
		sign := 1
		if i&1 != 0 {
			sign = -1
		}
		p := ((i + 1) / 2) * sign
		m.pos[i] = p
		m.heap[p+half] = i
	}
	return m
}

func (m *Mediator) heapAt(i int) int {
	return m.heap[i+m.n/2]
}

func (m *Mediator) heapSet(i, v int) {
	m.heap[i+m.n/2] = v
}

func (m *Mediator) minCt() int { return (m.ct - 1) / 2 }
func (m *Mediator) maxCt() int { return m.ct / 2 }

func (m *Mediator) less(i, j int) bool {
	return m.data[m.heapAt(i)] < m.data[m.heapAt(j)]
}

func (m *Mediator) exchange(i, j int) {
	t := m.heapAt(i)
	m.heapSet(i, m.heapAt(j))
	m.heapSet(j, t)
	m.pos[m.heapAt(i)] = i
	m.pos[m.heapAt(j)] = j
}

func (m *Mediator) cmpExch(i, j int) bool {
	if m.less(i, j) {
		m.exchange(i, j)
		return true
	}
	return false
}

func (m *Mediator) minSortDown(i int) {
	for ; i <= m.minCt(); i *= 2 {
		if i > 1 && i < m.minCt() && m.less(i+1, i) {
			i++
		}
		if !m.cmpExch(i, i/2) {
			break
		}
	}
}

func (m *Mediator) maxSortDown(i int) {
	for ; i >= -m.maxCt(); i *= 2 {
		if i < -1 && i > -m.maxCt() && m.less(i, i-1) {
			i--
		}
		if !m.cmpExch(i/2, i) {
			break
		}
	}
}

func (m *Mediator) minSortUp(i int) bool {
	for i > 0 && m.cmpExch(i, i/2) {
		i /= 2
	}
	return i == 0
}

func (m *Mediator) maxSortUp(i int) bool {
	for i < 0 && m.cmpExch(i/2, i) {
		i /= 2
	}
	return i == 0
}

// Insert replaces the oldest slot's value with v and restores heap
// order in O(log N), handling each of three cases for the evicted
// slot: it lived in the min-half, the max-half, or was the median
// itself.
func (m *Mediator) Insert(v float64) {
	isNew := m.ct < m.n
	p := m.pos[m.idx]
	old := m.data[m.idx]
	m.data[m.idx] = v
	m.idx = (m.idx + 1) % m.n
	if isNew {
		m.ct++
	}

	switch {
	case p > 0: // new item is in minheap
		if !isNew && old < v {
			m.minSortDown(p * 2)
		} else if m.minSortUp(p) {
			m.maxSortDown(-1)
		}
	case p < 0: // new item is in maxheap
		if !isNew && v < old {
			m.maxSortDown(p * 2)
		} else if m.maxSortUp(p) {
			m.minSortDown(1)
		}
	default: // new item is at the median
		if m.maxCt() > 0 {
			m.maxSortDown(-1)
		}
		if m.minCt() > 0 {
			m.minSortDown(1)
		}
	}
}

// Median returns the current median: the heap root, or the mean of
// the two central values if the count of inserted items is even.
func (m *Mediator) Median() float64 {
	v := m.data[m.heapAt(0)]
	if m.ct&1 == 0 && m.ct > 0 {
		v = (v + m.data[m.heapAt(-1)]) / 2
	}
	return v
}

// Stat returns the median, and additionally the smallest value present
// in the max-half (lo) and the largest value present in the min-half
// (hi), that is the window's minimum and maximum, used by the
// adaptive median filter to judge whether the window is degenerate.
func (m *Mediator) Stat() (med, lo, hi float64) {
	med = m.Median()
	lo, hi = med, med
	for i := -m.maxCt(); i < 0; i++ {
		if v := m.data[m.heapAt(i)]; v < lo {
			lo = v
		}
	}
	for i := 1; i <= m.minCt(); i++ {
		if v := m.data[m.heapAt(i)]; v > hi {
			hi = v
		}
	}
	return med, lo, hi
}

// Count returns the number of values currently held (min(inserts, N)).
func (m *Mediator) Count() int {
	return m.ct
}
