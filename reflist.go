package entt

// refList is the small growable array of componentRef backing a cell's
// LIST=1 states (spec §4.2). It never shrinks in place: growth allocates a
// fresh, larger slab from the page pool, copies the live entries over, and
// frees the old slab, exactly like the page-pooled reference list this is
// grounded on.
type refList struct {
	slab *refSlab
	size int
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (l *refList) capacity() int {
	if l.slab == nil {
		return 0
	}
	return len(l.slab.data)
}

func (l *refList) reserve(pool *refPagePool, k int) {
	if l.capacity() >= k {
		return
	}
	newSlab := pool.allocate(nextPow2(k))
	if l.slab != nil {
		copy(newSlab.data, l.slab.data[:l.size])
		pool.free(l.capacity(), l.slab)
	}
	l.slab = newSlab
}

func (l *refList) pushBack(pool *refPagePool, ref componentRef) {
	l.reserve(pool, l.size+1)
	l.slab.data[l.size] = ref
	l.size++
}

// popBack drops the logically-last entry. When the list becomes empty its
// slab is returned to the pool and the list reverts to empty (LIST=0).
func (l *refList) popBack(pool *refPagePool) {
	l.size--
	if l.size == 0 {
		pool.free(l.capacity(), l.slab)
		l.slab = nil
	}
}

func (l *refList) at(i int) componentRef      { return l.slab.data[i] }
func (l *refList) set(i int, ref componentRef) { l.slab.data[i] = ref }
