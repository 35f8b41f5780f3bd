package entt

import "unsafe"

// componentRef is one entry of a reference list: a pointer to a concrete
// value living in some other (descendant) storage, plus the deleter that
// knows how to erase that value from its home storage. This is the Go
// stand-in for entt::polymorphic_component_ref.
type componentRef struct {
	pointer unsafe.Pointer
	del     deleter
}

// deleter erases one concrete value from its owning storage, given the
// registry and entity it belongs to. Every concrete polymorphic type has
// exactly one deleter, produced once per type by concreteDeleterFor.
type deleter func(r *Registry, e Entity)

// refSlab is one fixed-capacity array of componentRef, handed out by a
// refPage and later returned to it. next links free slabs together while a
// slab is on its page's free list; it is meaningless while the slab is in
// use.
type refSlab struct {
	data []componentRef
	next int
}

// refPage holds pageGroups slabs of one fixed capacity, matching the
// container-cell page pool's page-of-slot-groups design (spec §4.1): pages
// are bump-allocated up to capacity and then satisfied entirely from the
// free list, and a page, once created, is never resized or released.
//
// Grounded on goovo-matching-engine's OrderArena: pages are a slice that is
// only ever appended to, elements carry an intrusive free-list link, and
// Alloc always prefers the free list before bumping the high-water mark.
type refPage struct {
	slabs    []refSlab
	count    int // high-water mark: slabs [0,count) have been handed out at least once
	freeHead int // -1 if empty
}

const pageGroups = pageSize

func newRefPage(capacity int) *refPage {
	slabs := make([]refSlab, pageGroups)
	for i := range slabs {
		slabs[i].data = make([]componentRef, capacity)
	}
	return &refPage{slabs: slabs, freeHead: -1}
}

func (p *refPage) alloc() *refSlab {
	if p.freeHead != -1 {
		s := &p.slabs[p.freeHead]
		p.freeHead = s.next
		return s
	}
	if p.count >= len(p.slabs) {
		return nil
	}
	s := &p.slabs[p.count]
	p.count++
	return s
}

// owns reports whether s was allocated from this page, located by address
// containment within the page's backing array, per spec §4.1 ("locates the
// owning page by address containment").
func (p *refPage) owns(s *refSlab) bool {
	if len(p.slabs) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(&p.slabs[0]))
	end := base + uintptr(len(p.slabs))*unsafe.Sizeof(p.slabs[0])
	addr := uintptr(unsafe.Pointer(s))
	return addr >= base && addr < end
}

func (p *refPage) indexOf(s *refSlab) int {
	base := &p.slabs[0]
	return int((uintptr(unsafe.Pointer(s)) - uintptr(unsafe.Pointer(base))) / unsafe.Sizeof(p.slabs[0]))
}

func (p *refPage) free(s *refSlab) {
	s.next = p.freeHead
	p.freeHead = p.indexOf(s)
}

// refPagePool is the page pool for one allocator identity, bucketed by
// slab capacity (spec's reference lists always grow in power-of-two steps,
// so capacities form a small, stable set of buckets: 4, 8, 16, ...).
type refPagePool struct {
	byCapacity map[int][]*refPage
}

func newRefPagePool() *refPagePool {
	return &refPagePool{byCapacity: map[int][]*refPage{}}
}

// allocate returns a slab with exactly n componentRef slots, reusing a
// freed slab of the same capacity when one is available so that a
// free-then-allocate cycle for the same n returns the very same address
// (the page pool's documented idempotence property).
func (pool *refPagePool) allocate(n int) *refSlab {
	pages := pool.byCapacity[n]
	for _, pg := range pages {
		if s := pg.alloc(); s != nil {
			return s
		}
	}
	pg := newRefPage(n)
	pool.byCapacity[n] = append(pages, pg)
	debugLog.Debugf("entt: page pool grew a new page for capacity %d", n)
	return pg.alloc()
}

func (pool *refPagePool) free(n int, s *refSlab) {
	for _, pg := range pool.byCapacity[n] {
		if pg.owns(s) {
			pg.free(s)
			return
		}
	}
	panic("entt: free_array received a slab that does not belong to any known page for this capacity")
}

var globalPools = map[AllocatorID]*refPagePool{}

func poolFor(id AllocatorID) *refPagePool {
	if p, ok := globalPools[id]; ok {
		return p
	}
	p := newRefPagePool()
	globalPools[id] = p
	return p
}
