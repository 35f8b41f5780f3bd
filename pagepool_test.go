package entt

import "testing"

func TestRefPagePoolIdempotence(t *testing.T) {
	pool := newRefPagePool()

	s1 := pool.allocate(4)
	pool.free(4, s1)
	s2 := pool.allocate(4)
	if s1 != s2 {
		t.Fatalf("expected a free-then-allocate cycle for the same capacity to return the same slab, got %p then %p", s1, s2)
	}
}

func TestRefPagePoolDistinctCapacitiesDoNotShare(t *testing.T) {
	pool := newRefPagePool()

	s4 := pool.allocate(4)
	s8 := pool.allocate(8)
	if s4 == s8 {
		t.Fatal("expected slabs of different capacities to never alias")
	}
	if len(s4.data) != 4 || len(s8.data) != 8 {
		t.Fatalf("expected slab capacities 4 and 8, got %d and %d", len(s4.data), len(s8.data))
	}
}

func TestRefPagePoolGrowsBeyondOnePage(t *testing.T) {
	pool := newRefPagePool()
	seen := map[*refSlab]bool{}
	for i := 0; i < pageGroups+5; i++ {
		s := pool.allocate(4)
		if seen[s] {
			t.Fatalf("allocate returned the same live slab twice at iteration %d", i)
		}
		seen[s] = true
	}
	if got := len(pool.byCapacity[4]); got < 2 {
		t.Fatalf("expected the pool to have grown a second page past the %d-slab high-water mark, has %d pages", pageGroups, got)
	}
}

func TestRefPagePoolFreeUnknownSlabPanics(t *testing.T) {
	pool := newRefPagePool()
	foreign := &refSlab{data: make([]componentRef, 4)}
	defer func() {
		if recover() == nil {
			t.Fatal("expected free of a slab from no known page to panic")
		}
	}()
	pool.free(4, foreign)
}

func TestRefPageOwnsAddressContainment(t *testing.T) {
	pg := newRefPage(4)
	s := pg.alloc()
	if !pg.owns(s) {
		t.Fatal("expected a page to own a slab it just handed out")
	}
	other := newRefPage(4)
	if other.owns(s) {
		t.Fatal("expected a different page to not own another page's slab")
	}
}

func TestPoolForSameAllocatorReturnsSamePool(t *testing.T) {
	id := NewAllocatorID()
	p1 := poolFor(id)
	p2 := poolFor(id)
	if p1 != p2 {
		t.Fatal("expected the same allocator identity to always resolve to the same page pool")
	}
	if poolFor(NewAllocatorID()) == p1 {
		t.Fatal("expected distinct allocator identities to resolve to distinct page pools")
	}
}
