package entt

import "unsafe"

// cell is the container cell for one (component type, entity) pair: spec
// §3/§4.3's polymorphic_component_container, adapted from the C++ original's
// byte-buffer-plus-tagged-pointer union to explicit, statically-typed Go
// fields. Go's garbage collector needs every field to always hold a value
// of its declared type, so the "value or pointer sharing one word" trick
// the original relies on cannot be ported directly; instead the four states
// are told apart by refFlag and by whether list.slab is nil, giving the
// same branch-light fast path (no allocation for the single-value case)
// without reinterpreting memory.
//
//	refFlag  list present  state  meaning
//	false    no            V      owns a value, no references to it
//	true     no            R      holds one reference, owns nothing
//	false    yes           VL     owns a value, and the value is also
//	                              referenced from elsewhere (self-entry
//	                              plus at least one foreign entry)
//	true     yes           RL     holds several references, owns nothing
type cell[T any] struct {
	value   T
	target  unsafe.Pointer // valid iff refFlag && list.slab == nil
	del     deleter        // valid iff refFlag && list.slab == nil
	list    refList        // list.slab != nil iff LIST=1
	refFlag bool
}

func (c *cell[T]) hasList() bool  { return c.list.slab != nil }
func (c *cell[T]) valuePtr() *T   { return &c.value }

func (c *cell[T]) initValue(value T) {
	c.value = value
	c.refFlag = false
}

func (c *cell[T]) initRef(ref componentRef) {
	c.target = ref.pointer
	c.del = ref.del
	c.refFlag = true
}

// ref returns a pointer to "any one" value satisfying this cell, per spec's
// try_get contract. For the list case this deliberately does not cache a
// distinguished pointer (the original's "pointer = any ref from list"
// optimization can go stale if that particular entry is later removed
// while others remain); reading list index 0 fresh is just as valid an
// answer to "any one" and cannot dangle.
func (c *cell[T]) ref() *T {
	if c.hasList() {
		return (*T)(c.list.at(0).pointer)
	}
	if c.refFlag {
		return (*T)(c.target)
	}
	return &c.value
}

// each returns the every<T> facade over every value satisfying this cell.
func (c *cell[T]) each() Every[T] {
	if c.hasList() {
		return Every[T]{kind: everyListKind, list: &c.list, n: c.list.size}
	}
	return Every[T]{kind: everySingleKind, single: c.ref()}
}

// ensureList makes sure a list exists, seeding it from the cell's current
// single content (spec §4.3 add_ref / construct_value: "seed it with the
// cell's current content, either the stored single reference or a
// self-reference"). selfDeleter is the concrete deleter for T, used only
// when the cell currently owns a value.
func (c *cell[T]) ensureList(pool *refPagePool, selfDeleter deleter) *refList {
	if c.hasList() {
		return &c.list
	}
	var seed componentRef
	if c.refFlag {
		seed = componentRef{pointer: c.target, del: c.del}
	} else {
		seed = componentRef{pointer: unsafe.Pointer(c.valuePtr()), del: selfDeleter}
	}
	c.list.reserve(pool, 4)
	c.list.pushBack(pool, seed)
	return &c.list
}

// addRef implements spec §4.3 add_ref.
func (c *cell[T]) addRef(pool *refPagePool, selfDeleter deleter, ref componentRef) {
	if !c.refFlag && ref.pointer == unsafe.Pointer(c.valuePtr()) {
		panic("entt: add_ref must not receive a reference to its own value")
	}
	l := c.ensureList(pool, selfDeleter)
	l.pushBack(pool, ref)
}

// constructValue implements spec §4.3 construct_value. Precondition:
// REF=1 (the cell does not already own a value). Fan-out to parent storages
// is the caller's responsibility (it alone knows the transitive parent
// list), performed after this returns.
func (c *cell[T]) constructValue(pool *refPagePool, selfDeleter deleter, value T) {
	if !c.refFlag {
		panic("entt: construct_value called while the cell already owns a value")
	}
	l := c.ensureList(pool, selfDeleter)
	c.value = value
	c.refFlag = false
	l.pushBack(pool, componentRef{pointer: unsafe.Pointer(c.valuePtr()), del: selfDeleter})
}

// destroyValue implements spec §4.3 destroy_value. Precondition: REF=0.
// Fan-out (erase_ref on every parent) must already have been performed by
// the caller before this runs, mirroring the original's erase-then-destroy
// order. Returns true iff the cell is now fully empty and should be
// released by the caller.
func (c *cell[T]) destroyValue(pool *refPagePool) bool {
	if c.refFlag {
		panic("entt: destroy_value called while the cell does not own a value")
	}
	self := unsafe.Pointer(c.valuePtr())
	var zero T
	c.value = zero
	c.refFlag = true
	if !c.hasList() {
		return true
	}
	c.deleteRefFromList(pool, self)
	return false
}

// deleteRef implements spec §4.3 delete_ref, dispatching to the list or
// single-reference form. Returns true iff the cell is now fully empty.
func (c *cell[T]) deleteRef(pool *refPagePool, ptr unsafe.Pointer) bool {
	if !c.refFlag && ptr == unsafe.Pointer(c.valuePtr()) {
		panic("entt: delete_ref must not receive a reference to its own value")
	}
	if c.hasList() {
		c.deleteRefFromList(pool, ptr)
		return false
	}
	if !c.refFlag {
		return false // owns a value; that value is removed via destroy_value, not this path
	}
	if c.target != ptr {
		panic("entt: delete_ref got a reference that does not exist in this cell")
	}
	return true
}

// deleteRefFromList removes the list entry matching ptr via swap-and-pop.
// If exactly one entry remains afterward, the list collapses: for a cell
// that only ever held references (RL -> R) the surviving entry is promoted
// into the cell's single-reference fields; for a cell that owns its own
// value (VL -> V) the surviving entry is that owned value's self-entry, so
// nothing further needs promoting.
func (c *cell[T]) deleteRefFromList(pool *refPagePool, ptr unsafe.Pointer) {
	wasRefOnly := c.refFlag
	n := c.list.size
	for i := 0; i < n; i++ {
		if c.list.at(i).pointer == ptr {
			c.list.set(i, c.list.at(n-1))
			c.list.popBack(pool)
			if n == 2 {
				if wasRefOnly {
					remaining := c.list.at(0)
					c.target = remaining.pointer
					c.del = remaining.del
				}
				c.list.popBack(pool)
			}
			return
		}
	}
	panic("entt: delete_ref got a reference that does not exist in this cell")
}

// destroyAllRefs implements spec §4.3 destroy_all_refs for a cell that only
// ever holds references (never called on a cell that owns a value; that
// path is destroy_value). It cascades every reference's deleter, which in
// turn erases that concrete value from its home storage and fans an
// erase_ref back into this very cell — so the list mutates underneath this
// call. The original iterates the live backing array directly in reverse
// to survive that reentrancy; this instead snapshots the records up front,
// which observes the identical deletion order without depending on the
// backing slab surviving a mid-cascade free-and-reuse.
func (c *cell[T]) destroyAllRefs(pool *refPagePool, r *Registry, e Entity) {
	if c.hasList() {
		n := c.list.size
		snapshot := make([]componentRef, n)
		for i := 0; i < n; i++ {
			snapshot[i] = c.list.at(i)
		}
		for i := n - 1; i >= 0; i-- {
			snapshot[i].del(r, e)
		}
		return
	}
	if c.refFlag {
		single := componentRef{pointer: c.target, del: c.del}
		single.del(r, e)
	}
}
