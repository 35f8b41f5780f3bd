package entt

import (
	"reflect"
	"unsafe"
)

// concreteDeleterFor is T's fixed deleter: a function value that erases a
// value of exact type T from its home storage, given only (registry,
// entity). Because it closes only over the generic parameter T, it behaves
// like a single static function per instantiation, exactly matching the
// "one deleter per concrete type" contract spec §3 describes.
func concreteDeleterFor[T any](r *Registry, e Entity) {
	Assure[T](r).eraseValueEntry(r, e)
}

// PolyStorage is the per-component-type storage for a polymorphic
// component, spec §4.4. The same type serves concrete leaves, pure
// ancestors, and types that are simultaneously both (declared as a
// parent while also being emplaced directly) — only the fan-out list and
// which entry points get called at each site differ.
type PolyStorage[T any] struct {
	pagedSet[cell[T]]
	typ        reflect.Type
	allocator  AllocatorID
	transitive []ancestorEdge
	selfDel    deleter
}

// ValueConstructedEvent is published on the registry's lifecycle bus
// whenever a concrete T value comes into existence for an entity, whether
// on a bare cell (spec §4.3's construct into a fresh cell) or by
// constructing into a cell that previously only held references to a
// descendant's value (REF=1 -> REF=0). Subscribers observe it after fan-out
// to every ancestor's storage has already completed.
type ValueConstructedEvent[T any] struct {
	Entity Entity
}

// ValueDestroyedEvent is published on the registry's lifecycle bus whenever
// a concrete T value is torn down, whether directly (Remove/DestroyEntity)
// or as the tail of a cascaded destroy_all_refs. Subscribers observe it
// after the value has already been erased from every ancestor's storage.
type ValueDestroyedEvent[T any] struct {
	Entity Entity
}

func newPolyStorage[T any](r *Registry) *PolyStorage[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	info, ok := hierarchies[t]
	if !ok {
		panic(errNotPolymorphic(t))
	}
	st := &PolyStorage[T]{typ: t, allocator: r.allocator, transitive: info.transitive}
	st.selfDel = concreteDeleterFor[T]
	return st
}

func (s *PolyStorage[T]) pool() *refPagePool { return poolFor(s.allocator) }

func errNotPolymorphic(t reflect.Type) string {
	return "entt: " + t.String() + " is not registered as polymorphic; call MarkPolymorphic or Inherit before use"
}

// Emplace implements spec §4.4 emplace<T>: constructs T's value for e. If e
// already carries a T value, returns a *DuplicateValueError and leaves the
// existing value untouched.
func (s *PolyStorage[T]) Emplace(r *Registry, e Entity, value T) (*T, error) {
	c, _, ok := s.find(e)
	if !ok {
		c = s.alloc(e)
		c.initValue(value)
		s.fanOutEmplace(r, e, unsafe.Pointer(c.valuePtr()))
		Publish(r.Events(), ValueConstructedEvent[T]{Entity: e})
		return c.valuePtr(), nil
	}
	if !c.refFlag {
		debugLog.Warnf("entt: rejected duplicate emplace of %s on entity %v", s.typ, e)
		return nil, &DuplicateValueError{Type: s.typ, Entity: e}
	}
	c.constructValue(s.pool(), s.selfDel, value)
	s.fanOutEmplace(r, e, unsafe.Pointer(c.valuePtr()))
	Publish(r.Events(), ValueConstructedEvent[T]{Entity: e})
	return c.valuePtr(), nil
}

// TryGet returns a pointer to any one value of T satisfying e, or nil.
func (s *PolyStorage[T]) TryGet(e Entity) *T {
	c, _, ok := s.find(e)
	if !ok {
		return nil
	}
	return c.ref()
}

// Every returns the every<T> facade for e; Len()==0 if e has no matching cell.
func (s *PolyStorage[T]) Every(e Entity) Every[T] {
	c, _, ok := s.find(e)
	if !ok {
		return Every[T]{}
	}
	return c.each()
}

// EachValue yields (entity, *T) once per matching value. When an entity's
// cell holds several references sharing this ancestor, it is yielded once
// per reference (spec §6: "view<U>().each() yields one row per descendant
// value").
func (s *PolyStorage[T]) EachValue(fn func(Entity, *T)) {
	s.pagedSet.each(func(e Entity, c *cell[T]) {
		ev := c.each()
		n := ev.Len()
		for i := 0; i < n; i++ {
			fn(e, ev.At(i))
		}
	})
}

// EachEvery yields (entity, Every[T]) once per entity with at least one
// matching value (spec §6/§4.5's every<T> grouping).
func (s *PolyStorage[T]) EachEvery(fn func(Entity, Every[T])) {
	s.pagedSet.each(func(e Entity, c *cell[T]) {
		fn(e, c.each())
	})
}

// Remove implements spec §4.4 remove<T>: erases whatever cell e has in this
// storage, whether that cell owns a value (cascades erase_ref to parents,
// then destroys it) or only holds references to descendant values (cascades
// each reference's deleter, which erases those values in turn). Returns 1
// if a cell existed, 0 otherwise.
func (s *PolyStorage[T]) Remove(r *Registry, e Entity) int {
	c, _, ok := s.find(e)
	if !ok {
		return 0
	}
	if !c.refFlag {
		s.eraseValueEntry(r, e)
		return 1
	}
	c.destroyAllRefs(s.pool(), r, e)
	if _, freshIdx, stillThere := s.find(e); stillThere {
		s.release(e, freshIdx)
	}
	return 1
}

// eraseValueEntry implements spec §4.4 erase_value: called both directly
// by Remove and, indirectly, as the effect of a concrete type's deleter
// firing during an ancestor's cascade.
func (s *PolyStorage[T]) eraseValueEntry(r *Registry, e Entity) {
	c, idx, ok := s.find(e)
	if !ok {
		panic("entt: erase_value called for an entity with no cell in this storage")
	}
	ptr := unsafe.Pointer(c.valuePtr())
	s.fanOutErase(r, e, ptr)
	if c.destroyValue(s.pool()) {
		s.release(e, idx)
	}
	Publish(r.Events(), ValueDestroyedEvent[T]{Entity: e})
}

// EmplaceRef implements spec §4.4 emplace_ref, called by a descendant's
// fan-out during construction. Never transitions a cell to owning a value.
func (s *PolyStorage[T]) EmplaceRef(r *Registry, e Entity, ref componentRef) {
	c, _, ok := s.find(e)
	if !ok {
		c = s.alloc(e)
		c.initRef(ref)
		return
	}
	c.addRef(s.pool(), s.selfDel, ref)
}

// EraseRef implements spec §4.4 erase_ref, called by a descendant's
// fan-out during destruction.
func (s *PolyStorage[T]) EraseRef(r *Registry, e Entity, ptr unsafe.Pointer) {
	c, idx, ok := s.find(e)
	if !ok {
		panic("entt: erase_ref called for an entity with no cell in this storage")
	}
	if c.deleteRef(s.pool(), ptr) {
		s.release(e, idx)
	}
}

// fanOutEmplace hands a reference to the just-constructed value to every
// transitive ancestor's storage. Go performs no base-pointer adjustment when
// a value is viewed through a non-first embedded field the way C++'s
// static_cast does for a non-first base class, so each ancestor gets its own
// adjusted address: the concrete value's base address plus that ancestor's
// registered byte offset within T's layout (hierarchy.go's fieldOffsetOf,
// resolved once at Inherit time).
func (s *PolyStorage[T]) fanOutEmplace(r *Registry, e Entity, ptr unsafe.Pointer) {
	for _, edge := range s.transitive {
		adjusted := unsafe.Pointer(uintptr(ptr) + edge.offset)
		edge.p.emplaceRef(r, e, componentRef{pointer: adjusted, del: s.selfDel})
	}
}

// fanOutErase mirrors fanOutEmplace's offset adjustment so the pointer
// compared against each ancestor's stored reference is bit-identical to the
// one that reference was seeded with.
func (s *PolyStorage[T]) fanOutErase(r *Registry, e Entity, ptr unsafe.Pointer) {
	for _, edge := range s.transitive {
		adjusted := unsafe.Pointer(uintptr(ptr) + edge.offset)
		edge.p.eraseRef(r, e, adjusted)
	}
}

func (s *PolyStorage[T]) eraseEntity(r *Registry, e Entity) { s.Remove(r, e) }

// ComponentStorage is the storage for an ordinary (non-polymorphic)
// component: no fan-out, no reference lists, just a value per entity. Spec
// §4.7.
type ComponentStorage[T any] struct {
	pagedSet[T]
	typ reflect.Type
}

func newComponentStorage[T any]() *ComponentStorage[T] {
	return &ComponentStorage[T]{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// Emplace sets e's value of T, adding it if not already present.
func (s *ComponentStorage[T]) Emplace(e Entity, value T) *T {
	if v, _, ok := s.find(e); ok {
		*v = value
		return v
	}
	v := s.alloc(e)
	*v = value
	return v
}

func (s *ComponentStorage[T]) TryGet(e Entity) *T {
	v, _, ok := s.find(e)
	if !ok {
		return nil
	}
	return v
}

// Remove drops e's value of T, if any. Returns 1 if it existed, 0 otherwise.
func (s *ComponentStorage[T]) Remove(e Entity) int {
	_, idx, ok := s.find(e)
	if !ok {
		return 0
	}
	s.release(e, idx)
	return 1
}

// Each visits every (entity, *T) pair.
func (s *ComponentStorage[T]) Each(fn func(Entity, *T)) {
	s.pagedSet.each(fn)
}

func (s *ComponentStorage[T]) eraseEntity(r *Registry, e Entity) { s.Remove(e) }
