package entt

import "reflect"

// anyStorage is the type-erased handle a Registry keeps for every storage
// it has created, used only to fan DestroyEntity out across every storage
// without the registry needing to know which are polymorphic.
type anyStorage interface {
	eraseEntity(r *Registry, e Entity)
}

// Registry owns entity identity allocation and every component storage for
// one world. It corresponds to entt::basic_registry, narrowed to what this
// package's storages need. Per spec §5, a Registry (and every AllocatorID
// it draws from) is not safe for concurrent mutation from multiple
// goroutines; callers that need that must serialize their own access.
type Registry struct {
	versions  []uint32 // per entity ID; 0 = free/never allocated
	freeIDs   []uint32
	nextVer   uint32
	storages  map[reflect.Type]anyStorage
	allocator AllocatorID
	events    *LifecycleBus
}

// NewRegistry creates a Registry using the process-wide DefaultAllocator
// for its reference-list page pool.
func NewRegistry() *Registry {
	return NewRegistryWithAllocator(DefaultAllocator)
}

// NewRegistryWithAllocator creates a Registry whose polymorphic storages
// draw reference-list pages from the given allocator identity, letting
// several registries share (or, with distinct IDs, never share) page pools.
func NewRegistryWithAllocator(id AllocatorID) *Registry {
	return &Registry{
		storages:  map[reflect.Type]anyStorage{},
		allocator: id,
		events:    &LifecycleBus{},
	}
}

// Events returns the registry's lifecycle event bus.
func (r *Registry) Events() *LifecycleBus { return r.events }

// CreateEntity allocates a fresh entity, reusing a recycled ID when one is
// available.
func (r *Registry) CreateEntity() Entity {
	var id uint32
	if n := len(r.freeIDs); n > 0 {
		id = r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
	} else {
		id = uint32(len(r.versions))
		r.versions = append(r.versions, 0)
	}
	r.nextVer++
	r.versions[id] = r.nextVer
	return Entity{ID: id, Version: r.versions[id]}
}

// IsValid reports whether e refers to a currently live entity.
func (r *Registry) IsValid(e Entity) bool {
	return int(e.ID) < len(r.versions) && r.versions[e.ID] != 0 && r.versions[e.ID] == e.Version
}

// DestroyEntity erases every component the entity carries, across every
// storage the registry has created, then recycles its ID. Storage order is
// unspecified (map iteration order): each storage's erase path is
// idempotent to a cell that fan-out from another storage has already
// emptied, so which storage runs first never changes the outcome, per
// spec's order-independence property.
func (r *Registry) DestroyEntity(e Entity) {
	if !r.IsValid(e) {
		return
	}
	for _, st := range r.storages {
		st.eraseEntity(r, e)
	}
	r.versions[e.ID] = 0
	r.freeIDs = append(r.freeIDs, e.ID)
}

// Assure returns the polymorphic storage for T, creating it on first use.
// T must already be registered via MarkPolymorphic or Inherit.
func Assure[T any](r *Registry) *PolyStorage[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if st, ok := r.storages[t]; ok {
		return st.(*PolyStorage[T])
	}
	st := newPolyStorage[T](r)
	r.storages[t] = st
	return st
}

// AssureOrdinary returns the ordinary (non-polymorphic) storage for T,
// creating it on first use.
func AssureOrdinary[T any](r *Registry) *ComponentStorage[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if st, ok := r.storages[t]; ok {
		return st.(*ComponentStorage[T])
	}
	st := newComponentStorage[T]()
	r.storages[t] = st
	return st
}

// Emplace constructs T's value for e via T's polymorphic storage.
func Emplace[T any](r *Registry, e Entity, value T) (*T, error) {
	return Assure[T](r).Emplace(r, e, value)
}

// EmplaceOrdinary sets e's value of the ordinary component T.
func EmplaceOrdinary[T any](r *Registry, e Entity, value T) *T {
	return AssureOrdinary[T](r).Emplace(e, value)
}

// emplaceAny dispatches to whichever storage kind T uses; it exists so
// generic helpers like Builder don't need to know in advance whether T is
// polymorphic.
func emplaceAny[T any](r *Registry, e Entity, value T) (*T, error) {
	if IsPolymorphic[T]() {
		return Assure[T](r).Emplace(r, e, value)
	}
	return AssureOrdinary[T](r).Emplace(e, value), nil
}

// TryGet returns a pointer to e's value of T (polymorphic or ordinary), or
// nil if it has none.
func TryGet[T any](r *Registry, e Entity) *T {
	if IsPolymorphic[T]() {
		return Assure[T](r).TryGet(e)
	}
	return AssureOrdinary[T](r).TryGet(e)
}

// Remove erases e's value of T (polymorphic or ordinary). Returns the
// number of cells removed from T's storage: 1 if T was present, 0
// otherwise.
func Remove[T any](r *Registry, e Entity) int {
	if IsPolymorphic[T]() {
		return Assure[T](r).Remove(r, e)
	}
	return AssureOrdinary[T](r).Remove(e)
}
