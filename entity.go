// Package entt implements a polymorphic component storage engine for an
// entity-component registry, modeled on EnTT's entt::polymorphic feature:
// hierarchy descriptors, a page-pooled reference list, four-state container
// cells, hierarchy fan-out on construction/destruction, and the
// every<T> iteration facade for entities holding several values of a shared
// ancestor type.
package entt

// Entity is an opaque identifier for an object in a Registry. It pairs a
// recyclable ID with a generation counter so a stale handle to a destroyed
// entity can never be confused with whatever entity is later allocated at
// the same ID.
type Entity struct {
	ID      uint32
	Version uint32
}

// pageSize is the element count of one page in every paged allocator this
// package uses: component storage pages and reference-list slabs alike.
const pageSize = 1024
