package entt

import "github.com/google/uuid"

// AllocatorID identifies a reference-list page pool. Storages created
// against the same AllocatorID share their page pools, so two hierarchies
// registered on independent registries with distinct allocators never
// contend over the same pages, and pages allocated under one AllocatorID
// are never observed from another. Backed by github.com/google/uuid for a
// collision-free process-wide identity, since the reference-list page pool
// (unlike component storages) is deliberately keyed by an identity that can
// outlive, or be shared across, more than one Registry.
type AllocatorID uuid.UUID

// NewAllocatorID mints a fresh allocator identity.
func NewAllocatorID() AllocatorID {
	return AllocatorID(uuid.New())
}

// DefaultAllocator is the allocator identity a Registry uses unless told
// otherwise via NewRegistryWithAllocator.
var DefaultAllocator = NewAllocatorID()
