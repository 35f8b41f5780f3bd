package entt

// Builder streamlines the common "create an entity that immediately
// carries one value of T" pattern, mirroring the teacher library's
// Builder[T] ergonomics but dispatching to whichever storage kind T uses
// (polymorphic or ordinary) instead of pre-selecting an archetype, since
// this package has no archetypes to pre-select.
type Builder[T any] struct {
	r *Registry
}

// NewBuilder returns a Builder for component type T against r.
func NewBuilder[T any](r *Registry) Builder[T] {
	return Builder[T]{r: r}
}

// New creates a fresh entity and gives it value as its T. For a
// polymorphic T this also fans the value out to every registered ancestor,
// exactly as a direct Emplace call would.
func (b Builder[T]) New(value T) (Entity, *T, error) {
	e := b.r.CreateEntity()
	v, err := emplaceAny[T](b.r, e, value)
	if err != nil {
		b.r.DestroyEntity(e)
		return Entity{}, nil, err
	}
	return e, v, nil
}
