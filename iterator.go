package entt

// everyKind discriminates the two shapes Every can wrap: a single value, or
// a list of references. This is the explicit-discriminator alternative to
// the original's "iterator offset -1" trick for telling the value fast
// path apart from the list path without allocating an iterator object for
// the single-value case; spec §9 notes both are observably equivalent.
type everyKind uint8

const (
	everySingleKind everyKind = iota
	everyListKind
)

// Every is the every<T> iteration facade (spec §4.5): the set of every
// value of type T reachable on one entity, whether that is a single owned
// value, a single reference, or several references collected from a shared
// ancestor cell.
type Every[T any] struct {
	kind   everyKind
	single *T
	list   *refList
	n      int
}

// Len reports how many values this Every covers.
func (e Every[T]) Len() int {
	if e.kind == everyListKind {
		return e.n
	}
	if e.single != nil {
		return 1
	}
	return 0
}

// At returns the i'th value, 0 <= i < Len().
func (e Every[T]) At(i int) *T {
	if e.kind == everyListKind {
		return (*T)(e.list.at(i).pointer)
	}
	return e.single
}

// All returns a range-over-func sequence over every value, the idiomatic
// Go 1.23+ way to walk an Every without indexing it by hand:
//
//	for v := range every.All() {
//	    ...
//	}
func (e Every[T]) All() func(yield func(*T) bool) {
	return func(yield func(*T) bool) {
		n := e.Len()
		for i := 0; i < n; i++ {
			if !yield(e.At(i)) {
				return
			}
		}
	}
}
