package entt

// axisFn fetches one axis's contribution for an entity already selected by
// a view's driver type: either a single value (Value) or an every<T> group
// (EveryAxis). Composing views out of these closures, rather than trying to
// infer axis shape from a type parameter, is the Go stand-in for the
// original's compile-time template dispatch across mixed U / every<U>
// view arguments.
type axisFn[X any] func(r *Registry, e Entity) (X, bool)

// Value builds a single-value view axis for T, polymorphic or ordinary.
func Value[T any]() axisFn[*T] {
	return func(r *Registry, e Entity) (*T, bool) {
		p := TryGet[T](r, e)
		return p, p != nil
	}
}

// EveryAxis builds an every<T> view axis: T must be polymorphic.
func EveryAxis[T any]() axisFn[Every[T]] {
	return func(r *Registry, e Entity) (Every[T], bool) {
		c, _, ok := Assure[T](r).find(e)
		if !ok {
			return Every[T]{}, false
		}
		return c.each(), true
	}
}

// driverEach iterates every entity carrying at least one value of T,
// yielding one row per value when T is a polymorphic ancestor shared by
// several concrete descendants on the same entity (spec §6).
func driverEach[T any](r *Registry, fn func(Entity, *T)) {
	if IsPolymorphic[T]() {
		Assure[T](r).EachValue(fn)
	} else {
		AssureOrdinary[T](r).Each(fn)
	}
}

// View1 iterates entities driven solely by A's own storage, with no joined
// axis. Equivalent to the original's plain view<T>().each(); the degenerate
// first member of the View1..View5 family.
type View1[A any] struct {
	r *Registry
}

func NewView1[A any](r *Registry) *View1[A] {
	return &View1[A]{r: r}
}

func (v *View1[A]) Each(fn func(Entity, *A)) {
	driverEach[A](v.r, fn)
}

// Each1 iterates every value of T across every entity, driven directly by
// T's own storage. A thin convenience wrapper over View1 for the common
// case of a one-off iteration with no need to retain the view value.
func Each1[T any](r *Registry, fn func(Entity, *T)) {
	NewView1[T](r).Each(fn)
}

// EachEvery1 iterates every entity with at least one value of T, grouped
// via the every<T> facade. Equivalent to view<every<T>>().each().
func EachEvery1[T any](r *Registry, fn func(Entity, Every[T])) {
	Assure[T](r).EachEvery(fn)
}

// View2 iterates entities driven by A's storage, joined with one further
// axis B (a Value[X] or EveryAxis[X] axis).
type View2[A, B any] struct {
	r *Registry
	b axisFn[B]
}

func NewView2[A, B any](r *Registry, b axisFn[B]) *View2[A, B] {
	return &View2[A, B]{r: r, b: b}
}

func (v *View2[A, B]) Each(fn func(Entity, *A, B)) {
	driverEach[A](v.r, func(e Entity, a *A) {
		b, ok := v.b(v.r, e)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

// View3 iterates entities driven by A's storage, joined with two further
// axes B, C.
type View3[A, B, C any] struct {
	r *Registry
	b axisFn[B]
	c axisFn[C]
}

func NewView3[A, B, C any](r *Registry, b axisFn[B], c axisFn[C]) *View3[A, B, C] {
	return &View3[A, B, C]{r: r, b: b, c: c}
}

func (v *View3[A, B, C]) Each(fn func(Entity, *A, B, C)) {
	driverEach[A](v.r, func(e Entity, a *A) {
		b, ok := v.b(v.r, e)
		if !ok {
			return
		}
		c, ok := v.c(v.r, e)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

// View4 iterates entities driven by A's storage, joined with three further
// axes B, C, D.
type View4[A, B, C, D any] struct {
	r *Registry
	b axisFn[B]
	c axisFn[C]
	d axisFn[D]
}

func NewView4[A, B, C, D any](r *Registry, b axisFn[B], c axisFn[C], d axisFn[D]) *View4[A, B, C, D] {
	return &View4[A, B, C, D]{r: r, b: b, c: c, d: d}
}

func (v *View4[A, B, C, D]) Each(fn func(Entity, *A, B, C, D)) {
	driverEach[A](v.r, func(e Entity, a *A) {
		b, ok := v.b(v.r, e)
		if !ok {
			return
		}
		c, ok := v.c(v.r, e)
		if !ok {
			return
		}
		d, ok := v.d(v.r, e)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}

// View5 iterates entities driven by A's storage, joined with four further
// axes B, C, D, E. Used for a five-way join spanning both an every<T>
// group and several single-value polymorphic axes on the same entity.
type View5[A, B, C, D, E any] struct {
	r *Registry
	b axisFn[B]
	c axisFn[C]
	d axisFn[D]
	e axisFn[E]
}

func NewView5[A, B, C, D, E any](r *Registry, b axisFn[B], c axisFn[C], d axisFn[D], e axisFn[E]) *View5[A, B, C, D, E] {
	return &View5[A, B, C, D, E]{r: r, b: b, c: c, d: d, e: e}
}

func (v *View5[A, B, C, D, E]) Each(fn func(Entity, *A, B, C, D, E)) {
	driverEach[A](v.r, func(ent Entity, a *A) {
		b, ok := v.b(v.r, ent)
		if !ok {
			return
		}
		c, ok := v.c(v.r, ent)
		if !ok {
			return
		}
		d, ok := v.d(v.r, ent)
		if !ok {
			return
		}
		e, ok := v.e(v.r, ent)
		if !ok {
			return
		}
		fn(ent, a, b, c, d, e)
	})
}
