package entt

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ParentType is a witness for one direct parent in an Inherit declaration.
// Go has no compile-time template parameter packs to expand the way
// entt::inherit<ParentT...> does, so ParentOf[P] closes over the parent's
// static type P once, at registration time, producing the runtime dispatch
// closures (emplaceRef/eraseRef) that hierarchy fan-out calls by iterating
// a plain slice instead of expanding a type list at compile time.
type ParentType struct {
	typ        reflect.Type
	emplaceRef func(r *Registry, e Entity, ref componentRef)
	eraseRef   func(r *Registry, e Entity, ptr unsafe.Pointer)
}

// ParentOf declares P as a direct parent for use with Inherit.
func ParentOf[P any]() ParentType {
	return ParentType{
		typ: reflect.TypeOf((*P)(nil)).Elem(),
		emplaceRef: func(r *Registry, e Entity, ref componentRef) {
			Assure[P](r).EmplaceRef(r, e, ref)
		},
		eraseRef: func(r *Registry, e Entity, ptr unsafe.Pointer) {
			Assure[P](r).EraseRef(r, e, ptr)
		},
	}
}

// ancestorEdge pairs a transitive ancestor with the byte offset, within the
// registered type's own memory layout, of that ancestor's embedded field.
// Go has no automatic base-pointer adjustment the way C++'s static_cast
// does for a non-first base class, so fan-out must add this offset to a
// concrete value's address itself before handing the result to the
// ancestor's storage — otherwise every ancestor after the first embedded
// field would receive an address that actually belongs to a sibling field.
type ancestorEdge struct {
	p      ParentType
	offset uintptr
}

type hierarchyInfo struct {
	typ        reflect.Type
	direct     []ParentType
	transitive []ancestorEdge // deduped, direct parents first then grandparents, in declaration order

	// duplicateAncestor is set when de-duplicating direct parents and their
	// own transitive ancestors collapsed one or more repeated entries — a
	// diagnostic-only signal (spec §3) that the declared hierarchy shares an
	// ancestor along more than one path, e.g. a diamond.
	duplicateAncestor bool
}

var hierarchies = map[reflect.Type]*hierarchyInfo{}

// fieldOffsetOf resolves the byte offset, within t, of the embedded field
// introduced by the (necessarily named, necessarily anonymously embedded)
// ancestor type named name. reflect.Type.FieldByName finds the field through
// any number of levels of anonymous embedding, but the Offset it reports is
// relative to the innermost struct holding the field, so the offsets along
// the field's Index path are summed here; that covers direct parents and
// grandparents reached only through a parent's own embedding alike.
func fieldOffsetOf(t reflect.Type, name string) uintptr {
	f, ok := t.FieldByName(name)
	if !ok {
		panic(fmt.Sprintf("entt: %s has no embedded ancestor field named %s", t, name))
	}
	var offset uintptr
	cur := t
	for _, i := range f.Index {
		sf := cur.Field(i)
		offset += sf.Offset
		cur = sf.Type
	}
	return offset
}

// MarkPolymorphic registers T as a polymorphic component with no parents
// (a hierarchy root). Every type appearing anywhere in a hierarchy —
// including one only ever used as the topmost ancestor — must be
// registered, either via MarkPolymorphic or via Inherit.
func MarkPolymorphic[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, exists := hierarchies[t]; exists {
		panic(fmt.Sprintf("entt: %s is already registered as polymorphic", t))
	}
	hierarchies[t] = &hierarchyInfo{typ: t}
	debugLog.Debugf("entt: registered polymorphic root %s", t)
}

// Inherit registers T as a polymorphic component with the given direct
// parents, which must already be registered (parents must be declared
// before their children, exactly as a C++ base class must be fully defined
// before it is named in a derived class's inherit<> list).
func Inherit[T any](direct ...ParentType) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, exists := hierarchies[t]; exists {
		panic(fmt.Sprintf("entt: %s is already registered as polymorphic", t))
	}
	seen := map[reflect.Type]bool{}
	var flat []ParentType
	duplicate := false
	for _, p := range direct {
		if _, ok := hierarchies[p.typ]; !ok {
			panic(fmt.Sprintf("entt: parent %s of %s is not registered as polymorphic; register parents before children", p.typ, t))
		}
		if !seen[p.typ] {
			seen[p.typ] = true
			flat = append(flat, p)
		} else {
			duplicate = true
		}
	}
	for _, p := range direct {
		for _, gp := range hierarchies[p.typ].transitive {
			if !seen[gp.p.typ] {
				seen[gp.p.typ] = true
				flat = append(flat, gp.p)
			} else {
				duplicate = true
			}
		}
	}
	transitive := make([]ancestorEdge, len(flat))
	for i, p := range flat {
		transitive[i] = ancestorEdge{p: p, offset: fieldOffsetOf(t, p.typ.Name())}
	}
	hierarchies[t] = &hierarchyInfo{typ: t, direct: direct, transitive: transitive, duplicateAncestor: duplicate}
	if duplicate {
		debugLog.Warnf("entt: %s reaches at least one ancestor through more than one path; de-duplicated", t)
	}
	debugLog.Debugf("entt: registered polymorphic type %s with %d direct and %d transitive parents", t, len(direct), len(transitive))
}

// IsPolymorphic reports whether T has been registered via MarkPolymorphic
// or Inherit.
func IsPolymorphic[T any]() bool {
	_, ok := hierarchies[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// Parents returns every ancestor of T, direct or transitive, deduplicated,
// in the order fan-out visits them. Returns nil if T is not polymorphic.
func Parents[T any]() []reflect.Type {
	info, ok := hierarchies[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil
	}
	out := make([]reflect.Type, len(info.transitive))
	for i, p := range info.transitive {
		out[i] = p.p.typ
	}
	return out
}

// HasDuplicateAncestor reports whether de-duplicating T's transitive parent
// list during Inherit collapsed at least one repeated entry — a
// diagnostic-only signal (spec §3) that T reaches some ancestor along more
// than one path, e.g. a diamond. Returns false for a type registered via
// MarkPolymorphic or not registered at all.
func HasDuplicateAncestor[T any]() bool {
	info, ok := hierarchies[reflect.TypeOf((*T)(nil)).Elem()]
	return ok && info.duplicateAncestor
}

// DirectParents returns only the parents T declared directly via Inherit.
func DirectParents[T any]() []reflect.Type {
	info, ok := hierarchies[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil
	}
	out := make([]reflect.Type, len(info.direct))
	for i, p := range info.direct {
		out[i] = p.typ
	}
	return out
}

// IsParentOf reports whether Parent is a direct or transitive ancestor of
// Child.
func IsParentOf[Parent, Child any]() bool {
	info, ok := hierarchies[reflect.TypeOf((*Child)(nil)).Elem()]
	if !ok {
		return false
	}
	pt := reflect.TypeOf((*Parent)(nil)).Elem()
	for _, p := range info.transitive {
		if p.p.typ == pt {
			return true
		}
	}
	return false
}

// IsDirectParentOf reports whether Parent is a direct ancestor of Child.
func IsDirectParentOf[Parent, Child any]() bool {
	info, ok := hierarchies[reflect.TypeOf((*Child)(nil)).Elem()]
	if !ok {
		return false
	}
	pt := reflect.TypeOf((*Parent)(nil)).Elem()
	for _, p := range info.direct {
		if p.typ == pt {
			return true
		}
	}
	return false
}

// IsSameOrParentOf reports whether Parent and Child are the same type, or
// Parent is an ancestor of Child.
func IsSameOrParentOf[Parent, Child any]() bool {
	if reflect.TypeOf((*Parent)(nil)).Elem() == reflect.TypeOf((*Child)(nil)).Elem() {
		return true
	}
	return IsParentOf[Parent, Child]()
}
