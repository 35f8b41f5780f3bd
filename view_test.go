package entt

import "testing"

// Types for View3: an entity carries an ordinary position plus a
// polymorphic health : inherit<vitalBase>, so it has three joinable axes
// (position, health, and health's ancestor vitalBase). viewTag is declared
// alongside but is neither registered nor used by these tests; View4 below
// uses its own vitalBase4/viewHealth4/viewTag4 types.
type viewPosition struct{ X int }
type vitalBase struct{ Max int }
type viewHealth struct {
	vitalBase
	Current int
}
type viewTag struct {
	vitalBase
	Name string
}

func TestView3JoinsThreeAxes(t *testing.T) {
	MarkPolymorphic[vitalBase]()
	Inherit[viewHealth](ParentOf[vitalBase]())

	r := NewRegistry()
	e1 := r.CreateEntity()
	EmplaceOrdinary(r, e1, viewPosition{X: 1})
	if _, err := Emplace(r, e1, viewHealth{vitalBase: vitalBase{Max: 100}, Current: 40}); err != nil {
		t.Fatal(err)
	}

	e2 := r.CreateEntity() // no viewHealth: must be excluded from the join
	EmplaceOrdinary(r, e2, viewPosition{X: 2})

	view := NewView3[viewPosition](r, Value[viewHealth](), Value[vitalBase]())
	seen := map[Entity]bool{}
	view.Each(func(e Entity, pos *viewPosition, h *viewHealth, base *vitalBase) {
		seen[e] = true
		if pos.X != 1 || h.Current != 40 || base.Max != 100 {
			t.Fatalf("unexpected row for entity %v: pos=%v h=%v base=%v", e, pos, h, base)
		}
	})
	if len(seen) != 1 || !seen[e1] {
		t.Fatalf("expected the join to visit exactly e1, got %v", seen)
	}
}

type vitalBase4 struct{ Max int }
type viewHealth4 struct {
	vitalBase4
	Current int
}
type viewTag4 struct {
	vitalBase4
	Name string
}

func TestView4JoinsFourAxes(t *testing.T) {
	MarkPolymorphic[vitalBase4]()
	Inherit[viewHealth4](ParentOf[vitalBase4]())
	Inherit[viewTag4](ParentOf[vitalBase4]())

	r := NewRegistry()
	e := r.CreateEntity()
	EmplaceOrdinary(r, e, viewPosition{X: 7})
	if _, err := Emplace(r, e, viewHealth4{vitalBase4: vitalBase4{Max: 100}, Current: 55}); err != nil {
		t.Fatal(err)
	}
	if _, err := Emplace(r, e, viewTag4{vitalBase4: vitalBase4{Max: 100}, Name: "boss"}); err != nil {
		t.Fatal(err)
	}

	view := NewView4[viewPosition](r, Value[viewHealth4](), Value[viewTag4](), EveryAxis[vitalBase4]())
	count := 0
	view.Each(func(ent Entity, pos *viewPosition, h *viewHealth4, tag *viewTag4, base Every[vitalBase4]) {
		count++
		if pos.X != 7 || h.Current != 55 || tag.Name != "boss" {
			t.Fatalf("unexpected row: pos=%v h=%v tag=%v", pos, h, tag)
		}
		if base.Len() != 2 {
			t.Fatalf("expected every<vitalBase4> to see both viewHealth4's and viewTag4's shares, got %d", base.Len())
		}
	})
	if count != 1 {
		t.Fatalf("expected the 4-way join to visit exactly one entity, got %d", count)
	}
}
