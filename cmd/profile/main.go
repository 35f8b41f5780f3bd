// Profiling:
// go build ./cmd/profile
// go tool pprof -http=":8000" -nodefraction=0.001 ./profile mem.pprof
package main

import (
	"github.com/pkg/profile"

	entt "github.com/zheka2304/entt-poly"
)

type transform struct{ X, Y int64 }

type ticking struct{ ticks int64 }

type physicsBase struct{ V int64 }

type physics struct {
	physicsBase
	ticking
}

func init() {
	entt.MarkPolymorphic[physicsBase]()
	entt.MarkPolymorphic[ticking]()
	entt.Inherit[physics](entt.ParentOf[physicsBase](), entt.ParentOf[ticking]())
}

func main() {
	rounds := 50
	iters := 10000
	entities := 1000

	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

// run repeatedly builds a registry, fills it with entities carrying both
// an ordinary transform and a polymorphic physics value, drives every<T>
// storage churn through a view join, then tears every entity down again —
// profiling allocations under sustained emplace and remove pressure. Each
// entity carries a single physics value, so every ancestor cell holds one
// reference and no reference list is taken from the page pool.
func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		r := entt.NewRegistry()

		for j := 0; j < iters; j++ {
			ents := make([]entt.Entity, 0, numEntities)
			for i := 0; i < numEntities; i++ {
				e := r.CreateEntity()
				entt.EmplaceOrdinary(r, e, transform{})
				entt.Emplace(r, e, physics{})
				ents = append(ents, e)
			}

			view := entt.NewView2[transform](r, entt.EveryAxis[ticking]())
			view.Each(func(e entt.Entity, tr *transform, ticks entt.Every[ticking]) {
				for i := 0; i < ticks.Len(); i++ {
					ticks.At(i).ticks++
				}
				tr.X++
			})

			for _, e := range ents {
				r.DestroyEntity(e)
			}
		}
	}
}
