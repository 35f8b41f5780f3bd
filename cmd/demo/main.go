// Command demo renders a terminal-based particle field driven entirely by
// the polymorphic component engine: each particle is an entity carrying an
// ordinary transform and a physics value that fans out to a shared ticking
// ancestor, the transform/physics/ticking part of the shape scenario 5 in
// the design doc exercises (there is no tracker component here).
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	entt "github.com/zheka2304/entt-poly"
)

type transform struct{ X, Y float64 }

type ticking struct {
	onTick func(dt float64)
}

func (t *ticking) tick(dt float64) {
	if t.onTick != nil {
		t.onTick(dt)
	}
}

type physicsBase struct{ VX, VY float64 }

type physics struct {
	physicsBase
	ticking
	glyph rune
	style tcell.Style
}

type game struct {
	screen        tcell.Screen
	width, height int
	r             *entt.Registry
	lastSpawn     time.Time
}

func init() {
	entt.MarkPolymorphic[physicsBase]()
	entt.MarkPolymorphic[ticking]()
	entt.Inherit[physics](entt.ParentOf[physicsBase](), entt.ParentOf[ticking]())
}

func newGame() (*game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	g := &game{screen: screen, r: entt.NewRegistry(), lastSpawn: time.Now()}
	g.width, g.height = screen.Size()
	return g, nil
}

func (g *game) spawn() {
	x := float64(rand.Intn(g.width))
	y := 0.0
	vx := rand.Float64()*2 - 1
	vy := rand.Float64()*1.5 + 0.5

	e := g.r.CreateEntity()
	tr := entt.EmplaceOrdinary(g.r, e, transform{X: x, Y: y})
	ph, err := entt.Emplace(g.r, e, physics{
		physicsBase: physicsBase{VX: vx, VY: vy},
		glyph:       '*',
		style:       tcell.StyleDefault.Foreground(tcell.ColorGreen),
	})
	if err != nil {
		g.r.DestroyEntity(e)
		return
	}
	ph.onTick = func(dt float64) {
		tr.X += ph.VX * dt
		tr.Y += ph.VY * dt
		if tr.Y >= float64(g.height) || tr.X < 0 || tr.X >= float64(g.width) {
			g.r.DestroyEntity(e)
		}
	}
}

func (g *game) tick() {
	if time.Since(g.lastSpawn) > 120*time.Millisecond {
		g.spawn()
		g.lastSpawn = time.Now()
	}

	view := entt.NewView2[transform](g.r, entt.EveryAxis[ticking]())
	view.Each(func(e entt.Entity, tr *transform, ticks entt.Every[ticking]) {
		for i := 0; i < ticks.Len(); i++ {
			ticks.At(i).tick(1.0)
		}
	})
}

func (g *game) draw() {
	g.screen.Clear()
	entt.Each1[physics](g.r, func(e entt.Entity, ph *physics) {
		tr := entt.TryGet[transform](g.r, e)
		if tr == nil {
			return
		}
		x, y := int(tr.X), int(tr.Y)
		if x < 0 || x >= g.width || y < 0 || y >= g.height {
			return
		}
		g.screen.SetContent(x, y, ph.glyph, nil, ph.style)
	})
	g.screen.Show()
}

func (g *game) run() {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
			case *tcell.EventResize:
				g.width, g.height = g.screen.Size()
			}
		case <-ticker.C:
			g.tick()
			g.draw()
		}
	}
}

func (g *game) cleanup() {
	g.screen.Fini()
}

func main() {
	g, err := newGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()
	g.run()
}
