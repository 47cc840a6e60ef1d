package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/common"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/ecs/entity"
	"github.com/milk9111/stowage/ecs/render"
	"github.com/milk9111/stowage/ecs/system"
	"github.com/milk9111/stowage/prefabs"
)

const (
	platformSwing  = 60.0
	platformPeriod = 240.0
)

var background = color.NRGBA{R: 0x14, G: 0x16, B: 0x1c, A: 0xff}

type Options struct {
	Scene  string
	Debug  bool
	Watch  bool
	Logger *log.Logger
}

type Game struct {
	opts   Options
	logger *log.Logger

	world      *ecs.World
	scene      *entity.Scene
	physics    *system.PhysicsSystem
	scheduler  *ecs.Scheduler
	sprites    *system.SpriteDrawSystem
	containers *system.ContainerDrawSystem
	queue      *render.Queue
	watcher    *prefabs.Watcher
	hud        *hud

	frames      int
	paused      bool
	selected    int
	corrections int
	platformX   map[ecs.Entity]float64
}

func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	world := ecs.NewWorld()
	scene, err := entity.BuildScene(world, opts.Scene, logger)
	if err != nil {
		return nil, err
	}

	physics := system.NewPhysicsSystem()
	physics.EnsureBodies(world)

	g := &Game{
		opts:       opts,
		logger:     logger,
		world:      world,
		scene:      scene,
		physics:    physics,
		sprites:    system.NewSpriteDrawSystem(),
		containers: system.NewContainerDrawSystem(logger),
		queue:      render.NewQueue(logger),
		hud:        newHUD(),
		platformX:  make(map[ecs.Entity]float64),
	}
	g.scheduler = ecs.NewScheduler(
		physics,
		system.NewContainerSyncSystem(logger),
	)

	ecs.ForEach2(world, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Platform, t *component.Transform) {
		g.platformX[e] = t.X
	})

	n := render.PrepareSprites(world, logger)
	logger.Info("scene ready", "scene", scene.Name, "items", len(scene.IDs()), "images", n)

	if opts.Watch {
		watcher, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			logger.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	g.applyReloads()
	g.handleInput()
	g.selectHighlight()

	if g.paused {
		return nil
	}

	g.movePlatforms()
	g.scheduler.Update(g.world)
	for _, ev := range g.world.Events().Drain() {
		if ev.Type == ecs.EventRotationCorrected {
			g.corrections++
		}
	}
	return nil
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			name := prefabs.Name(path)
			n, err := g.scene.ReloadPrefab(g.world, name)
			if err != nil {
				g.logger.Warn("prefab reload failed", "prefab", name, "err", err)
				continue
			}
			g.logger.Info("prefab reloaded", "prefab", name, "containers", n)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) handleInput() {
	roots := system.RootContainers(g.world)
	if len(roots) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.selected = (g.selected + 1) % len(roots)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	g.selected %= len(roots)
	sel := roots[g.selected]

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		if c, ok := ecs.Get(g.world, sel, component.ContainerComponent.Kind()); ok {
			c.HideItems = !c.HideItems
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		if body, ok := ecs.Get(g.world, sel, component.PhysicsBodyComponent.Kind()); ok {
			body.FacingLeft = !body.FacingLeft
		} else {
			g.toggleMirror(sel, func(m *component.Mirror) { m.FlippedX = !m.FlippedX })
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.toggleMirror(sel, func(m *component.Mirror) { m.FlippedY = !m.FlippedY })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if body, ok := ecs.Get(g.world, sel, component.PhysicsBodyComponent.Kind()); ok {
			body.Disabled = !body.Disabled
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if body, ok := ecs.Get(g.world, sel, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && !body.Static && !body.Kinematic {
			body.Body.ApplyImpulseAtLocalPoint(cp.Vector{X: 0, Y: -220}, cp.Vector{X: body.Width / 3, Y: 0})
		}
	}
}

func (g *Game) toggleMirror(e ecs.Entity, fn func(m *component.Mirror)) {
	m, ok := ecs.Get(g.world, e, component.MirrorComponent.Kind())
	if !ok {
		m = &component.Mirror{}
	}
	fn(m)
	if err := ecs.Add(g.world, e, component.MirrorComponent.Kind(), m); err != nil {
		g.logger.Warn("toggle mirror", "entity", e, "err", err)
	}
}

// selectHighlight lights up the selected outermost container. Containers that
// auto-interact hand the highlight to their contents during the sync pass.
func (g *Game) selectHighlight() {
	roots := system.RootContainers(g.world)
	for i, e := range roots {
		if h, ok := ecs.Get(g.world, e, component.HighlightComponent.Kind()); ok {
			h.On = i == g.selected
		}
	}
}

func (g *Game) movePlatforms() {
	t := (math.Sin(2*math.Pi*float64(g.frames)/platformPeriod) + 1) / 2
	for e, baseX := range g.platformX {
		tr, ok := ecs.Get(g.world, e, component.TransformComponent.Kind())
		if !ok {
			delete(g.platformX, e)
			continue
		}
		tr.X = common.Lerp(baseX-platformSwing, baseX+platformSwing, t)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g.sprites.Draw(g.world, g.queue)
	g.containers.Draw(g.world, g.queue)
	g.queue.Flush(screen)

	if g.opts.Debug {
		render.DrawPhysicsDebug(g.physics.Space(), screen)
		render.DrawSlotDebug(g.world, screen)
	}

	g.hud.Draw(screen, g.hudLines())
}

func (g *Game) hudLines() []string {
	lines := []string{
		fmt.Sprintf("scene %s  frame %d  fps %.1f", g.scene.Name, g.frames, ebiten.ActualFPS()),
		"tab select  h hide  f flip x  v flip y  d disable body  space nudge  p pause",
	}
	roots := system.RootContainers(g.world)
	if len(roots) == 0 {
		return lines
	}
	sel := roots[g.selected%len(roots)]
	c, _ := ecs.Get(g.world, sel, component.ContainerComponent.Kind())
	lines = append(lines,
		fmt.Sprintf("selected %s  held %d/%d  hidden %t", g.scene.ID(sel), len(c.Occupied()), c.Capacity(), c.HideItems),
		fmt.Sprintf("rotation corrections %d", g.corrections),
	)
	if !g.opts.Debug {
		return lines
	}
	for _, item := range c.Occupied() {
		p, ok := system.PlacementOf(g.world, item)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-10s (%6.1f, %6.1f) rot %5.2f depth %.2f",
			g.scene.ID(item), p.Position.X, p.Position.Y, p.Rotation, p.Depth))
	}
	return lines
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
