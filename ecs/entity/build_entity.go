package entity

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Name       string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"mirror":       addMirror,
	"physics_body": addPhysicsBody,
	"container":    addContainer,
	"highlight":    addHighlight,
	"platform":     addPlatform,
}

// Transform comes first so later builders can read the scale.
var componentBuildOrder = []string{
	"transform",
	"sprite",
	"render_layer",
	"mirror",
	"physics_body",
	"container",
	"highlight",
	"platform",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Name: spec.Name}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	apply := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := apply(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := apply(name); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, err
			}
		}
	}

	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("sprite needs a positive width and height, got %dx%d", spec.Width, spec.Height)
	}
	if spec.Depth < 0 || spec.Depth > 1 {
		return fmt.Errorf("sprite depth %v outside [0, 1]", spec.Depth)
	}

	sprite := component.Sprite{
		Key:        spec.Image,
		Source:     image.Rect(spec.SourceX, spec.SourceY, spec.SourceX+spec.Width, spec.SourceY+spec.Height),
		UseSource:  spec.UseSource,
		OriginX:    spec.OriginX,
		OriginY:    spec.OriginY,
		Depth:      spec.Depth,
		FacingLeft: spec.FacingLeft,
	}
	if sprite.Key == "" {
		sprite.Key = placeholderKey(ctx)
	}
	if spec.Color != nil {
		sprite.Fill = spec.Color.Color
	}
	if spec.Tint != nil {
		sprite.Tint = spec.Tint.Color
	}
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero {
		sprite.OriginX = float64(spec.Width) / 2
		sprite.OriginY = float64(spec.Height) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func placeholderKey(ctx *buildContext) string {
	if ctx.Name != "" {
		return "placeholder/" + ctx.Name
	}
	return "placeholder/" + ctx.PrefabPath
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type mirrorSpec = prefabs.MirrorComponentSpec

func addMirror(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[mirrorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mirror spec: %w", err)
	}
	return ecs.Add(w, e, component.MirrorComponent.Kind(), &component.Mirror{
		FlippedX: spec.FlippedX,
		FlippedY: spec.FlippedY,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Static && spec.Kinematic {
		return fmt.Errorf("physics body cannot be both static and kinematic")
	}
	if spec.Width <= 0 {
		spec.Width = 32
	}
	if spec.Height <= 0 {
		spec.Height = 32
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Width,
		Height:     spec.Height,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
		Kinematic:  spec.Kinematic,
		FacingLeft: spec.FacingLeft,
		Disabled:   spec.Disabled,
	})
}

type containerSpec = prefabs.ContainerComponentSpec

func addContainer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[containerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode container spec: %w", err)
	}
	if spec.Capacity <= 0 {
		return fmt.Errorf("container capacity must be positive, got %d", spec.Capacity)
	}
	c := component.NewContainer(spec.Capacity)
	applyContainerSpec(c, spec)
	return ecs.Add(w, e, component.ContainerComponent.Kind(), c)
}

// applyContainerSpec copies layout parameters onto c. Slots are left alone.
func applyContainerSpec(c *component.Container, spec containerSpec) {
	c.Anchor = cp.Vector{X: spec.AnchorX, Y: spec.AnchorY}
	c.Interval = cp.Vector{X: spec.IntervalX, Y: spec.IntervalY}
	c.ItemsPerRow = spec.ItemsPerRow
	if c.ItemsPerRow == 0 {
		c.ItemsPerRow = component.DefaultItemsPerRow
	}
	c.Rotation = spec.Rotation * math.Pi / 180
	c.Depth = component.NoDepthOverride
	if spec.Depth != nil {
		c.Depth = *spec.Depth
	}
	c.HideItems = spec.HideItems
	c.AutoInteract = spec.AutoInteract
}

type highlightSpec = prefabs.HighlightComponentSpec

func addHighlight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[highlightSpec](raw)
	if err != nil {
		return fmt.Errorf("decode highlight spec: %w", err)
	}
	return ecs.Add(w, e, component.HighlightComponent.Kind(), &component.Highlight{On: spec.On})
}

func addPlatform(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{})
}
