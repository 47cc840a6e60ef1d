package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/layout"
)

// ItemPlacement is one occupied slot resolved for the current frame.
type ItemPlacement struct {
	Owner     ecs.Entity
	Item      ecs.Entity
	Slot      int
	Placement layout.Placement
}

func containerLayout(c *component.Container) layout.Layout {
	return layout.Layout{
		Anchor:      c.Anchor,
		Interval:    c.Interval,
		ItemsPerRow: c.PerRow(),
		Rotation:    c.Rotation,
	}
}

func itemScale(w *ecs.World, e ecs.Entity) float64 {
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	return t.Scale()
}

func itemMirror(w *ecs.World, e ecs.Entity) (bool, bool) {
	m, ok := ecs.Get(w, e, component.MirrorComponent.Kind())
	if !ok {
		return false, false
	}
	return m.FlippedX, m.FlippedY
}

// hidesContents is the entry guard for an outermost container: its items are
// skipped when it hides them or its body is disabled. Nested containers are
// only checked for HideItems, since bodies of held items are usually disabled.
func hidesContents(w *ecs.World, owner ecs.Entity, c *component.Container) bool {
	if c == nil || c.HideItems {
		return true
	}
	if body, ok := ecs.Get(w, owner, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && body.Disabled {
		return true
	}
	return false
}

// RootFrame builds the reference frame of a container that is not itself held
// by another container.
func RootFrame(w *ecs.World, owner ecs.Entity) layout.Frame {
	f := layout.Frame{Scale: itemScale(w, owner), Dir: 1}
	f.FlippedX, f.FlippedY = itemMirror(w, owner)

	if body, ok := ecs.Get(w, owner, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		f.HasBody = true
		f.Position = body.Body.Position()
		f.Angle = body.Body.Angle()
		f.Dir = body.Dir()
		return f
	}

	if t, ok := ecs.Get(w, owner, component.TransformComponent.Kind()); ok {
		var origin cp.Vector
		if s, ok := ecs.Get(w, owner, component.SpriteComponent.Kind()); ok {
			origin = cp.Vector{X: s.OriginX, Y: s.OriginY}
		}
		f.Rect = staticRect(w, owner, cp.Vector{X: t.X, Y: t.Y}, origin, f.Scale)
	}
	if aboard, ok := ecs.Get(w, owner, component.AboardComponent.Kind()); ok {
		if pt, ok := ecs.Get(w, aboard.Platform, component.TransformComponent.Kind()); ok {
			f.Offset = cp.Vector{X: pt.X, Y: pt.Y}
		}
	}
	return f
}

// NestedFrame builds the reference frame of a contained container from the
// placement its own container just gave it.
func NestedFrame(w *ecs.World, item ecs.Entity, p layout.Placement) layout.Frame {
	f := layout.Frame{Scale: p.Scale, Dir: 1}
	f.FlippedX, f.FlippedY = itemMirror(w, item)

	if body, ok := ecs.Get(w, item, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		f.HasBody = true
		f.Position = p.Position
		f.Angle = p.Rotation
		f.Dir = body.Dir()
		return f
	}
	f.Rect = staticRect(w, item, p.Position, p.Origin, p.Scale)
	return f
}

// staticRect is the scaled sprite rectangle of an item drawn with origin at
// pos. origin is in unscaled sprite pixels and already mirrored.
func staticRect(w *ecs.World, e ecs.Entity, pos, origin cp.Vector, scale float64) layout.Rect {
	r := layout.Rect{X: pos.X, Y: pos.Y}
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		r.X -= origin.X * scale
		r.Y -= origin.Y * scale
		r.Width = s.Width() * scale
		r.Height = s.Height() * scale
	}
	return r
}

// PlaceContents resolves every occupied slot of owner's container at frame f.
func PlaceContents(w *ecs.World, owner ecs.Entity, c *component.Container, f layout.Frame) []ItemPlacement {
	if c == nil {
		return nil
	}
	l := containerLayout(c)
	slots := layout.Place(liveSlots(w, c), l, layout.Resolve(f, l))
	flips := f.Flips()

	out := make([]ItemPlacement, 0, len(slots))
	for _, slot := range slots {
		p := layout.Placement{
			Position: slot.Position,
			Rotation: slot.Rotation,
			Flip:     flips,
			Depth:    c.ResolveDepth(0),
			Scale:    itemScale(w, slot.Item),
		}
		if s, ok := ecs.Get(w, slot.Item, component.SpriteComponent.Kind()); ok {
			p.Origin = f.MirrorOrigin(cp.Vector{X: s.OriginX, Y: s.OriginY}, s.Width(), s.Height())
			p.Depth = c.ResolveDepth(s.Depth)
		}
		out = append(out, ItemPlacement{Owner: owner, Item: slot.Item, Slot: slot.Index, Placement: p})
	}
	return out
}

// liveSlots copies c.Slots with handles to destroyed items cleared, so they
// neither draw nor advance the layout.
func liveSlots(w *ecs.World, c *component.Container) []ecs.Entity {
	out := make([]ecs.Entity, len(c.Slots))
	for i, e := range c.Slots {
		if e.Valid() && w.IsAlive(e) {
			out[i] = e
		}
	}
	return out
}

// PlacementOf answers where a contained item is drawn this frame by walking up
// to the outermost container and back down. Hidden containers do not affect
// the answer. ok is false for items that are not held by a container.
func PlacementOf(w *ecs.World, item ecs.Entity) (layout.Placement, bool) {
	chain := []ecs.Entity{item}
	for cur := item; ; {
		link, ok := ecs.Get(w, cur, component.ContainedComponent.Kind())
		if !ok || !link.Parent.Valid() {
			break
		}
		cur = link.Parent
		chain = append(chain, cur)
	}
	if len(chain) < 2 {
		return layout.Placement{}, false
	}

	root := chain[len(chain)-1]
	f := RootFrame(w, root)
	var result layout.Placement
	for i := len(chain) - 1; i > 0; i-- {
		owner, child := chain[i], chain[i-1]
		c, ok := ecs.Get(w, owner, component.ContainerComponent.Kind())
		if !ok {
			return layout.Placement{}, false
		}
		found := false
		for _, ip := range PlaceContents(w, owner, c, f) {
			if ip.Item == child {
				result = ip.Placement
				found = true
				break
			}
		}
		if !found {
			return layout.Placement{}, false
		}
		f = NestedFrame(w, child, result)
	}
	return result, true
}

// RootContainers returns containers that are not held by another container.
func RootContainers(w *ecs.World) []ecs.Entity {
	var roots []ecs.Entity
	for _, e := range w.Query(component.ContainerComponent.Kind()) {
		if link, ok := ecs.Get(w, e, component.ContainedComponent.Kind()); ok && link.Parent.Valid() {
			continue
		}
		roots = append(roots, e)
	}
	return roots
}
