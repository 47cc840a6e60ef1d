package system

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/layout"
)

// SpriteDrawSystem draws every free-standing sprite. Items held by a container
// are skipped; ContainerDrawSystem places them.
type SpriteDrawSystem struct {
	HighlightTint color.Color
}

func NewSpriteDrawSystem() *SpriteDrawSystem {
	return &SpriteDrawSystem{HighlightTint: defaultHighlightTint}
}

func (r *SpriteDrawSystem) Draw(w *ecs.World, d Drawer) {
	if r == nil || w == nil || d == nil {
		return
	}

	for _, e := range w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind()) {
		if link, ok := ecs.Get(w, e, component.ContainedComponent.Kind()); ok && link.Parent.Valid() {
			continue
		}

		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !s.Visible() {
			continue
		}

		pos := cp.Vector{X: t.X, Y: t.Y}
		if aboard, ok := ecs.Get(w, e, component.AboardComponent.Kind()); ok {
			if pt, ok := ecs.Get(w, aboard.Platform, component.TransformComponent.Kind()); ok {
				pos = pos.Add(cp.Vector{X: pt.X, Y: pt.Y})
			}
		}

		var flip layout.Flip
		flippedX, flippedY := itemMirror(w, e)
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.FacingLeft {
			flippedX = !flippedX
		}
		if s.FacingLeft {
			flippedX = !flippedX
		}
		if flippedX {
			flip |= layout.FlipHorizontal
		}
		if flippedY {
			flip |= layout.FlipVertical
		}

		var tint color.Color = color.White
		if s.Tint != nil {
			tint = s.Tint
		}
		if h, ok := ecs.Get(w, e, component.HighlightComponent.Kind()); ok && h.On && r.HighlightTint != nil {
			tint = r.HighlightTint
		}

		d.DrawSprite(DrawCall{
			Item:     e,
			Key:      s.Key,
			Source:   s.Source,
			Position: pos,
			Tint:     tint,
			Origin:   cp.Vector{X: s.OriginX, Y: s.OriginY},
			Rotation: t.Rotation,
			Scale:    t.Scale(),
			Flip:     flip,
			Depth:    s.Depth,
			Layer:    renderLayer(w, e),
		})
	}
}
