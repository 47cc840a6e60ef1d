package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/ecs/system"
	"github.com/milk9111/stowage/layout"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugHeadingLength  = 8
)

var (
	slotMarkerColor    = cp.FColor{R: 1, G: 0.8, B: 0.2, A: 0.9}
	anchorMarkerColor  = cp.FColor{R: 0.3, G: 0.7, B: 1, A: 0.9}
	hiddenMarkerColor  = cp.FColor{R: 0.6, G: 0.6, B: 0.6, A: 0.6}
	headingMarkerColor = cp.FColor{R: 1, G: 0.4, B: 0.2, A: 0.9}
)

// DrawPhysicsDebug outlines every shape in space.
func DrawPhysicsDebug(space *cp.Space, screen *ebiten.Image) {
	if space == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen})
}

// DrawSlotDebug marks where each container puts its items this frame: a cross
// at every occupied slot with a tick along its rotation, and a dot at the
// container anchor. Hidden containers are drawn dimmed.
func DrawSlotDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	d := &physicsDebugDrawer{screen: screen}
	for _, root := range system.RootContainers(w) {
		c, _ := ecs.Get(w, root, component.ContainerComponent.Kind())
		d.slotMarkers(w, root, c, system.RootFrame(w, root), c.HideItems)
	}
}

func (d *physicsDebugDrawer) slotMarkers(w *ecs.World, owner ecs.Entity, c *component.Container, f layout.Frame, hidden bool) {
	placements := system.PlaceContents(w, owner, c, f)
	for i, ip := range placements {
		col := slotMarkerColor
		if hidden {
			col = hiddenMarkerColor
		}
		if i == 0 {
			d.DrawDot(debugDotSize*1.5, ip.Placement.Position, anchorMarkerColor, nil)
		}
		d.DrawDot(debugDotSize, ip.Placement.Position, col, nil)
		heading := ip.Placement.Position.Add(cp.ForAngle(ip.Placement.Rotation).Mult(debugHeadingLength))
		d.drawLine(ip.Placement.Position, heading, headingMarkerColor)

		if nested, ok := ecs.Get(w, ip.Item, component.ContainerComponent.Kind()); ok {
			d.slotMarkers(w, ip.Item, nested, system.NestedFrame(w, ip.Item, ip.Placement), hidden || nested.HideItems)
		}
	}
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Sensor() {
		return cp.FColor{R: 0.4, G: 0.4, B: 1, A: 0.5}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	ebitenutil.DrawLine(d.screen, a.X, a.Y, b.X, b.Y, toNRGBA(c))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
