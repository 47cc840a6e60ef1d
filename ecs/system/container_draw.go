package system

import (
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/layout"
)

// DrawCall is everything the draw primitive needs for one contained sprite.
type DrawCall struct {
	Item     ecs.Entity
	Key      string
	Source   image.Rectangle
	Position cp.Vector
	Tint     color.Color
	Origin   cp.Vector
	Rotation float64
	Scale    float64
	Flip     layout.Flip
	Depth    float64
	// Layer is the RenderLayer index; contained items share their outermost
	// container's layer.
	Layer int
}

// Drawer is the draw primitive contained items are rendered through.
type Drawer interface {
	DrawSprite(call DrawCall)
}

var defaultHighlightTint = color.NRGBA{R: 255, G: 230, B: 120, A: 255}

// ContainerDrawSystem draws the items held by containers, recursing into
// containers held by containers. It reads the world only; run
// ContainerSyncSystem first each frame.
//
// Containment must be acyclic. inventory.Put enforces that; the traversal
// itself does not check.
type ContainerDrawSystem struct {
	// YUp flips the world's y axis and rotation sense when drawing to a y-down
	// screen. Chipmunk and ebiten share a y-down space, so it is off by default.
	YUp           bool
	HighlightTint color.Color

	logger *log.Logger
}

func NewContainerDrawSystem(logger *log.Logger) *ContainerDrawSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ContainerDrawSystem{HighlightTint: defaultHighlightTint, logger: logger}
}

// Draw renders the contents of every outermost container.
func (s *ContainerDrawSystem) Draw(w *ecs.World, d Drawer) {
	if s == nil || w == nil || d == nil {
		return
	}
	for _, root := range RootContainers(w) {
		s.DrawContainer(w, root, d)
	}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return l.Index
	}
	return 0
}

// DrawContainer renders the contents of one container and everything nested
// inside it.
func (s *ContainerDrawSystem) DrawContainer(w *ecs.World, owner ecs.Entity, d Drawer) {
	c, ok := ecs.Get(w, owner, component.ContainerComponent.Kind())
	if !ok || hidesContents(w, owner, c) {
		return
	}
	s.drawContents(w, owner, c, RootFrame(w, owner), renderLayer(w, owner), d)
}

func (s *ContainerDrawSystem) drawContents(w *ecs.World, owner ecs.Entity, c *component.Container, f layout.Frame, layer int, d Drawer) {
	for _, ip := range PlaceContents(w, owner, c, f) {
		s.drawItem(w, ip, layer, d)

		if nested, ok := ecs.Get(w, ip.Item, component.ContainerComponent.Kind()); ok && !nested.HideItems {
			s.drawContents(w, ip.Item, nested, NestedFrame(w, ip.Item, ip.Placement), layer, d)
		}
	}
}

func (s *ContainerDrawSystem) drawItem(w *ecs.World, ip ItemPlacement, layer int, d Drawer) {
	sprite, ok := ecs.Get(w, ip.Item, component.SpriteComponent.Kind())
	if !ok || !sprite.Visible() {
		s.logger.Debug("contained item has no visual", "item", ip.Item, "container", ip.Owner)
		return
	}

	p := ip.Placement
	pos, rot := p.Position, p.Rotation
	if s.YUp {
		pos.Y = -pos.Y
		rot = -rot
	}

	var tint color.Color = color.White
	if sprite.Tint != nil {
		tint = sprite.Tint
	}
	if h, ok := ecs.Get(w, ip.Item, component.HighlightComponent.Kind()); ok && h.On && s.HighlightTint != nil {
		tint = s.HighlightTint
	}

	d.DrawSprite(DrawCall{
		Item:     ip.Item,
		Key:      sprite.Key,
		Source:   sprite.Source,
		Position: pos,
		Tint:     tint,
		Origin:   p.Origin,
		Rotation: rot,
		Scale:    p.Scale,
		Flip:     p.Flip,
		Depth:    p.Depth,
		Layer:    layer,
	})
}
