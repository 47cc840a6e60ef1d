package system

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/layout"
)

// ContainerSyncSystem is the write half of container drawing. It runs after
// physics and before the draw pass: it snaps contained bodies to the rotation
// their container lays them out at and hands highlight state down to
// contained items. ContainerDrawSystem never mutates the world.
type ContainerSyncSystem struct {
	logger *log.Logger
}

func NewContainerSyncSystem(logger *log.Logger) *ContainerSyncSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ContainerSyncSystem{logger: logger}
}

func (s *ContainerSyncSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, root := range RootContainers(w) {
		c, _ := ecs.Get(w, root, component.ContainerComponent.Kind())
		if hidesContents(w, root, c) {
			continue
		}
		s.syncContainer(w, root, c, RootFrame(w, root))
	}
}

func (s *ContainerSyncSystem) syncContainer(w *ecs.World, owner ecs.Entity, c *component.Container, f layout.Frame) {
	ownerHighlight, _ := ecs.Get(w, owner, component.HighlightComponent.Kind())
	for _, ip := range PlaceContents(w, owner, c, f) {
		if c.AutoInteract && ownerHighlight != nil {
			s.passHighlight(w, ownerHighlight, ip.Item)
		}

		if body, ok := ecs.Get(w, ip.Item, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			from := body.Body.Angle()
			if layout.SyncRotation(bodyPose{body: body.Body}, ip.Placement.Rotation) {
				s.logger.Debug("rotation corrected", "item", ip.Item, "from", from, "to", ip.Placement.Rotation)
				w.Events().Push(ecs.Event{
					Type: ecs.EventRotationCorrected,
					Data: ecs.RotationCorrection{Entity: ip.Item, From: from, To: ip.Placement.Rotation},
				})
			}
		}

		if nested, ok := ecs.Get(w, ip.Item, component.ContainerComponent.Kind()); ok && !nested.HideItems {
			s.syncContainer(w, ip.Item, nested, NestedFrame(w, ip.Item, ip.Placement))
		}
	}
}

// passHighlight gives item the owner's highlight and clears the owner's, so
// only the first occupied slot can inherit it in a frame.
func (s *ContainerSyncSystem) passHighlight(w *ecs.World, owner *component.Highlight, item ecs.Entity) {
	h, ok := ecs.Get(w, item, component.HighlightComponent.Kind())
	if !ok {
		h = &component.Highlight{}
		if err := ecs.Add(w, item, component.HighlightComponent.Kind(), h); err != nil {
			s.logger.Warn("highlight passthrough", "item", item, "err", err)
			return
		}
	}
	h.On = owner.On
	owner.On = false
}

// bodyPose adapts a Chipmunk body to layout.Pose. Setting the angle only
// moves the body's transform and refreshes its shapes' bounding boxes; no
// impulse or torque is applied.
type bodyPose struct {
	body *cp.Body
}

func (p bodyPose) Position() cp.Vector { return p.body.Position() }
func (p bodyPose) Angle() float64      { return p.body.Angle() }

func (p bodyPose) SetAngle(angle float64) {
	p.body.SetAngle(angle)
	p.body.EachShape(func(sh *cp.Shape) {
		sh.CacheBB()
	})
}
