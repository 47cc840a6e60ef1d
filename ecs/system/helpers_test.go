package system

import (
	"image"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/inventory"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxVec(a, b cp.Vector) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

type recordingDrawer struct {
	calls []DrawCall
}

func (d *recordingDrawer) DrawSprite(call DrawCall) {
	d.calls = append(d.calls, call)
}

func (d *recordingDrawer) items() []ecs.Entity {
	out := make([]ecs.Entity, len(d.calls))
	for i, c := range d.calls {
		out[i] = c.Item
	}
	return out
}

func (d *recordingDrawer) call(e ecs.Entity) (DrawCall, bool) {
	for _, c := range d.calls {
		if c.Item == e {
			return c, true
		}
	}
	return DrawCall{}, false
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind ecs.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

// spawnItem creates an item with a sprite of the given size at the origin.
func spawnItem(t *testing.T, w *ecs.World, key string, width, height int) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})
	if key != "" {
		mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Key:    key,
			Source: image.Rect(0, 0, width, height),
			Depth:  0.5,
		})
	}
	return e
}

func makeContainer(t *testing.T, w *ecs.World, e ecs.Entity, capacity int, configure func(c *component.Container)) *component.Container {
	t.Helper()
	c := component.NewContainer(capacity)
	if configure != nil {
		configure(c)
	}
	mustAdd(t, w, e, component.ContainerComponent.Kind(), c)
	return c
}

func put(t *testing.T, w *ecs.World, container, item ecs.Entity, slot int) {
	t.Helper()
	if err := inventory.Put(w, container, item, slot); err != nil {
		t.Fatalf("put: %v", err)
	}
}

func attachBody(t *testing.T, w *ecs.World, e ecs.Entity, pos cp.Vector, angle float64) *component.PhysicsBody {
	t.Helper()
	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	body.SetAngle(angle)
	pb := &component.PhysicsBody{Body: body, Kinematic: true}
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), pb)
	return pb
}
