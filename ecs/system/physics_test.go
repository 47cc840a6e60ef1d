package system

import (
	"testing"

	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
)

func addBodyPrefab(t *testing.T, w *ecs.World, x, y float64, pb *component.PhysicsBody) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), pb)
	return e
}

func TestPhysicsSystemStepsBodies(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()

	falling := addBodyPrefab(t, w, 10, 0, &component.PhysicsBody{Width: 8, Height: 8, Mass: 1})
	floor := addBodyPrefab(t, w, 0, 500, &component.PhysicsBody{Width: 1000, Height: 10, Static: true})
	held := addBodyPrefab(t, w, 40, 40, &component.PhysicsBody{Width: 4, Height: 4, Kinematic: true})

	ps.EnsureBodies(w)
	for _, e := range []ecs.Entity{falling, floor, held} {
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if pb.Body == nil || pb.Shape == nil {
			t.Fatalf("entity %v has no body after EnsureBodies", e)
		}
	}
	heldBody, _ := ecs.Get(w, held, component.PhysicsBodyComponent.Kind())
	if !heldBody.Shape.Sensor() {
		t.Errorf("kinematic held bodies should be sensors")
	}

	for i := 0; i < 10; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, falling, component.TransformComponent.Kind())
	if tr.Y <= 0 {
		t.Errorf("dynamic body did not fall, y = %v", tr.Y)
	}
	ftr, _ := ecs.Get(w, floor, component.TransformComponent.Kind())
	if ftr.Y != 500 {
		t.Errorf("static body moved to y = %v", ftr.Y)
	}
	htr, _ := ecs.Get(w, held, component.TransformComponent.Kind())
	if htr.X != 40 || htr.Y != 40 {
		t.Errorf("kinematic body moved to (%v, %v)", htr.X, htr.Y)
	}
}

func TestPhysicsSystemCleansUpDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	e := addBodyPrefab(t, w, 0, 0, &component.PhysicsBody{Width: 8, Height: 8})
	ps.EnsureBodies(w)
	if len(ps.entities) != 1 {
		t.Fatalf("tracked %d bodies, want 1", len(ps.entities))
	}

	w.DestroyEntity(e)
	ps.Update(w)
	if len(ps.entities) != 0 {
		t.Errorf("tracked %d bodies after destroy, want 0", len(ps.entities))
	}
}
