package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
)

func TestContainerSyncCorrectsRotation(t *testing.T) {
	tests := []struct {
		name      string
		itemAngle float64
		want      float64
		corrected bool
	}{
		{"diverged body snaps to layout rotation", 0, 0.75, true},
		{"within threshold is left alone", 0.7505, 0.7505, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			crate := spawnItem(t, w, "crate", 16, 16)
			attachBody(t, w, crate, cp.Vector{X: 10, Y: 10}, 0.5)
			makeContainer(t, w, crate, 1, func(c *component.Container) { c.Rotation = 0.25 })

			item := spawnItem(t, w, "bottle", 4, 8)
			pb := attachBody(t, w, item, cp.Vector{X: -4, Y: 9}, tt.itemAngle)
			put(t, w, crate, item, 0)

			NewContainerSyncSystem(nil).Update(w)

			if !approx(pb.Body.Angle(), tt.want) {
				t.Errorf("angle = %v, want %v", pb.Body.Angle(), tt.want)
			}
			if pb.Body.Position() != (cp.Vector{X: -4, Y: 9}) {
				t.Errorf("position moved to %v", pb.Body.Position())
			}

			events := w.Events().Drain()
			if tt.corrected != (len(events) == 1) {
				t.Fatalf("events = %+v, corrected = %v", events, tt.corrected)
			}
			if tt.corrected {
				rc, ok := events[0].Data.(ecs.RotationCorrection)
				if !ok || rc.Entity != item || !approx(rc.To, 0.75) {
					t.Errorf("unexpected event %+v", events[0])
				}
			}
		})
	}
}

func TestContainerSyncNestedBodies(t *testing.T) {
	w := ecs.NewWorld()
	crate := spawnItem(t, w, "crate", 16, 16)
	attachBody(t, w, crate, cp.Vector{}, 1)
	makeContainer(t, w, crate, 1, nil)

	bag := spawnItem(t, w, "bag", 8, 8)
	bagBody := attachBody(t, w, bag, cp.Vector{}, 0)
	makeContainer(t, w, bag, 1, func(c *component.Container) { c.Rotation = 0.5 })

	coin := spawnItem(t, w, "coin", 2, 2)
	coinBody := attachBody(t, w, coin, cp.Vector{}, 0)

	put(t, w, crate, bag, 0)
	put(t, w, bag, coin, 0)

	NewContainerSyncSystem(nil).Update(w)

	if !approx(bagBody.Body.Angle(), 1) {
		t.Errorf("bag angle = %v, want 1", bagBody.Body.Angle())
	}
	if !approx(coinBody.Body.Angle(), 1.5) {
		t.Errorf("coin angle = %v, want 1.5", coinBody.Body.Angle())
	}
}

func TestContainerSyncSkipsHiddenContainers(t *testing.T) {
	w := ecs.NewWorld()
	crate := spawnItem(t, w, "crate", 16, 16)
	attachBody(t, w, crate, cp.Vector{}, 1)
	makeContainer(t, w, crate, 1, func(c *component.Container) { c.HideItems = true })
	item := spawnItem(t, w, "bottle", 4, 8)
	pb := attachBody(t, w, item, cp.Vector{}, 0)
	put(t, w, crate, item, 0)

	NewContainerSyncSystem(nil).Update(w)

	if pb.Body.Angle() != 0 {
		t.Errorf("hidden container contents were synced to %v", pb.Body.Angle())
	}
}

func TestContainerSyncHighlightPassthrough(t *testing.T) {
	tests := []struct {
		name         string
		autoInteract bool
		wantFirst    bool
		wantOwner    bool
	}{
		{"passthrough hands highlight to first item", true, true, false},
		{"no passthrough keeps owner highlight", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			owner := spawnItem(t, w, "panel", 16, 16)
			makeContainer(t, w, owner, 3, func(c *component.Container) { c.AutoInteract = tt.autoInteract })
			mustAdd(t, w, owner, component.HighlightComponent.Kind(), &component.Highlight{On: true})

			first := spawnItem(t, w, "fuse", 4, 4)
			second := spawnItem(t, w, "fuse", 4, 4)
			mustAdd(t, w, second, component.HighlightComponent.Kind(), &component.Highlight{On: true})
			put(t, w, owner, first, 1)
			put(t, w, owner, second, 2)

			NewContainerSyncSystem(nil).Update(w)

			h, _ := ecs.Get(w, owner, component.HighlightComponent.Kind())
			if h.On != tt.wantOwner {
				t.Errorf("owner highlight = %v, want %v", h.On, tt.wantOwner)
			}
			fh, ok := ecs.Get(w, first, component.HighlightComponent.Kind())
			if got := ok && fh.On; got != tt.wantFirst {
				t.Errorf("first highlight = %v, want %v", got, tt.wantFirst)
			}
			sh, _ := ecs.Get(w, second, component.HighlightComponent.Kind())
			if tt.autoInteract && sh.On {
				t.Errorf("second item should inherit the already cleared highlight")
			}
		})
	}
}

func TestContainerSyncRefreshesShapeBounds(t *testing.T) {
	space := cp.NewSpace()
	w := ecs.NewWorld()
	crate := spawnItem(t, w, "crate", 16, 16)
	attachBody(t, w, crate, cp.Vector{}, math.Pi/2)
	makeContainer(t, w, crate, 1, nil)

	item := spawnItem(t, w, "plank", 4, 8)
	pb := attachBody(t, w, item, cp.Vector{X: 3, Y: 5}, 0)
	space.AddBody(pb.Body)
	shape := space.AddShape(cp.NewBox(pb.Body, 4, 8, 0))
	put(t, w, crate, item, 0)

	NewContainerSyncSystem(nil).Update(w)

	bb := shape.BB()
	if !approx(bb.R-bb.L, 8) || !approx(bb.T-bb.B, 4) {
		t.Errorf("shape bounds = %+v, want an 8x4 box after a quarter turn", bb)
	}
	if !approxVec(pb.Body.Position(), cp.Vector{X: 3, Y: 5}) {
		t.Errorf("position moved to %v", pb.Body.Position())
	}
	if pb.Body.Velocity() != (cp.Vector{}) || pb.Body.AngularVelocity() != 0 {
		t.Errorf("correction applied motion: v=%v w=%v", pb.Body.Velocity(), pb.Body.AngularVelocity())
	}
}
