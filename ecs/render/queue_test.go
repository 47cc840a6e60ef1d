package render

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs/system"
	"github.com/milk9111/stowage/layout"
)

func TestQueueSorted(t *testing.T) {
	q := NewQueue(nil)
	q.DrawSprite(system.DrawCall{Key: "front", Depth: 0.1})
	q.DrawSprite(system.DrawCall{Key: "overlay", Depth: 0.9, Layer: 1})
	q.DrawSprite(system.DrawCall{Key: "back", Depth: 0.9})
	q.DrawSprite(system.DrawCall{Key: "front-late", Depth: 0.1})

	want := []string{"back", "front", "front-late", "overlay"}
	got := q.Sorted()
	if len(got) != len(want) {
		t.Fatalf("got %d calls, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Key != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i].Key, want[i])
		}
	}
	if q.Len() != 4 {
		t.Errorf("Sorted must not consume the queue")
	}
}

func TestDrawOptions(t *testing.T) {
	tests := []struct {
		name   string
		call   system.DrawCall
		point  [2]float64
		wantXY [2]float64
	}{
		{
			name:   "origin lands on position",
			call:   system.DrawCall{Origin: cp.Vector{X: 4, Y: 2}, Position: cp.Vector{X: 100, Y: 50}},
			point:  [2]float64{4, 2},
			wantXY: [2]float64{100, 50},
		},
		{
			name:   "horizontal flip mirrors inside the image",
			call:   system.DrawCall{Flip: layout.FlipHorizontal, Position: cp.Vector{X: 10}},
			point:  [2]float64{0, 0},
			wantXY: [2]float64{26, 0},
		},
		{
			name:   "scaled and rotated a quarter turn",
			call:   system.DrawCall{Scale: 2, Rotation: math.Pi / 2},
			point:  [2]float64{1, 0},
			wantXY: [2]float64{0, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := DrawOptions(tt.call, 16, 8)
			x, y := op.GeoM.Apply(tt.point[0], tt.point[1])
			if math.Abs(x-tt.wantXY[0]) > 1e-9 || math.Abs(y-tt.wantXY[1]) > 1e-9 {
				t.Errorf("Apply(%v) = (%v, %v), want %v", tt.point, x, y, tt.wantXY)
			}
		})
	}
}
