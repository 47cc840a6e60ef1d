package layout

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Mode is the placement strategy a Layout resolves to.
type Mode int

const (
	// Linear steps by the interval after each occupied slot.
	Linear Mode = iota
	// Grid fills rows of ItemsPerRow, stepping x per item and y per row.
	Grid
)

// String returns "grid" or "linear".
func (m Mode) String() string {
	if m == Grid {
		return "grid"
	}
	return "linear"
}

// Mode picks grid placement only when the local interval steps on both axes.
func (l Layout) Mode() Mode {
	if math.Abs(l.Interval.X) > GridEpsilon && math.Abs(l.Interval.Y) > GridEpsilon {
		return Grid
	}
	return Linear
}

// Slot is the placement of one occupied slot.
type Slot[T comparable] struct {
	Index    int
	Item     T
	Position cp.Vector
	Rotation float64
}

// Place assigns positions to the occupied slots of a container. Zero values of
// T are empty slots: they are skipped and do not advance the row count.
// Positions accumulate step by step so results match an incremental walk
// bit for bit.
func Place[T comparable](slots []T, l Layout, r Resolved) []Slot[T] {
	var empty T
	mode := l.Mode()
	perRow := l.PerRow()

	out := make([]Slot[T], 0, len(slots))
	pos := r.Anchor
	placed := 0
	for i, item := range slots {
		if item == empty {
			continue
		}
		out = append(out, Slot[T]{Index: i, Item: item, Position: pos, Rotation: r.Rotation})

		placed++
		if mode == Grid {
			pos.X += r.Interval.X
			if placed%perRow == 0 {
				pos.X = r.Anchor.X
				pos.Y += r.Interval.Y
			}
		} else {
			pos = pos.Add(r.Interval)
		}
	}
	return out
}
