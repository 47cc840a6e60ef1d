// Package layout places the items held by a container. It is pure geometry:
// Resolve turns a container's local anchor and interval into world space, and
// Place walks the slots assigning each occupied one a position.
package layout

import "github.com/jakecoffman/cp"

const (
	// GridEpsilon is how large both interval components must be before items
	// wrap into rows.
	GridEpsilon = 0.001
	// RotationEpsilon is the angular divergence tolerated before a contained
	// body is snapped to its layout rotation.
	RotationEpsilon = 0.001
)

// Layout is a container's layout configuration in its owner's local space.
type Layout struct {
	Anchor      cp.Vector
	Interval    cp.Vector
	ItemsPerRow int
	Rotation    float64
}

// PerRow returns ItemsPerRow clamped to at least one.
func (l Layout) PerRow() int {
	if l.ItemsPerRow < 1 {
		return 1
	}
	return l.ItemsPerRow
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Frame is the reference frame of the item that owns a container: either a
// rigid body pose or a static rectangle, plus mirroring.
type Frame struct {
	Scale float64

	HasBody  bool
	Position cp.Vector
	Angle    float64
	// Dir is the body's facing sign; -1 mirrors horizontally.
	Dir float64

	Rect Rect
	// Offset is the draw position of the platform a static owner rides on.
	Offset cp.Vector

	FlippedX bool
	FlippedY bool
}

// Resolved is a container's layout expressed in world space.
type Resolved struct {
	Anchor   cp.Vector
	Interval cp.Vector
	Rotation float64
}

// Resolve converts l into world space for an owner at frame f.
func Resolve(f Frame, l Layout) Resolved {
	anchor := l.Anchor.Mult(f.Scale)
	interval := l.Interval.Mult(f.Scale)

	if !f.HasBody {
		if f.FlippedX {
			anchor, interval = MirrorX(anchor, interval, f.Rect.Width)
		}
		if f.FlippedY {
			anchor, interval = MirrorY(anchor, interval, f.Rect.Height)
		}
		anchor = anchor.Add(cp.Vector{X: f.Rect.X, Y: f.Rect.Y}).Add(f.Offset)
		return Resolved{Anchor: anchor, Interval: interval, Rotation: l.Rotation}
	}

	if f.Dir == -1 {
		anchor.X = -anchor.X
		interval.X = -interval.X
	}
	rot := cp.ForAngle(f.Angle)
	anchor = anchor.Rotate(rot).Add(f.Position)
	interval = interval.Rotate(rot)
	return Resolved{Anchor: anchor, Interval: interval, Rotation: f.Angle + l.Rotation}
}

// MirrorX flips an anchor and interval around a rectangle of the given width.
// Applying it twice returns the original values.
func MirrorX(anchor, interval cp.Vector, width float64) (cp.Vector, cp.Vector) {
	anchor.X = -anchor.X + width
	interval.X = -interval.X
	return anchor, interval
}

// MirrorY flips an anchor and interval vertically around a rectangle of the
// given height. Like MirrorX it is its own inverse.
func MirrorY(anchor, interval cp.Vector, height float64) (cp.Vector, cp.Vector) {
	anchor.Y = -anchor.Y - height
	interval.Y = -interval.Y
	return anchor, interval
}
