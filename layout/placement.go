package layout

import "github.com/jakecoffman/cp"

// Flip is a set of sprite mirroring flags.
type Flip uint8

const (
	FlipHorizontal Flip = 1 << iota
	FlipVertical
)

func (f Flip) Horizontal() bool { return f&FlipHorizontal != 0 }
func (f Flip) Vertical() bool   { return f&FlipVertical != 0 }

// Flips returns how items held by an owner at frame f are mirrored.
func (f Frame) Flips() Flip {
	var out Flip
	if (f.HasBody && f.Dir == -1) || f.FlippedX {
		out |= FlipHorizontal
	}
	if f.FlippedY {
		out |= FlipVertical
	}
	return out
}

// MirrorOrigin reflects a sprite origin inside its width and height when the
// owner is statically mirrored.
func (f Frame) MirrorOrigin(origin cp.Vector, width, height float64) cp.Vector {
	if f.FlippedX {
		origin.X = width - origin.X
	}
	if f.FlippedY {
		origin.Y = height - origin.Y
	}
	return origin
}

// Placement is where one contained item is drawn this frame.
type Placement struct {
	Position cp.Vector
	Rotation float64
	Origin   cp.Vector
	Flip     Flip
	Depth    float64
	// Scale is the item's own scale.
	Scale float64
}
