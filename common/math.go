package common

// Gravity is the downward acceleration of the demo space, in pixels per
// second squared (y grows downward).
const Gravity = 900.0

// StepSeconds is the fixed simulation step.
const StepSeconds = 1.0 / 60.0

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Logical screen size of the demo window.
const (
	BaseWidth  = 640
	BaseHeight = 360
)
