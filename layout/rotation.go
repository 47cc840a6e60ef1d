package layout

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Pose is the physical state of a contained body. *cp.Body satisfies it.
type Pose interface {
	Position() cp.Vector
	Angle() float64
	SetAngle(angle float64)
}

// SyncRotation snaps p to target when they differ by more than
// RotationEpsilon. The position is left alone and no torque is applied.
// It reports whether p was changed.
func SyncRotation(p Pose, target float64) bool {
	if p == nil || math.Abs(p.Angle()-target) <= RotationEpsilon {
		return false
	}
	p.SetAngle(target)
	return true
}
