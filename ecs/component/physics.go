package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Kinematic  bool
	// FacingLeft mirrors the body horizontally (facing sign -1).
	FacingLeft bool
	Disabled   bool
}

// Dir is the horizontal facing sign, -1 when the body faces left.
func (p *PhysicsBody) Dir() float64 {
	if p != nil && p.FacingLeft {
		return -1
	}
	return 1
}

// Enabled reports whether the body takes part in simulation and drawing.
func (p *PhysicsBody) Enabled() bool {
	return p != nil && p.Body != nil && !p.Disabled
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
