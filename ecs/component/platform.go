package component

import "github.com/milk9111/stowage/ecs"

// Platform is a moving frame (a lift, a ship) that carries statically placed
// items. Its Transform is added to the draw position of everything aboard.
type Platform struct{}

var PlatformComponent = NewComponent[Platform]()

// Aboard places an item inside a platform's frame.
type Aboard struct {
	Platform ecs.Entity
}

var AboardComponent = NewComponent[Aboard]()
