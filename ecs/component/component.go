package component

import "github.com/milk9111/stowage/ecs"

// NewComponent registers a new component kind for T.
func NewComponent[T any]() ecs.ComponentHandle[T] {
	return ecs.NewComponent[T]()
}
