package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stowage/ecs"
)

// NoDepthOverride leaves contained items at their own sprite depth.
const NoDepthOverride = -1.0

const DefaultItemsPerRow = 100

// Container holds an ordered, fixed-capacity set of items and describes where
// they are drawn relative to the owning item.
type Container struct {
	// Slots is fixed in length; the zero Entity marks an empty slot.
	Slots []ecs.Entity
	// Anchor is where the first item goes, offset from the owner's top left.
	Anchor cp.Vector
	// Interval is the step between consecutive items.
	Interval    cp.Vector
	ItemsPerRow int
	// Rotation is added to the owner's rotation, in radians.
	Rotation     float64
	Depth        float64
	HideItems    bool
	AutoInteract bool
}

// NewContainer returns a container with capacity empty slots.
func NewContainer(capacity int) *Container {
	if capacity < 0 {
		capacity = 0
	}
	return &Container{
		Slots:       make([]ecs.Entity, capacity),
		ItemsPerRow: DefaultItemsPerRow,
		Depth:       NoDepthOverride,
	}
}

// PerRow returns ItemsPerRow clamped to at least one.
func (c *Container) PerRow() int {
	if c == nil || c.ItemsPerRow < 1 {
		return 1
	}
	return c.ItemsPerRow
}

func (c *Container) Capacity() int {
	if c == nil {
		return 0
	}
	return len(c.Slots)
}

// Occupied returns the non-empty slots in slot order.
func (c *Container) Occupied() []ecs.Entity {
	if c == nil {
		return nil
	}
	out := make([]ecs.Entity, 0, len(c.Slots))
	for _, e := range c.Slots {
		if e.Valid() {
			out = append(out, e)
		}
	}
	return out
}

// ResolveDepth picks the depth a contained sprite is drawn at. Overrides
// outside [0, 1] fall back to the item's own depth.
func (c *Container) ResolveDepth(itemDepth float64) float64 {
	if c == nil || c.Depth < 0 || c.Depth > 1 {
		return itemDepth
	}
	return c.Depth
}

var ContainerComponent = NewComponent[Container]()

// Contained links an item back to the container slot holding it.
type Contained struct {
	Parent ecs.Entity
	Slot   int
}

var ContainedComponent = NewComponent[Contained]()
