// Package inventory assigns items to container slots. It is the only writer of
// Container.Slots and the Contained back-links, and it refuses any assignment
// that would make an item hold itself, so the containment graph stays a
// forest and recursive drawing always terminates.
package inventory

import (
	"errors"
	"fmt"

	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
)

// AnySlot asks Put for the first free slot.
const AnySlot = -1

var (
	ErrNotContainer     = errors.New("inventory: entity is not a container")
	ErrSlotOutOfRange   = errors.New("inventory: slot out of range")
	ErrSlotOccupied     = errors.New("inventory: slot occupied")
	ErrContainerFull    = errors.New("inventory: container full")
	ErrContainmentCycle = errors.New("inventory: item would contain itself")
	ErrAlreadyContained = errors.New("inventory: item already in a container")
	ErrNotContained     = errors.New("inventory: item not in a container")
)

// Put places item into slot of container. Pass AnySlot for the first free
// slot. The item must not already be held anywhere.
func Put(w *ecs.World, container, item ecs.Entity, slot int) error {
	if !w.IsAlive(item) {
		return fmt.Errorf("inventory: put %v: %w", item, ecs.ErrEntityNotAlive)
	}
	c, ok := ecs.Get(w, container, component.ContainerComponent.Kind())
	if !ok {
		return fmt.Errorf("inventory: put %v into %v: %w", item, container, ErrNotContainer)
	}
	if _, held := ParentOf(w, item); held {
		return fmt.Errorf("inventory: put %v into %v: %w", item, container, ErrAlreadyContained)
	}
	if container == item || IsAncestor(w, item, container) {
		return fmt.Errorf("inventory: put %v into %v: %w", item, container, ErrContainmentCycle)
	}

	if slot == AnySlot {
		slot = FirstFree(w, c)
		if slot < 0 {
			return fmt.Errorf("inventory: put %v into %v: %w", item, container, ErrContainerFull)
		}
	}
	if slot < 0 || slot >= c.Capacity() {
		return fmt.Errorf("inventory: put %v into %v slot %d: %w", item, container, slot, ErrSlotOutOfRange)
	}
	if occupied(w, c.Slots[slot]) {
		return fmt.Errorf("inventory: put %v into %v slot %d: %w", item, container, slot, ErrSlotOccupied)
	}

	if err := ecs.Add(w, item, component.ContainedComponent.Kind(), &component.Contained{Parent: container, Slot: slot}); err != nil {
		return fmt.Errorf("inventory: put %v into %v: %w", item, container, err)
	}
	c.Slots[slot] = item
	return nil
}

// Take removes item from whatever container holds it and returns that
// container.
func Take(w *ecs.World, item ecs.Entity) (ecs.Entity, error) {
	link, ok := ecs.Get(w, item, component.ContainedComponent.Kind())
	if !ok || !link.Parent.Valid() {
		return 0, fmt.Errorf("inventory: take %v: %w", item, ErrNotContained)
	}
	parent := link.Parent
	if c, ok := ecs.Get(w, parent, component.ContainerComponent.Kind()); ok {
		if link.Slot >= 0 && link.Slot < c.Capacity() && c.Slots[link.Slot] == item {
			c.Slots[link.Slot] = 0
		}
	}
	ecs.Remove(w, item, component.ContainedComponent.Kind())
	return parent, nil
}

// Move takes item out of its current container, if any, and puts it into
// slot of container. On failure the item is returned to where it was.
func Move(w *ecs.World, item, container ecs.Entity, slot int) error {
	prevParent, held := ParentOf(w, item)
	prevSlot := -1
	if held {
		link, _ := ecs.Get(w, item, component.ContainedComponent.Kind())
		prevSlot = link.Slot
		if _, err := Take(w, item); err != nil {
			return err
		}
	}
	if err := Put(w, container, item, slot); err != nil {
		if held {
			if restoreErr := Put(w, prevParent, item, prevSlot); restoreErr != nil {
				return errors.Join(err, restoreErr)
			}
		}
		return err
	}
	return nil
}

// Destroy removes e from the world. It first takes e out of its container
// and releases anything e itself holds, so no slot is left pointing at a
// dead entity.
func Destroy(w *ecs.World, e ecs.Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	if _, held := ParentOf(w, e); held {
		_, _ = Take(w, e)
	}
	if c, ok := ecs.Get(w, e, component.ContainerComponent.Kind()); ok {
		for i, item := range c.Slots {
			if item.Valid() {
				ecs.Remove(w, item, component.ContainedComponent.Kind())
			}
			c.Slots[i] = 0
		}
	}
	return ecs.DestroyEntity(w, e)
}

// ParentOf returns the container holding item.
func ParentOf(w *ecs.World, item ecs.Entity) (ecs.Entity, bool) {
	link, ok := ecs.Get(w, item, component.ContainedComponent.Kind())
	if !ok || !link.Parent.Valid() || !w.IsAlive(link.Parent) {
		return 0, false
	}
	return link.Parent, true
}

// IsAncestor reports whether candidate holds e, directly or through nested
// containers.
func IsAncestor(w *ecs.World, candidate, e ecs.Entity) bool {
	for cur, ok := ParentOf(w, e); ok; cur, ok = ParentOf(w, cur) {
		if cur == candidate {
			return true
		}
	}
	return false
}

// FirstFree returns the index of the first empty slot, or -1. A slot whose
// item has been destroyed counts as empty.
func FirstFree(w *ecs.World, c *component.Container) int {
	if c == nil {
		return -1
	}
	for i, e := range c.Slots {
		if !occupied(w, e) {
			return i
		}
	}
	return -1
}

func occupied(w *ecs.World, e ecs.Entity) bool {
	return e.Valid() && w.IsAlive(e)
}
