package entity

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
	"github.com/milk9111/stowage/inventory"
	"github.com/milk9111/stowage/prefabs"
)

// Scene is a built set of items, addressable by the IDs used in the scene
// file.
type Scene struct {
	Name     string
	ids      []string
	entities map[string]ecs.Entity
	prefabOf map[ecs.Entity]string
	logger   *log.Logger
}

// BuildScene loads a scene spec by name and builds it into w.
func BuildScene(w *ecs.World, name string, logger *log.Logger) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return nil, fmt.Errorf("build scene %q: %w", name, err)
	}
	return BuildSceneSpec(w, spec, logger)
}

// BuildSceneSpec builds every item of spec, then links platforms and fills
// containers in the order items are listed.
func BuildSceneSpec(w *ecs.World, spec *prefabs.SceneSpec, logger *log.Logger) (*Scene, error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("build scene: world and spec are required")
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Scene{
		Name:     spec.Name,
		entities: make(map[string]ecs.Entity, len(spec.Items)),
		prefabOf: make(map[ecs.Entity]string, len(spec.Items)),
		logger:   logger,
	}

	for _, item := range spec.Items {
		if item.ID == "" {
			s.destroy(w)
			return nil, fmt.Errorf("build scene %q: item with prefab %q has no id", spec.Name, item.Prefab)
		}
		if _, dup := s.entities[item.ID]; dup {
			s.destroy(w)
			return nil, fmt.Errorf("build scene %q: duplicate id %q", spec.Name, item.ID)
		}
		e, err := BuildEntity(w, item.Prefab)
		if err != nil {
			s.destroy(w)
			return nil, fmt.Errorf("build scene %q: item %q: %w", spec.Name, item.ID, err)
		}
		s.ids = append(s.ids, item.ID)
		s.entities[item.ID] = e
		s.prefabOf[e] = prefabs.Name(item.Prefab)

		if err := applyInstance(w, e, item); err != nil {
			s.destroy(w)
			return nil, fmt.Errorf("build scene %q: item %q: %w", spec.Name, item.ID, err)
		}
	}

	for _, item := range spec.Items {
		if err := s.link(w, item); err != nil {
			s.destroy(w)
			return nil, fmt.Errorf("build scene %q: item %q: %w", spec.Name, item.ID, err)
		}
	}

	logger.Debug("scene built", "scene", s.Name, "items", len(s.ids))
	return s, nil
}

func applyInstance(w *ecs.World, e ecs.Entity, item prefabs.SceneItemSpec) error {
	if err := SetEntityTransform(w, e, item.X, item.Y, item.Rotation); err != nil {
		return fmt.Errorf("set transform: %w", err)
	}
	if item.FlipX || item.FlipY {
		m, ok := ecs.Get(w, e, component.MirrorComponent.Kind())
		if !ok {
			m = &component.Mirror{}
		}
		m.FlippedX = m.FlippedX || item.FlipX
		m.FlippedY = m.FlippedY || item.FlipY
		if err := ecs.Add(w, e, component.MirrorComponent.Kind(), m); err != nil {
			return fmt.Errorf("add mirror: %w", err)
		}
	}
	if item.FacingLeft {
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			return fmt.Errorf("facing_left needs a physics body")
		}
		body.FacingLeft = true
	}
	if item.Highlight {
		h, ok := ecs.Get(w, e, component.HighlightComponent.Kind())
		if !ok {
			h = &component.Highlight{}
		}
		h.On = true
		if err := ecs.Add(w, e, component.HighlightComponent.Kind(), h); err != nil {
			return fmt.Errorf("add highlight: %w", err)
		}
	}
	return nil
}

func (s *Scene) link(w *ecs.World, item prefabs.SceneItemSpec) error {
	e := s.entities[item.ID]

	if item.Aboard != "" {
		platform, ok := s.entities[item.Aboard]
		if !ok {
			return fmt.Errorf("aboard unknown item %q", item.Aboard)
		}
		if !ecs.Has(w, platform, component.PlatformComponent.Kind()) {
			return fmt.Errorf("aboard %q, which is not a platform", item.Aboard)
		}
		if err := ecs.Add(w, e, component.AboardComponent.Kind(), &component.Aboard{Platform: platform}); err != nil {
			return fmt.Errorf("add aboard: %w", err)
		}
	}

	if item.In != "" {
		parent, ok := s.entities[item.In]
		if !ok {
			return fmt.Errorf("in unknown item %q", item.In)
		}
		slot := inventory.AnySlot
		if item.Slot != nil {
			slot = *item.Slot
		}
		if err := inventory.Put(w, parent, e, slot); err != nil {
			return fmt.Errorf("put into %q: %w", item.In, err)
		}
	}
	return nil
}

func (s *Scene) destroy(w *ecs.World) {
	for _, e := range s.entities {
		inventory.Destroy(w, e)
	}
}

// Entity returns the entity built for a scene ID.
func (s *Scene) Entity(id string) (ecs.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// ID returns the scene ID of e, or "" when e is not part of the scene.
func (s *Scene) ID(e ecs.Entity) string {
	for id, got := range s.entities {
		if got == e {
			return id
		}
	}
	return ""
}

// IDs lists scene IDs in file order.
func (s *Scene) IDs() []string {
	return append([]string(nil), s.ids...)
}

// ReloadPrefab re-reads prefabName and applies its container layout to every
// scene item built from it. Slot contents are kept; a container only shrinks
// when the dropped slots are empty. It returns the number of items updated.
func (s *Scene) ReloadPrefab(w *ecs.World, prefabName string) (int, error) {
	name := prefabs.Name(prefabName)
	spec, err := prefabs.LoadEntityBuildSpec(name)
	if err != nil {
		return 0, fmt.Errorf("reload %q: %w", name, err)
	}
	raw, ok := spec.Components["container"]
	if !ok {
		return 0, nil
	}
	cs, err := prefabs.DecodeComponentSpec[containerSpec](raw)
	if err != nil {
		return 0, fmt.Errorf("reload %q: decode container spec: %w", name, err)
	}

	updated := 0
	for _, id := range s.ids {
		e := s.entities[id]
		if s.prefabOf[e] != name || !w.IsAlive(e) {
			continue
		}
		c, ok := ecs.Get(w, e, component.ContainerComponent.Kind())
		if !ok {
			continue
		}
		applyContainerSpec(c, cs)
		if !resizeSlots(c, cs.Capacity) {
			s.logger.Warn("container keeps its capacity, dropped slots are occupied",
				"item", id, "capacity", c.Capacity(), "requested", cs.Capacity)
		}
		updated++
	}
	return updated, nil
}

func resizeSlots(c *component.Container, capacity int) bool {
	// capacity <= 0 means the prefab left it unset.
	if capacity <= 0 || capacity == len(c.Slots) {
		return true
	}
	if capacity > len(c.Slots) {
		c.Slots = append(c.Slots, make([]ecs.Entity, capacity-len(c.Slots))...)
		return true
	}
	for _, e := range c.Slots[capacity:] {
		if e.Valid() {
			return false
		}
	}
	c.Slots = c.Slots[:capacity]
	return true
}
