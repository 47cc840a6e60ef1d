package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// SpriteComponentSpec describes an item's visual. Image is optional; without
// it the sprite is drawn as a solid Color rectangle of Width by Height.
type SpriteComponentSpec struct {
	Image              string     `yaml:"image"`
	SourceX            int        `yaml:"source_x"`
	SourceY            int        `yaml:"source_y"`
	Width              int        `yaml:"width"`
	Height             int        `yaml:"height"`
	UseSource          bool       `yaml:"use_source"`
	OriginX            float64    `yaml:"origin_x"`
	OriginY            float64    `yaml:"origin_y"`
	CenterOriginIfZero bool       `yaml:"center_origin_if_zero"`
	Depth              float64    `yaml:"depth"`
	Color              *YAMLColor `yaml:"color"`
	Tint               *YAMLColor `yaml:"tint"`
	FacingLeft         bool       `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type PhysicsBodyComponentSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
	Kinematic  bool    `yaml:"kinematic"`
	FacingLeft bool    `yaml:"facing_left"`
	Disabled   bool    `yaml:"disabled"`
}

type MirrorComponentSpec struct {
	FlippedX bool `yaml:"flipped_x"`
	FlippedY bool `yaml:"flipped_y"`
}

// ContainerComponentSpec configures slot layout. Rotation is in degrees.
// A nil Depth keeps contained items at their own sprite depth.
type ContainerComponentSpec struct {
	Capacity     int      `yaml:"capacity"`
	AnchorX      float64  `yaml:"anchor_x"`
	AnchorY      float64  `yaml:"anchor_y"`
	IntervalX    float64  `yaml:"interval_x"`
	IntervalY    float64  `yaml:"interval_y"`
	ItemsPerRow  int      `yaml:"items_per_row"`
	Rotation     float64  `yaml:"rotation"`
	Depth        *float64 `yaml:"depth"`
	HideItems    bool     `yaml:"hide_items"`
	AutoInteract bool     `yaml:"auto_interact"`
}

type HighlightComponentSpec struct {
	On bool `yaml:"on"`
}
