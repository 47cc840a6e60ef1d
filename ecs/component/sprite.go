package component

import (
	"image"
	"image/color"
)

// Sprite is the visual representation of an item. Key names an image in the
// render registry; Source is the region of that image that gets drawn and
// defines the sprite's size even when the image has not been loaded.
type Sprite struct {
	Key        string
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	Depth      float64
	Tint       color.Color
	// Fill is drawn as a solid rectangle when no image is registered for Key.
	Fill       color.Color
	FacingLeft bool
}

// Visible reports whether there is anything to draw.
func (s *Sprite) Visible() bool {
	return s != nil && s.Key != "" && !s.Source.Empty()
}

func (s *Sprite) Width() float64 {
	if s == nil {
		return 0
	}
	return float64(s.Source.Dx())
}

func (s *Sprite) Height() float64 {
	if s == nil {
		return 0
	}
	return float64(s.Source.Dy())
}

var SpriteComponent = NewComponent[Sprite]()
