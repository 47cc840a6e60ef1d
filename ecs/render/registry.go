package render

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	imagesMu sync.RWMutex
	images   = map[string]*ebiten.Image{}
)

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	imagesMu.Lock()
	images[key] = img
	imagesMu.Unlock()
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	imagesMu.RLock()
	defer imagesMu.RUnlock()
	return images[key]
}

// RegisterPlaceholder registers a solid rectangle for key unless an image is
// already known. Prefabs without artwork are drawn this way.
func RegisterPlaceholder(key string, width, height int, c color.Color) *ebiten.Image {
	if img := GetImage(key); img != nil {
		return img
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	img := ebiten.NewImage(width, height)
	img.Fill(c)
	RegisterImage(key, img)
	return img
}
