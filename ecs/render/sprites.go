package render

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/milk9111/stowage/ecs"
	"github.com/milk9111/stowage/ecs/component"
)

var missingFill = color.NRGBA{R: 255, G: 0, B: 255, A: 255}

// PrepareSprites makes sure every sprite key in w resolves to an image. Keys
// are loaded from assets first; sprites without artwork get a solid
// placeholder in their Fill color, sized to their source rectangle.
func PrepareSprites(w *ecs.World, logger *log.Logger) int {
	if logger == nil {
		logger = log.Default()
	}
	prepared := 0
	ecs.ForEach(w, component.SpriteComponent.Kind(), func(e ecs.Entity, sp *component.Sprite) {
		if !sp.Visible() || GetImage(sp.Key) != nil {
			return
		}
		if sp.Fill == nil {
			_, err := LoadImage(sp.Key)
			if err == nil {
				prepared++
				return
			}
			logger.Warn("sprite image missing, using placeholder", "key", sp.Key, "entity", e, "err", err)
		}
		fill := sp.Fill
		if fill == nil {
			fill = missingFill
		}
		if RegisterPlaceholder(sp.Key, sp.Source.Max.X, sp.Source.Max.Y, fill) != nil {
			prepared++
		}
	})
	return prepared
}
