package render

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stowage/ecs/system"
)

// Queue collects draw calls for one frame and renders them in depth order:
// lower render layers first, then higher depth (further back) first, then
// submission order. It implements system.Drawer.
type Queue struct {
	calls  []system.DrawCall
	logger *log.Logger
}

func NewQueue(logger *log.Logger) *Queue {
	if logger == nil {
		logger = log.Default()
	}
	return &Queue{logger: logger}
}

func (q *Queue) DrawSprite(call system.DrawCall) {
	q.calls = append(q.calls, call)
}

func (q *Queue) Len() int {
	return len(q.calls)
}

// Sorted returns the queued calls in the order Flush draws them.
func (q *Queue) Sorted() []system.DrawCall {
	out := append([]system.DrawCall(nil), q.calls...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Layer != out[j].Layer {
			return out[i].Layer < out[j].Layer
		}
		return out[i].Depth > out[j].Depth
	})
	return out
}

// Flush draws every queued call onto screen and empties the queue.
func (q *Queue) Flush(screen *ebiten.Image) {
	if screen == nil {
		q.calls = q.calls[:0]
		return
	}
	for _, call := range q.Sorted() {
		img := GetImage(call.Key)
		if img == nil {
			q.logger.Debug("no image for sprite", "key", call.Key, "item", call.Item)
			continue
		}
		if !call.Source.Empty() && call.Source != img.Bounds() {
			if sub, ok := img.SubImage(call.Source).(*ebiten.Image); ok {
				img = sub
			}
		}
		b := img.Bounds()
		screen.DrawImage(img, DrawOptions(call, float64(b.Dx()), float64(b.Dy())))
	}
	q.calls = q.calls[:0]
}

// DrawOptions builds the geometry for a call whose image is width by height.
// Flips mirror the image in place, so the origin keeps addressing the same
// corner of the destination rectangle.
func DrawOptions(call system.DrawCall, width, height float64) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	if call.Flip.Horizontal() {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(width, 0)
	}
	if call.Flip.Vertical() {
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(0, height)
	}
	op.GeoM.Translate(-call.Origin.X, -call.Origin.Y)

	scale := call.Scale
	if scale == 0 {
		scale = 1
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(call.Rotation)
	op.GeoM.Translate(call.Position.X, call.Position.Y)

	if call.Tint != nil {
		op.ColorScale.ScaleWithColor(call.Tint)
	}
	return op
}
