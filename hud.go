package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 14

type hud struct {
	face text.Face
	fg   color.Color
}

func newHUD() *hud {
	return &hud{
		face: text.NewGoXFace(basicfont.Face7x13),
		fg:   color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	}
}

func (h *hud) Draw(screen *ebiten.Image, lines []string) {
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(6, 4+float64(i*hudLineHeight))
		op.ColorScale.ScaleWithColor(h.fg)
		text.Draw(screen, line, h.face, op)
	}
}
