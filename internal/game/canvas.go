package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/confetti-burst/internal/confetti"
)

// canvas is an offscreen ebiten image with a 2D path API on top.
type canvas struct {
	img       *ebiten.Image
	lineWidth float32
	style     color.Color
	path      path
}

var (
	_ confetti.Canvas  = (*canvas)(nil)
	_ confetti.Resizer = (*canvas)(nil)
)

func newCanvas(w, h int) *canvas {
	c := &canvas{lineWidth: 1, style: color.Black}
	c.Resize(w, h)
	return c
}

func (c *canvas) ClearRect(x, y, w, h float64) {
	b := c.img.Bounds()
	r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(b)
	if r.Empty() {
		return
	}
	if r == b {
		c.img.Clear()
		return
	}
	c.img.SubImage(r).(*ebiten.Image).Clear()
}

func (c *canvas) BeginPath() { c.path.reset() }

func (c *canvas) MoveTo(x, y float64) { c.path.moveTo(float32(x), float32(y)) }

func (c *canvas) LineTo(x, y float64) { c.path.lineTo(float32(x), float32(y)) }

func (c *canvas) SetLineWidth(w float64) { c.lineWidth = float32(w) }

func (c *canvas) SetStrokeStyle(clr color.Color) { c.style = clr }

func (c *canvas) Stroke() {
	for _, s := range c.path.segments {
		vector.StrokeLine(c.img, s.x0, s.y0, s.x1, s.y1, c.lineWidth, c.style, true)
	}
}

// Resize reallocates the backing image and drops the old pixels. The engine
// redraws on its next frame.
func (c *canvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
}
