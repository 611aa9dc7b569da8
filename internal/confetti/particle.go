package confetti

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the fixed set of flake colours a launch picks from.
var Palette = mustPalette("#c75b57", "#b59d14", "#d98e8b", "#d4bc3b", "#fff")

// Particle is one confetti flake.
type Particle struct {
	X, Y float64
	R    float64
	// D seeds the fall speed through cos(D). It never changes, so each
	// flake falls at its own constant rate.
	D                  float64
	Color              color.Color
	Tilt               float64
	TiltAngle          float64
	TiltAngleIncrement float64
}

// horizontalDrift is added to X every frame. Flakes only fall.
const horizontalDrift = 0.0

func newParticle(rng *rand.Rand, w, h float64) Particle {
	return Particle{
		X:                  rng.Float64() * w,
		Y:                  rng.Float64() * h,
		R:                  rng.Float64()*6 + 4,
		D:                  rng.Float64() * Count,
		Color:              Palette[rng.IntN(len(Palette))],
		Tilt:               rng.Float64()*20 - 10,
		TiltAngleIncrement: rng.Float64()*0.07 + 0.05,
	}
}

// fallSpeed is the per-frame increase of Y. With R >= 4 it is at least 2.
func (p *Particle) fallSpeed() float64 {
	return (math.Cos(p.D) + 3 + p.R/2) / 2
}

// advance moves the flake one frame. index is its position in the live set.
func (p *Particle) advance(index int) {
	p.TiltAngle += p.TiltAngleIncrement
	p.Y += p.fallSpeed()
	p.X += horizontalDrift
	p.Tilt = math.Sin(p.TiltAngle-float64(index)/3) * 15
}

func (p *Particle) draw(c Canvas) {
	c.BeginPath()
	c.SetLineWidth(p.R / 2)
	c.SetStrokeStyle(p.Color)
	c.MoveTo(p.X+p.Tilt+p.R/4, p.Y)
	c.LineTo(p.X+p.Tilt, p.Y+p.Tilt+p.R/4)
	c.Stroke()
}

func mustPalette(hexes ...string) []color.Color {
	out := make([]color.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		r, g, b := c.RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 0xff})
	}
	return out
}
