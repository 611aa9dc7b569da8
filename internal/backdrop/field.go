// Package backdrop models the decorative dots floating behind the page.
package backdrop

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// FloatAmplitude is the vertical travel of a dot either side of its anchor, in px.
const FloatAmplitude = 20.0

var tints = []colorful.Color{
	mustHex("#b59d14"),
	mustHex("#d98e8b"),
	mustHex("#c75b57"),
}

// Dot is one background particle. Left and Top are fractions of the viewport
// so the field follows window resizes.
type Dot struct {
	Size    float64
	Left    float64
	Top     float64
	Delay   time.Duration
	Period  time.Duration
	Opacity float64
	Tint    colorful.Color
}

// Color returns the dot's tint with its opacity applied.
func (d Dot) Color() color.NRGBA {
	r, g, b := d.Tint.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(d.Opacity * 255))}
}

// Offset is the dot's vertical displacement after elapsed time.
func (d Dot) Offset(elapsed time.Duration) float64 {
	if elapsed < d.Delay || d.Period <= 0 {
		return 0
	}
	phase := float64(elapsed-d.Delay) / float64(d.Period)
	return -math.Sin(2*math.Pi*phase) * FloatAmplitude
}

// Field is a fixed set of dots created once at start-up.
type Field struct {
	Dots []Dot
}

// NewField scatters n dots.
func NewField(rng *rand.Rand, n int) *Field {
	f := &Field{Dots: make([]Dot, 0, n)}
	for i := 0; i < n; i++ {
		f.Dots = append(f.Dots, Dot{
			Size:    rng.Float64()*10 + 5,
			Left:    rng.Float64(),
			Top:     rng.Float64(),
			Delay:   time.Duration(rng.Float64() * float64(15*time.Second)),
			Period:  time.Duration((rng.Float64()*10 + 15) * float64(time.Second)),
			Opacity: rng.Float64()*0.3 + 0.1,
			Tint:    tints[rng.IntN(len(tints))],
		})
	}
	return f
}

// Position is a dot's centre in pixels.
type Position struct {
	X, Y float64
	Dot  *Dot
}

// Positions lays the field out on a w by h viewport at elapsed time.
func (f *Field) Positions(elapsed time.Duration, w, h int) []Position {
	out := make([]Position, len(f.Dots))
	for i := range f.Dots {
		d := &f.Dots[i]
		out[i] = Position{
			X:   d.Left*float64(w) + d.Size/2,
			Y:   d.Top*float64(h) + d.Size/2 + d.Offset(elapsed),
			Dot: d,
		}
	}
	return out
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
