package backdrop

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField(t *testing.T) {
	f := NewField(rand.New(rand.NewPCG(7, 7)), 20)
	require.Len(t, f.Dots, 20)

	for _, d := range f.Dots {
		assert.GreaterOrEqual(t, d.Size, 5.0)
		assert.Less(t, d.Size, 15.0)
		assert.GreaterOrEqual(t, d.Left, 0.0)
		assert.Less(t, d.Left, 1.0)
		assert.GreaterOrEqual(t, d.Top, 0.0)
		assert.Less(t, d.Top, 1.0)
		assert.Less(t, d.Delay, 15*time.Second)
		assert.GreaterOrEqual(t, d.Period, 15*time.Second)
		assert.Less(t, d.Period, 25*time.Second)
		assert.GreaterOrEqual(t, d.Opacity, 0.1)
		assert.Less(t, d.Opacity, 0.4)
		assert.Contains(t, tints, d.Tint)
	}
}

func TestDotOffset(t *testing.T) {
	d := Dot{Delay: 2 * time.Second, Period: 20 * time.Second}

	assert.Zero(t, d.Offset(time.Second), "still waiting for its delay")
	assert.Zero(t, d.Offset(2*time.Second))
	assert.InDelta(t, -FloatAmplitude, d.Offset(7*time.Second), 1e-9)
	assert.InDelta(t, FloatAmplitude, d.Offset(17*time.Second), 1e-9)
	assert.InDelta(t, 0, d.Offset(22*time.Second), 1e-9)

	for e := time.Duration(0); e < time.Minute; e += 250 * time.Millisecond {
		off := d.Offset(e)
		assert.LessOrEqual(t, off, FloatAmplitude)
		assert.GreaterOrEqual(t, off, -FloatAmplitude)
	}
}

func TestDotColor(t *testing.T) {
	d := Dot{Tint: mustHex("#c75b57"), Opacity: 0.2}
	c := d.Color()
	assert.Equal(t, uint8(0xc7), c.R)
	assert.Equal(t, uint8(0x5b), c.G)
	assert.Equal(t, uint8(0x57), c.B)
	assert.Equal(t, uint8(51), c.A)
}

func TestPositionsFollowViewport(t *testing.T) {
	f := &Field{Dots: []Dot{{Size: 10, Left: 0.5, Top: 0.25}}}

	small := f.Positions(0, 400, 400)
	large := f.Positions(0, 800, 1200)

	require.Len(t, small, 1)
	assert.Equal(t, 205.0, small[0].X)
	assert.Equal(t, 105.0, small[0].Y)
	assert.Equal(t, 405.0, large[0].X)
	assert.Equal(t, 305.0, large[0].Y)
	assert.Same(t, &f.Dots[0], large[0].Dot)
}
