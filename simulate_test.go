package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate(t *testing.T) {
	t.Run("short surface settles before the timer", func(t *testing.T) {
		var out bytes.Buffer
		res, err := simulate(&out, simOptions{
			Width: 400, Height: 60, Duration: time.Hour,
			Every: 5, MaxFrames: 1000, Seed: 42,
		})
		require.NoError(t, err)
		assert.False(t, res.TimedOut)
		assert.LessOrEqual(t, res.Frames, 31)
		assert.Positive(t, res.Strokes)
		assert.True(t, strings.HasPrefix(out.String(), "seed 42, 400x60, 150 flakes\n"))
		assert.Contains(t, out.String(), "live=0")
	})

	t.Run("tall surface is cut by the timer", func(t *testing.T) {
		var out bytes.Buffer
		res, err := simulate(&out, simOptions{
			Width: 400, Height: 100000, Duration: 500 * time.Millisecond,
			Every: 10, MaxFrames: 1000, Seed: 1,
		})
		require.NoError(t, err)
		assert.True(t, res.TimedOut)
		// 30 frames of 1/60s land 20ns short of the deadline.
		assert.Equal(t, 31, res.Frames)
	})

	t.Run("frame cap", func(t *testing.T) {
		res, err := simulate(&bytes.Buffer{}, simOptions{
			Width: 400, Height: 100000, Duration: time.Hour,
			Every: 10, MaxFrames: 12, Seed: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, 12, res.Frames)
		assert.False(t, res.TimedOut)
	})

	t.Run("bad options", func(t *testing.T) {
		_, err := simulate(&bytes.Buffer{}, simOptions{Width: 1, Height: 1, Every: 0, MaxFrames: 1})
		assert.Error(t, err)
		_, err = simulate(&bytes.Buffer{}, simOptions{Width: 1, Height: 1, Every: 1, MaxFrames: 0})
		assert.Error(t, err)
	})
}
