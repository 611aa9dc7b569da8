package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// gradientColor blends top into bottom in Lab space (ratio: 0-1)
func gradientColor(top, bottom colorful.Color, ratio float64) color.RGBA {
	r, g, b := top.BlendLab(bottom, clamp01(ratio)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS, rounding up partial seconds
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = (d + time.Second - 1).Truncate(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
