package confetti

import (
	"image/color"
	"time"

	"github.com/iburimskiy/confetti-burst/internal/frame"
)

// Canvas is the 2D path/stroke drawing context the engine renders onto.
type Canvas interface {
	ClearRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	SetLineWidth(w float64)
	SetStrokeStyle(c color.Color)
	Stroke()
}

// Resizer is implemented by canvases that own their backing store and need
// to follow the viewport.
type Resizer interface {
	Resize(w, h int)
}

// Scheduler supplies the host's display-refresh callback and duration timer.
type Scheduler interface {
	RequestFrame(fn func()) frame.ID
	CancelFrame(id frame.ID)
	AfterFunc(d time.Duration, fn func())
}

// Segment is one stroked line as seen by a Recorder.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Width          float64
	Color          color.Color
}

// Recorder is a headless Canvas. It keeps the segments stroked since the
// last full clear and running totals of clears and strokes.
type Recorder struct {
	Width, Height int
	Clears        int
	Strokes       int
	Frame         []Segment

	lineWidth float64
	style     color.Color
	path      []Segment
	penX      float64
	penY      float64
}

var (
	_ Canvas  = (*Recorder)(nil)
	_ Resizer = (*Recorder)(nil)
)

// NewRecorder returns a Recorder sized w by h.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{Width: w, Height: h, lineWidth: 1, style: color.Black}
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.Clears++
	if x <= 0 && y <= 0 && x+w >= float64(r.Width) && y+h >= float64(r.Height) {
		r.Frame = r.Frame[:0]
	}
}

func (r *Recorder) BeginPath() { r.path = r.path[:0] }

func (r *Recorder) MoveTo(x, y float64) { r.penX, r.penY = x, y }

func (r *Recorder) LineTo(x, y float64) {
	r.path = append(r.path, Segment{X0: r.penX, Y0: r.penY, X1: x, Y1: y})
	r.penX, r.penY = x, y
}

func (r *Recorder) SetLineWidth(w float64) { r.lineWidth = w }

func (r *Recorder) SetStrokeStyle(c color.Color) { r.style = c }

func (r *Recorder) Stroke() {
	for _, s := range r.path {
		s.Width = r.lineWidth
		s.Color = r.style
		r.Frame = append(r.Frame, s)
		r.Strokes++
	}
}

func (r *Recorder) Resize(w, h int) {
	r.Width, r.Height = w, h
	r.Frame = r.Frame[:0]
}
