// Package confetti simulates and renders a bounded burst of falling, tilting
// confetti flakes on a 2D canvas.
//
// The engine is single-threaded. Every method, and every callback it hands
// to its Scheduler, must run on the same goroutine.
package confetti

import (
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/confetti-burst/internal/frame"
)

const (
	// Count is the number of flakes added by one Launch.
	Count = 150
	// DefaultDuration applies when Launch is given a non-positive duration.
	DefaultDuration = 3000 * time.Millisecond
)

var (
	ErrNoCanvas    = errors.New("confetti: no canvas")
	ErrNoScheduler = errors.New("confetti: no scheduler")
)

// Engine owns the live particle set and drives it one display frame at a time.
type Engine struct {
	canvas Canvas
	sched  Scheduler
	rng    *rand.Rand
	logger *zap.Logger

	width, height float64
	particles     []Particle
	pending       frame.ID
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for new flakes.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an idle engine drawing onto canvas, sized to the viewport.
func New(canvas Canvas, sched Scheduler, width, height int, opts ...Option) (*Engine, error) {
	if canvas == nil {
		return nil, ErrNoCanvas
	}
	if sched == nil {
		return nil, ErrNoScheduler
	}
	e := &Engine{
		canvas: canvas,
		sched:  sched,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.Resize(width, height)
	return e, nil
}

// Launch adds a burst of Count flakes, starts the frame loop if it is idle
// and stops everything once duration has elapsed.
func (e *Engine) Launch(duration time.Duration) {
	if duration <= 0 {
		duration = DefaultDuration
	}
	for i := 0; i < Count; i++ {
		e.particles = append(e.particles, newParticle(e.rng, e.width, e.height))
	}
	if e.pending == 0 {
		e.pending = e.sched.RequestFrame(e.step)
	}
	e.sched.AfterFunc(duration, e.Stop)

	e.logger.Debug("confetti launched",
		zap.Int("live", len(e.particles)),
		zap.Duration("duration", duration))
}

func (e *Engine) step() {
	e.pending = 0
	e.canvas.ClearRect(0, 0, e.width, e.height)

	live := e.particles[:0]
	for i := range e.particles {
		p := e.particles[i]
		p.draw(e.canvas)
		p.advance(i)
		if p.Y > e.height {
			continue
		}
		live = append(live, p)
	}
	clear(e.particles[len(live):])
	e.particles = live

	if len(e.particles) > 0 {
		e.pending = e.sched.RequestFrame(e.step)
		return
	}
	e.logger.Debug("confetti settled")
}

// Stop cancels the pending frame, drops every flake and clears the canvas.
// It is safe to call at any time.
func (e *Engine) Stop() {
	if e.pending != 0 {
		e.sched.CancelFrame(e.pending)
		e.pending = 0
	}
	dropped := len(e.particles)
	e.particles = nil
	e.canvas.ClearRect(0, 0, e.width, e.height)

	if dropped > 0 {
		e.logger.Debug("confetti stopped", zap.Int("dropped", dropped))
	}
}

// Resize matches the drawing surface to the viewport. Flakes in flight keep
// their coordinates; only the clear and removal bounds change.
func (e *Engine) Resize(width, height int) {
	e.width, e.height = float64(width), float64(height)
	if r, ok := e.canvas.(Resizer); ok {
		r.Resize(width, height)
	}
}

// Len returns the number of live flakes.
func (e *Engine) Len() int { return len(e.particles) }

// Running reports whether a frame is scheduled.
func (e *Engine) Running() bool { return e.pending != 0 }

// Size returns the current surface dimensions.
func (e *Engine) Size() (width, height float64) { return e.width, e.height }

// Particles returns a copy of the live set in iteration order.
func (e *Engine) Particles() []Particle {
	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}
