package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

func newTestLoop() (*Loop, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	return NewLoop(clock.now), clock
}

func TestRequestFrame(t *testing.T) {
	t.Run("runs once on next tick", func(t *testing.T) {
		loop, clock := newTestLoop()
		calls := 0
		id := loop.RequestFrame(func() { calls++ })
		assert.NotZero(t, id)

		loop.Tick(clock.advance(16 * time.Millisecond))
		loop.Tick(clock.advance(16 * time.Millisecond))
		assert.Equal(t, 1, calls)
	})

	t.Run("requests made while ticking wait for the next tick", func(t *testing.T) {
		loop, clock := newTestLoop()
		calls := 0
		var step func()
		step = func() {
			calls++
			loop.RequestFrame(step)
		}
		loop.RequestFrame(step)

		for i := 0; i < 5; i++ {
			loop.Tick(clock.advance(16 * time.Millisecond))
		}
		assert.Equal(t, 5, calls)
		frames, _ := loop.Pending()
		assert.Equal(t, 1, frames)
	})

	t.Run("ids are unique", func(t *testing.T) {
		loop, _ := newTestLoop()
		a := loop.RequestFrame(func() {})
		b := loop.RequestFrame(func() {})
		assert.NotEqual(t, a, b)
	})
}

func TestCancelFrame(t *testing.T) {
	t.Run("queued callback is dropped", func(t *testing.T) {
		loop, clock := newTestLoop()
		ran := false
		id := loop.RequestFrame(func() { ran = true })
		loop.CancelFrame(id)
		loop.Tick(clock.advance(time.Millisecond))
		assert.False(t, ran)
	})

	t.Run("unknown id is ignored", func(t *testing.T) {
		loop, _ := newTestLoop()
		loop.RequestFrame(func() {})
		loop.CancelFrame(ID(999))
		frames, _ := loop.Pending()
		assert.Equal(t, 1, frames)
	})

	t.Run("cancel from an earlier callback in the same tick", func(t *testing.T) {
		loop, clock := newTestLoop()
		ran := false
		var second ID
		loop.RequestFrame(func() { loop.CancelFrame(second) })
		second = loop.RequestFrame(func() { ran = true })
		loop.Tick(clock.advance(time.Millisecond))
		assert.False(t, ran)
	})

	t.Run("timer cancels a frame due in the same tick", func(t *testing.T) {
		loop, clock := newTestLoop()
		ran := false
		id := loop.RequestFrame(func() { ran = true })
		loop.AfterFunc(0, func() { loop.CancelFrame(id) })
		loop.Tick(clock.advance(time.Millisecond))
		assert.False(t, ran)
	})
}

func TestAfterFunc(t *testing.T) {
	t.Run("fires at the deadline and not before", func(t *testing.T) {
		loop, clock := newTestLoop()
		fired := 0
		loop.AfterFunc(100*time.Millisecond, func() { fired++ })

		loop.Tick(clock.advance(99 * time.Millisecond))
		require.Equal(t, 0, fired)
		loop.Tick(clock.advance(time.Millisecond))
		require.Equal(t, 1, fired)
		loop.Tick(clock.advance(time.Second))
		assert.Equal(t, 1, fired)
	})

	t.Run("deadline order then registration order", func(t *testing.T) {
		loop, clock := newTestLoop()
		var order []string
		loop.AfterFunc(30*time.Millisecond, func() { order = append(order, "late") })
		loop.AfterFunc(10*time.Millisecond, func() { order = append(order, "early-a") })
		loop.AfterFunc(10*time.Millisecond, func() { order = append(order, "early-b") })

		loop.Tick(clock.advance(time.Second))
		assert.Equal(t, []string{"early-a", "early-b", "late"}, order)
	})

	t.Run("timers run before frames", func(t *testing.T) {
		loop, clock := newTestLoop()
		var order []string
		loop.RequestFrame(func() { order = append(order, "frame") })
		loop.AfterFunc(0, func() { order = append(order, "timer") })

		loop.Tick(clock.advance(time.Millisecond))
		assert.Equal(t, []string{"timer", "frame"}, order)
		_, timers := loop.Pending()
		assert.Zero(t, timers)
	})
}
