// Package frame provides the host scheduling primitives the confetti engine
// runs on: display-refresh callbacks and one-shot duration timers.
//
// A Loop never starts goroutines. The host calls Tick once per displayed
// frame and every callback runs on that caller.
package frame

import (
	"sort"
	"time"
)

// ID identifies a requested frame callback. The zero ID is never issued.
type ID uint64

type request struct {
	id ID
	fn func()
}

type timer struct {
	deadline time.Time
	seq      uint64
	fn       func()
}

// Loop queues frame callbacks and timers until the next Tick.
type Loop struct {
	now    func() time.Time
	nextID ID
	frames []request
	ticked []request
	timers []timer
	seq    uint64
}

// NewLoop creates a Loop. now stamps timer registrations; nil means time.Now.
func NewLoop(now func() time.Time) *Loop {
	if now == nil {
		now = time.Now
	}
	return &Loop{now: now}
}

// RequestFrame queues fn for the next Tick and returns a handle for CancelFrame.
func (l *Loop) RequestFrame(fn func()) ID {
	l.nextID++
	l.frames = append(l.frames, request{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame drops a queued callback. Unknown or already-run ids are ignored.
func (l *Loop) CancelFrame(id ID) {
	for i, r := range l.frames {
		if r.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
	for i := range l.ticked {
		if l.ticked[i].id == id {
			l.ticked[i].fn = nil
			return
		}
	}
}

// AfterFunc runs fn on the first Tick at or after now()+d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	l.seq++
	l.timers = append(l.timers, timer{deadline: l.now().Add(d), seq: l.seq, fn: fn})
}

// Tick fires due timers in deadline order, then the frame callbacks that were
// queued before Tick was called. Callbacks queued while ticking wait for the
// next Tick.
func (l *Loop) Tick(now time.Time) {
	var due []timer
	kept := l.timers[:0]
	for _, t := range l.timers {
		if !now.Before(t.deadline) {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	l.timers = kept
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		t.fn()
	}

	// A timer may have cancelled frames, so snapshot only now.
	l.ticked, l.frames = l.frames, nil
	for i := range l.ticked {
		if fn := l.ticked[i].fn; fn != nil {
			l.ticked[i].fn = nil
			fn()
		}
	}
	l.ticked = nil
}

// Pending reports how many frame callbacks and timers are queued.
func (l *Loop) Pending() (frames, timers int) {
	return len(l.frames), len(l.timers)
}
