// Package countdown implements a pausable countdown timer.
package countdown

import (
	"sync"
	"time"

	"clockface/internal/core/timesource"
)

// Timer counts down toward an end point on the monotonic clock.
type Timer struct {
	mu        sync.Mutex
	source    timesource.Source
	running   bool
	remaining time.Duration
	endsAt    time.Duration
}

// New creates a stopped timer with nothing remaining.
func New(source timesource.Source) *Timer {
	return &Timer{source: source}
}

// Start runs the timer. A paused timer resumes with what it had left;
// otherwise requested seeds the remaining time. It returns false when there
// is nothing to count down.
func (timer *Timer) Start(requested time.Duration) bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.running {
		return true
	}
	if timer.remaining <= 0 {
		if requested <= 0 {
			return false
		}
		timer.remaining = requested
	}
	timer.running = true
	timer.endsAt = timer.source.Monotonic() + timer.remaining
	return true
}

// Pause freezes the remaining time.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running {
		return
	}
	timer.remaining = timer.untilEndLocked()
	timer.running = false
}

// Reset stops the timer and clears the remaining time.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.running = false
	timer.remaining = 0
	timer.endsAt = 0
}

// Tick refreshes the remaining time. It returns true only on the tick that
// brings a running timer to zero.
func (timer *Timer) Tick() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.running {
		return false
	}
	timer.remaining = timer.untilEndLocked()
	if timer.remaining > 0 {
		return false
	}
	timer.running = false
	return true
}

// Remaining returns the last computed remaining time.
func (timer *Timer) Remaining() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.remaining
}

// Running reports whether the timer is counting down.
func (timer *Timer) Running() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.running
}

func (timer *Timer) untilEndLocked() time.Duration {
	remaining := timer.endsAt - timer.source.Monotonic()
	if remaining < 0 {
		return 0
	}
	return remaining
}
