// Package stopwatch measures elapsed time with start, stop and lap.
package stopwatch

import (
	"sync"
	"time"

	"clockface/internal/core/timesource"
)

// MaxVisibleLaps is the number of laps shown by the display.
const MaxVisibleLaps = 20

// Stopwatch accumulates elapsed time against a monotonic clock.
type Stopwatch struct {
	mu          sync.Mutex
	source      timesource.Source
	running     bool
	accumulated time.Duration
	startedAt   time.Duration
	laps        []time.Duration
}

// New creates a stopped stopwatch.
func New(source timesource.Source) *Stopwatch {
	return &Stopwatch{source: source}
}

// Start begins measuring. It is a no-op when already running.
func (stopwatch *Stopwatch) Start() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	if stopwatch.running {
		return
	}
	stopwatch.running = true
	stopwatch.startedAt = stopwatch.source.Monotonic()
}

// Stop freezes the elapsed time. It is a no-op when already stopped.
func (stopwatch *Stopwatch) Stop() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	if !stopwatch.running {
		return
	}
	stopwatch.accumulated = stopwatch.elapsedLocked()
	stopwatch.running = false
}

// Toggle starts a stopped stopwatch or stops a running one.
func (stopwatch *Stopwatch) Toggle() {
	if stopwatch.Running() {
		stopwatch.Stop()
		return
	}
	stopwatch.Start()
}

// Reset stops the stopwatch, zeroes it and clears laps.
func (stopwatch *Stopwatch) Reset() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	stopwatch.running = false
	stopwatch.accumulated = 0
	stopwatch.startedAt = 0
	stopwatch.laps = nil
}

// Lap records the current elapsed time, most recent first.
func (stopwatch *Stopwatch) Lap() time.Duration {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	elapsed := stopwatch.elapsedLocked()
	stopwatch.laps = append([]time.Duration{elapsed}, stopwatch.laps...)
	return elapsed
}

// Elapsed returns the measured time.
func (stopwatch *Stopwatch) Elapsed() time.Duration {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return stopwatch.elapsedLocked()
}

// Running reports whether the stopwatch is measuring.
func (stopwatch *Stopwatch) Running() bool {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return stopwatch.running
}

// Laps returns every recorded lap, most recent first.
func (stopwatch *Stopwatch) Laps() []time.Duration {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return append([]time.Duration(nil), stopwatch.laps...)
}

// RecentLaps returns at most MaxVisibleLaps laps, most recent first.
func (stopwatch *Stopwatch) RecentLaps() []time.Duration {
	laps := stopwatch.Laps()
	if len(laps) > MaxVisibleLaps {
		laps = laps[:MaxVisibleLaps]
	}
	return laps
}

func (stopwatch *Stopwatch) elapsedLocked() time.Duration {
	elapsed := stopwatch.accumulated
	if stopwatch.running {
		elapsed += stopwatch.source.Monotonic() - stopwatch.startedAt
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
