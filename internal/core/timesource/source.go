package timesource

import (
	"sync"
	"time"
)

// Source supplies wall-clock and monotonic readings.
type Source interface {
	// Now returns the wall-clock time.
	Now() time.Time
	// Monotonic returns an ever-increasing duration since an arbitrary epoch.
	Monotonic() time.Duration
}

// AdjustedNow returns the source wall clock shifted by whole hours.
func AdjustedNow(source Source, offsetHours int) time.Time {
	return source.Now().Add(time.Duration(offsetHours) * time.Hour)
}

// System reads the host clock.
type System struct {
	epoch time.Time
}

// NewSystem creates a System source whose monotonic epoch is now.
func NewSystem() *System {
	return &System{epoch: time.Now()}
}

// Now returns the host wall-clock time.
func (system *System) Now() time.Time {
	return time.Now()
}

// Monotonic returns the time elapsed since the source was created.
func (system *System) Monotonic() time.Duration {
	return time.Since(system.epoch)
}

// Fake is a manually driven source for tests.
type Fake struct {
	mu        sync.Mutex
	wall      time.Time
	monotonic time.Duration
}

// NewFake creates a Fake source starting at the given wall-clock time.
func NewFake(wall time.Time) *Fake {
	return &Fake{wall: wall}
}

func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.wall
}

func (fake *Fake) Monotonic() time.Duration {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.monotonic
}

// Advance moves both clocks forward.
func (fake *Fake) Advance(delta time.Duration) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.wall = fake.wall.Add(delta)
	fake.monotonic += delta
}

// SetWall jumps the wall clock without touching the monotonic clock.
func (fake *Fake) SetWall(wall time.Time) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.wall = wall
}
