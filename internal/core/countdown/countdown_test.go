package countdown

import (
	"testing"
	"time"

	"clockface/internal/core/timesource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimer() (*Timer, *timesource.Fake) {
	source := timesource.NewFake(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	return New(source), source
}

func TestExpirySignalledExactlyOnce(t *testing.T) {
	timer, source := newTimer()
	require.True(t, timer.Start(5*time.Second))

	expirations := 0
	for frame := 0; frame < 600; frame++ {
		source.Advance(16 * time.Millisecond)
		if timer.Tick() {
			expirations++
		}
	}

	assert.Equal(t, 1, expirations)
	assert.Zero(t, timer.Remaining())
	assert.False(t, timer.Running())
}

func TestStartRejectsZeroRequest(t *testing.T) {
	timer, _ := newTimer()

	assert.False(t, timer.Start(0))
	assert.False(t, timer.Running())
	assert.False(t, timer.Start(-time.Second))
	assert.False(t, timer.Running())
}

func TestPauseFreezesRemaining(t *testing.T) {
	timer, source := newTimer()
	require.True(t, timer.Start(10*time.Second))

	source.Advance(3 * time.Second)
	timer.Pause()
	assert.Equal(t, 7*time.Second, timer.Remaining())

	source.Advance(time.Minute)
	assert.False(t, timer.Tick())
	assert.Equal(t, 7*time.Second, timer.Remaining())
}

func TestResumeIgnoresNewRequest(t *testing.T) {
	timer, source := newTimer()
	require.True(t, timer.Start(10*time.Second))
	source.Advance(4 * time.Second)
	timer.Pause()

	require.True(t, timer.Start(time.Hour))
	source.Advance(time.Second)
	timer.Tick()
	assert.Equal(t, 5*time.Second, timer.Remaining())
}

func TestResetAllowsFreshStart(t *testing.T) {
	timer, source := newTimer()
	require.True(t, timer.Start(10*time.Second))
	source.Advance(4 * time.Second)
	timer.Reset()

	assert.False(t, timer.Running())
	assert.Zero(t, timer.Remaining())

	require.True(t, timer.Start(2*time.Second))
	source.Advance(2 * time.Second)
	assert.True(t, timer.Tick())
}

func TestRestartAfterExpiryUsesRequest(t *testing.T) {
	timer, source := newTimer()
	require.True(t, timer.Start(time.Second))
	source.Advance(time.Second)
	require.True(t, timer.Tick())

	require.True(t, timer.Start(3*time.Second))
	source.Advance(time.Second)
	assert.False(t, timer.Tick())
	assert.Equal(t, 2*time.Second, timer.Remaining())
}
