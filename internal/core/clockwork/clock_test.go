package clockwork

import (
	"sync"
	"testing"
	"time"

	"clockface/internal/core/format"
	"clockface/internal/core/model"
	"clockface/internal/core/timesource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualScheduler struct {
	mu        sync.Mutex
	frames    []func()
	cancelled int
}

func (scheduler *manualScheduler) Schedule(frame func()) func() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	index := len(scheduler.frames)
	scheduler.frames = append(scheduler.frames, frame)
	return func() {
		scheduler.mu.Lock()
		defer scheduler.mu.Unlock()
		if scheduler.frames[index] != nil {
			scheduler.frames[index] = nil
			scheduler.cancelled++
		}
	}
}

func (scheduler *manualScheduler) active() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	count := 0
	for _, frame := range scheduler.frames {
		if frame != nil {
			count++
		}
	}
	return count
}

func (scheduler *manualScheduler) fire() {
	scheduler.mu.Lock()
	frames := append([]func(){}, scheduler.frames...)
	scheduler.mu.Unlock()
	for _, frame := range frames {
		if frame != nil {
			frame()
		}
	}
}

type recordingSink struct {
	hands     []format.Angles
	clockText string
	dateText  string
	zoneText  string
	stopwatch string
	laps      []string
	countdown string
	running   bool
	status    string
}

func (sink *recordingSink) SetHands(angles format.Angles) { sink.hands = append(sink.hands, angles) }
func (sink *recordingSink) SetDigital(clockText, dateText, zoneText string) {
	sink.clockText, sink.dateText, sink.zoneText = clockText, dateText, zoneText
}
func (sink *recordingSink) SetStopwatch(elapsed string, laps []string) {
	sink.stopwatch, sink.laps = elapsed, laps
}
func (sink *recordingSink) SetCountdown(remaining string, running bool) {
	sink.countdown, sink.running = remaining, running
}
func (sink *recordingSink) SetStatus(status string) { sink.status = status }

type countingRecorder struct {
	frames, alarms, timers int
}

func (recorder *countingRecorder) FrameRendered(time.Duration) { recorder.frames++ }
func (recorder *countingRecorder) AlarmFired()                 { recorder.alarms++ }
func (recorder *countingRecorder) TimerExpired()               { recorder.timers++ }

type fixture struct {
	clock    *Clock
	source   *timesource.Fake
	sink     *recordingSink
	frame    *manualScheduler
	interval *manualScheduler
	recorder *countingRecorder
}

func newFixture(t *testing.T, settings model.ClockSettings) fixture {
	t.Helper()
	source := timesource.NewFake(time.Date(2026, 6, 1, 14, 29, 58, 0, time.UTC))
	sink := &recordingSink{}
	frame := &manualScheduler{}
	interval := &manualScheduler{}
	recorder := &countingRecorder{}
	clock := New(source, settings, sink, Config{
		FrameScheduler:    frame,
		IntervalScheduler: interval,
		Recorder:          recorder,
	})
	return fixture{clock: clock, source: source, sink: sink, frame: frame, interval: interval, recorder: recorder}
}

func defaultSettings() model.ClockSettings {
	return model.ClockSettings{
		ShowSeconds:  true,
		ShowDate:     true,
		SmoothHands:  true,
		SoundEnabled: true,
		Theme:        model.ThemeClassic,
	}
}

func TestStartPushesImmediateFrame(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	fx.clock.Start()

	assert.Equal(t, "2:29:58 PM", fx.sink.clockText)
	assert.Equal(t, "Mon, 01 Jun 2026", fx.sink.dateText)
	assert.Equal(t, "UTC", fx.sink.zoneText)
	assert.Equal(t, "00:00.000", fx.sink.stopwatch)
	assert.Equal(t, "00:00", fx.sink.countdown)
	assert.Equal(t, "Live · 12h · smooth", fx.sink.status)
	assert.Equal(t, 1, fx.frame.active())
	assert.Zero(t, fx.interval.active())
	assert.Equal(t, 1, fx.recorder.frames)
}

func TestSmoothToggleRestartsWithoutLeakingLoops(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	fx.clock.Start()

	settings := fx.clock.Settings()
	settings.SmoothHands = false
	fx.clock.UpdateSettings(settings)
	assert.Zero(t, fx.frame.active())
	assert.Equal(t, 1, fx.interval.active())

	settings.SmoothHands = true
	fx.clock.UpdateSettings(settings)
	assert.Equal(t, 1, fx.frame.active())
	assert.Zero(t, fx.interval.active())

	fx.clock.Start()
	fx.clock.Start()
	assert.Equal(t, 1, fx.frame.active()+fx.interval.active())
}

func TestSettingsChangeBeforeStartDoesNotSchedule(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	settings := fx.clock.Settings()
	settings.SmoothHands = false
	fx.clock.UpdateSettings(settings)

	assert.Zero(t, fx.frame.active()+fx.interval.active())
}

func TestPauseFreezesDigitalButCountersContinue(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	fx.clock.Start()
	fx.clock.Stopwatch().Start()
	fx.clock.Pause()

	fx.source.Advance(1500 * time.Millisecond)
	handsBefore := len(fx.sink.hands)
	fx.frame.fire()

	assert.Equal(t, "2:29:58 PM", fx.sink.clockText)
	assert.Equal(t, handsBefore, len(fx.sink.hands))
	assert.Equal(t, "00:01.500", fx.sink.stopwatch)
	assert.Equal(t, "Paused · 12h · smooth", fx.sink.status)

	fx.clock.Resume()
	fx.frame.fire()
	assert.Equal(t, "2:29:59 PM", fx.sink.clockText)
}

func TestAlarmFiresOnEverySecondOfItsMinute(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	events := fx.clock.Subscribe(128)
	created, err := fx.clock.Alarms().Add("14:30")
	require.NoError(t, err)
	fx.clock.Start()

	// two frames per second from 14:29:58 to 14:31:00; only the first
	// frame of each second checks alarms
	for step := 0; step < 124; step++ {
		fx.source.Advance(500 * time.Millisecond)
		fx.frame.fire()
	}

	assert.Equal(t, 60, fx.recorder.alarms)
	fired := drain(events, EventAlarmFired)
	require.Len(t, fired, 60)
	for index, event := range fired {
		assert.Equal(t, created.ID, event.Alarm.ID)
		assert.Equal(t, 30, event.At.Minute())
		assert.Equal(t, index, event.At.Second())
	}

	// next day it fires again
	fx.source.SetWall(time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC))
	fx.frame.fire()
	assert.Equal(t, 61, fx.recorder.alarms)
}

func TestAlarmCheckedOncePerSecond(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	_, err := fx.clock.Alarms().Add("14:30")
	require.NoError(t, err)
	fx.source.SetWall(time.Date(2026, 6, 1, 14, 30, 5, 0, time.UTC))

	for step := 0; step < 10; step++ {
		fx.clock.Frame()
		fx.source.Advance(50 * time.Millisecond)
	}

	assert.Equal(t, 1, fx.recorder.alarms)
}

func TestAlarmUsesTimezoneOffset(t *testing.T) {
	settings := defaultSettings()
	settings.TimezoneOffsetHours = 2
	fx := newFixture(t, settings)
	_, err := fx.clock.Alarms().Add("16:30")
	require.NoError(t, err)

	fx.source.Advance(2 * time.Second)
	fx.clock.Frame()

	assert.Equal(t, 1, fx.recorder.alarms)
	assert.Equal(t, "UTC +2h", fx.sink.zoneText)
}

func TestTimerExpiryEmitsOnce(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	events := fx.clock.Subscribe(16)
	fx.clock.Start()
	require.True(t, fx.clock.Timer().Start(5*time.Second))

	fx.frame.fire()
	assert.Equal(t, "00:05", fx.sink.countdown)
	assert.True(t, fx.sink.running)

	for step := 0; step < 400; step++ {
		fx.source.Advance(16 * time.Millisecond)
		fx.frame.fire()
	}

	assert.Equal(t, 1, fx.recorder.timers)
	assert.Len(t, drain(events, EventTimerExpired), 1)
	assert.Equal(t, "00:00", fx.sink.countdown)
	assert.False(t, fx.sink.running)
}

func TestStatusReflectsSettings(t *testing.T) {
	settings := defaultSettings()
	settings.Use24Hour = true
	settings.SmoothHands = false
	settings.SoundEnabled = false
	settings.Theme = model.ThemeParty
	fx := newFixture(t, settings)
	_, err := fx.clock.Alarms().Add("07:00")
	require.NoError(t, err)
	_, err = fx.clock.Alarms().Add("08:00")
	require.NoError(t, err)

	fx.clock.Frame()
	assert.Equal(t, "Party Mode · 24h · tick · muted · 2 alarms", fx.sink.status)
	assert.Equal(t, "14:29:58", fx.sink.clockText)
}

func TestHiddenDateLeavesDateEmpty(t *testing.T) {
	settings := defaultSettings()
	settings.ShowDate = false
	settings.ShowSeconds = false
	fx := newFixture(t, settings)

	fx.clock.Frame()
	assert.Empty(t, fx.sink.dateText)
	assert.Equal(t, "2:29 PM", fx.sink.clockText)
}

func TestStopClosesSubscribersAndCancelsLoop(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	events := fx.clock.Subscribe(1)
	fx.clock.Start()
	fx.clock.Stop()

	assert.Zero(t, fx.frame.active())
	_, open := <-events
	assert.False(t, open)
}

func TestLapsArePushedMostRecentFirst(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	fx.clock.Stopwatch().Start()
	fx.source.Advance(time.Second)
	fx.clock.Stopwatch().Lap()
	fx.source.Advance(time.Second)
	fx.clock.Stopwatch().Lap()

	fx.clock.Frame()
	assert.Equal(t, []string{"00:02.000", "00:01.000"}, fx.sink.laps)
}

func drain(events <-chan Event, kind EventType) []Event {
	var matched []Event
	for {
		select {
		case event := <-events:
			if event.Type == kind {
				matched = append(matched, event)
			}
		default:
			return matched
		}
	}
}

func TestSinkAttachedLater(t *testing.T) {
	fx := newFixture(t, defaultSettings())
	fx.clock.SetSink(nil)
	fx.clock.Frame()

	late := &recordingSink{}
	fx.clock.SetSink(late)
	fx.clock.Frame()
	assert.Equal(t, "2:29:58 PM", late.clockText)
	assert.Equal(t, late.status, fx.clock.Status())
}
