// Package clockwork holds the clock state and drives the render loop.
package clockwork

import (
	"fmt"
	"strings"
	"sync"

	"clockface/internal/core/alarm"
	"clockface/internal/core/countdown"
	"clockface/internal/core/format"
	"clockface/internal/core/model"
	"clockface/internal/core/stopwatch"
	"clockface/internal/core/timesource"
)

// Scheduler issues a repeating task and returns a function that cancels it.
// Schedule must not run frame before returning and cancel must not block.
type Scheduler interface {
	Schedule(frame func()) (cancel func())
}

// Config contains runtime options for Clock.
type Config struct {
	// FrameScheduler drives the loop when smooth hands are on.
	FrameScheduler Scheduler
	// IntervalScheduler drives the loop once per second otherwise.
	IntervalScheduler Scheduler
	Recorder          Recorder
}

// Clock is the state holder shared by the render loop and user actions.
type Clock struct {
	mu        sync.Mutex
	source    timesource.Source
	options   Config
	settings  model.ClockSettings
	alarms    *alarm.Registry
	stopwatch *stopwatch.Stopwatch
	timer     *countdown.Timer
	sink      Sink
	cancel    func()
	started   bool
	paused    bool
	gate      alarm.SecondGate
	events    []chan Event
}

// New creates a Clock with the provided settings.
func New(source timesource.Source, settings model.ClockSettings, sink Sink, options Config) *Clock {
	if options.Recorder == nil {
		options.Recorder = nopRecorder{}
	}
	return &Clock{
		source:    source,
		options:   options,
		settings:  settings,
		alarms:    alarm.NewRegistry(),
		stopwatch: stopwatch.New(source),
		timer:     countdown.New(source),
		sink:      sink,
	}
}

// SetSink attaches the display.
func (clock *Clock) SetSink(sink Sink) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.sink = sink
}

// Status returns the status line for the current settings.
func (clock *Clock) Status() string {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return statusText(clock.settings, clock.paused, len(clock.alarms.List()))
}

// Alarms returns the alarm registry.
func (clock *Clock) Alarms() *alarm.Registry {
	return clock.alarms
}

// Stopwatch returns the stopwatch counter.
func (clock *Clock) Stopwatch() *stopwatch.Stopwatch {
	return clock.stopwatch
}

// Timer returns the countdown timer.
func (clock *Clock) Timer() *countdown.Timer {
	return clock.timer
}

// Settings returns the current settings.
func (clock *Clock) Settings() model.ClockSettings {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.settings
}

// Subscribe registers a new observer channel.
func (clock *Clock) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	clock.mu.Lock()
	clock.events = append(clock.events, ch)
	clock.mu.Unlock()
	return ch
}

// Start launches the render loop, cancelling any loop already running.
func (clock *Clock) Start() {
	clock.mu.Lock()
	clock.startLocked()
	clock.mu.Unlock()

	clock.Frame()
}

// Stop cancels the render loop and closes observers.
func (clock *Clock) Stop() {
	clock.mu.Lock()
	clock.cancelLocked()
	clock.started = false
	events := clock.events
	clock.events = nil
	clock.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Pause freezes the hands and digital readout. Counters keep running.
func (clock *Clock) Pause() {
	clock.mu.Lock()
	if clock.paused {
		clock.mu.Unlock()
		return
	}
	clock.paused = true
	clock.emitLocked(Event{Type: EventPaused, Settings: clock.settings, At: clock.source.Now()})
	clock.mu.Unlock()
}

// Resume unfreezes the hands and digital readout.
func (clock *Clock) Resume() {
	clock.mu.Lock()
	if !clock.paused {
		clock.mu.Unlock()
		return
	}
	clock.paused = false
	clock.emitLocked(Event{Type: EventResumed, Settings: clock.settings, At: clock.source.Now()})
	clock.mu.Unlock()
}

// Paused reports whether the clock display is frozen.
func (clock *Clock) Paused() bool {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.paused
}

// UpdateSettings replaces the settings. Switching smooth hands restarts the
// loop on the matching scheduler.
func (clock *Clock) UpdateSettings(settings model.ClockSettings) {
	clock.mu.Lock()
	restart := clock.started && settings.SmoothHands != clock.settings.SmoothHands
	clock.settings = settings
	if restart {
		clock.startLocked()
	}
	clock.emitLocked(Event{Type: EventSettingsChanged, Settings: settings, At: clock.source.Now()})
	clock.mu.Unlock()

	clock.Frame()
}

// Frame runs one loop invocation: compose, push, then report alerts.
func (clock *Clock) Frame() {
	began := clock.source.Monotonic()
	frame := clock.Compose()
	clock.mu.Lock()
	sink := clock.sink
	clock.mu.Unlock()
	if sink != nil {
		frame.push(sink)
	}
	clock.options.Recorder.FrameRendered(clock.source.Monotonic() - began)
}

// Compose computes the next frame and advances the alarm and timer checks.
func (clock *Clock) Compose() Frame {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	settings := clock.settings
	now := timesource.AdjustedNow(clock.source, settings.TimezoneOffsetHours)
	frame := Frame{
		Now:  now,
		Live: !clock.paused,
	}

	if clock.gate.Admit(now) {
		frame.Due = clock.alarms.CheckDue(now)
	}

	if frame.Live {
		frame.Hands = format.HandAngles(now, settings.SmoothHands)
		frame.ClockText = format.ClockTime(now, settings.Use24Hour, settings.ShowSeconds)
		if settings.ShowDate {
			frame.DateText = format.Date(now)
		}
		frame.ZoneText = format.Zone(now, settings.TimezoneOffsetHours)
	}

	frame.Stopwatch = format.Stopwatch(clock.stopwatch.Elapsed())
	for _, lap := range clock.stopwatch.RecentLaps() {
		frame.Laps = append(frame.Laps, format.Stopwatch(lap))
	}

	frame.TimerExpired = clock.timer.Tick()
	frame.Countdown = format.Countdown(clock.timer.Remaining())
	frame.CountdownRunning = clock.timer.Running()
	frame.Status = statusText(settings, clock.paused, len(clock.alarms.List()))

	for _, due := range frame.Due {
		clock.options.Recorder.AlarmFired()
		clock.emitLocked(Event{Type: EventAlarmFired, Alarm: due, Settings: settings, At: now})
	}
	if frame.TimerExpired {
		clock.options.Recorder.TimerExpired()
		clock.emitLocked(Event{Type: EventTimerExpired, Settings: settings, At: now})
	}
	return frame
}

func (clock *Clock) startLocked() {
	clock.cancelLocked()
	scheduler := clock.options.IntervalScheduler
	if clock.settings.SmoothHands && clock.options.FrameScheduler != nil {
		scheduler = clock.options.FrameScheduler
	}
	clock.started = true
	if scheduler == nil {
		return
	}
	clock.cancel = scheduler.Schedule(clock.Frame)
}

func (clock *Clock) cancelLocked() {
	if clock.cancel != nil {
		clock.cancel()
		clock.cancel = nil
	}
}

func (clock *Clock) emitLocked(event Event) {
	events := append([]chan Event(nil), clock.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

func statusText(settings model.ClockSettings, paused bool, alarmCount int) string {
	mode := "Live"
	if settings.Theme == model.ThemeParty {
		mode = "Party Mode"
	}
	if paused {
		mode = "Paused"
	}

	parts := []string{mode}
	if settings.Use24Hour {
		parts = append(parts, "24h")
	} else {
		parts = append(parts, "12h")
	}
	if settings.SmoothHands {
		parts = append(parts, "smooth")
	} else {
		parts = append(parts, "tick")
	}
	if !settings.SoundEnabled {
		parts = append(parts, "muted")
	}
	switch alarmCount {
	case 0:
	case 1:
		parts = append(parts, "1 alarm")
	default:
		parts = append(parts, fmt.Sprintf("%d alarms", alarmCount))
	}
	return strings.Join(parts, " · ")
}
