package clockwork

import (
	"time"

	"clockface/internal/core/format"
	"clockface/internal/core/model"
)

// Sink receives computed display values.
type Sink interface {
	SetHands(angles format.Angles)
	SetDigital(clockText, dateText, zoneText string)
	SetStopwatch(elapsed string, laps []string)
	SetCountdown(remaining string, running bool)
	SetStatus(status string)
}

// Frame is everything a single loop invocation pushes to the display.
type Frame struct {
	Now              time.Time
	Live             bool
	Hands            format.Angles
	ClockText        string
	DateText         string
	ZoneText         string
	Stopwatch        string
	Laps             []string
	Countdown        string
	CountdownRunning bool
	Status           string
	Due              []model.Alarm
	TimerExpired     bool
}

func (frame Frame) push(sink Sink) {
	if frame.Live {
		sink.SetHands(frame.Hands)
		sink.SetDigital(frame.ClockText, frame.DateText, frame.ZoneText)
	}
	sink.SetStopwatch(frame.Stopwatch, frame.Laps)
	sink.SetCountdown(frame.Countdown, frame.CountdownRunning)
	sink.SetStatus(frame.Status)
}

// Recorder observes loop activity.
type Recorder interface {
	FrameRendered(duration time.Duration)
	AlarmFired()
	TimerExpired()
}

type nopRecorder struct{}

func (nopRecorder) FrameRendered(time.Duration) {}
func (nopRecorder) AlarmFired()                 {}
func (nopRecorder) TimerExpired()               {}
