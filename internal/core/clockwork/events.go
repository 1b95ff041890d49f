package clockwork

import (
	"time"

	"clockface/internal/core/model"
)

// EventType defines the type of Clock event.
type EventType string

const (
	EventAlarmFired      EventType = "alarm_fired"
	EventTimerExpired    EventType = "timer_expired"
	EventSettingsChanged EventType = "settings_changed"
	EventPaused          EventType = "paused"
	EventResumed         EventType = "resumed"
)

// Event represents a Clock update for observers.
type Event struct {
	Type     EventType
	Alarm    model.Alarm
	Settings model.ClockSettings
	At       time.Time
}
