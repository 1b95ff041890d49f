// Package alarm keeps the list of recurring daily alarms.
package alarm

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"clockface/internal/core/model"

	"github.com/google/uuid"
)

// ErrInvalidTimeOfDay indicates a time of day that is not "HH:MM".
var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// Registry holds alarms in insertion order.
type Registry struct {
	mu     sync.Mutex
	alarms []model.Alarm
	newID  func() string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{newID: uuid.NewString}
}

// ParseTimeOfDay validates and normalizes an "HH:MM" string.
func ParseTimeOfDay(value string) (string, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, value)
	}
	return parsed.Format("15:04"), nil
}

// Add appends a new enabled alarm.
func (registry *Registry) Add(timeOfDay string) (model.Alarm, error) {
	normalized, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return model.Alarm{}, err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	alarm := model.Alarm{
		ID:        registry.newID(),
		TimeOfDay: normalized,
		Enabled:   true,
	}
	registry.alarms = append(registry.alarms, alarm)
	return alarm, nil
}

// Remove deletes the alarm with the given id, if any.
func (registry *Registry) Remove(id string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for index, alarm := range registry.alarms {
		if alarm.ID == id {
			registry.alarms = append(registry.alarms[:index], registry.alarms[index+1:]...)
			return
		}
	}
}

// Toggle flips the enabled flag of the alarm with the given id, if any.
func (registry *Registry) Toggle(id string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for index := range registry.alarms {
		if registry.alarms[index].ID == id {
			registry.alarms[index].Enabled = !registry.alarms[index].Enabled
			return
		}
	}
}

// List returns a snapshot of all alarms.
func (registry *Registry) List() []model.Alarm {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return append([]model.Alarm(nil), registry.alarms...)
}

// CheckDue returns every enabled alarm set to the hour and minute of now.
// Alarms stay enabled after matching, so they recur daily.
func (registry *Registry) CheckDue(now time.Time) []model.Alarm {
	current := now.Format("15:04")

	registry.mu.Lock()
	defer registry.mu.Unlock()
	var due []model.Alarm
	for _, alarm := range registry.alarms {
		if alarm.Enabled && alarm.TimeOfDay == current {
			due = append(due, alarm)
		}
	}
	return due
}
