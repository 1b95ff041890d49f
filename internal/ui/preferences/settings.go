package preferences

import (
	"fmt"

	"clockface/internal/core/model"

	"github.com/hashicorp/go-multierror"
)

const (
	MinOffsetHours = -12
	MaxOffsetHours = 14
)

// Settings defines editable user preferences.
type Settings struct {
	Use24Hour           bool
	ShowSeconds         bool
	ShowDate            bool
	SmoothHands         bool
	TimezoneOffsetHours int
	SoundEnabled        bool
	Theme               model.Theme
}

// DefaultSettings returns default settings for the clock.
func DefaultSettings() Settings {
	return Settings{
		Use24Hour:    false,
		ShowSeconds:  true,
		ShowDate:     true,
		SmoothHands:  true,
		SoundEnabled: true,
		Theme:        model.ThemeClassic,
	}
}

// FromClockSettings converts runtime settings back to preferences.
func FromClockSettings(settings model.ClockSettings) Settings {
	return Settings(settings)
}

// ClockSettings converts settings to ClockSettings.
func (settings Settings) ClockSettings() model.ClockSettings {
	return model.ClockSettings(settings)
}

// Validate reports every out-of-range value.
func (settings Settings) Validate() error {
	var result *multierror.Error
	if settings.TimezoneOffsetHours < MinOffsetHours || settings.TimezoneOffsetHours > MaxOffsetHours {
		result = multierror.Append(result, fmt.Errorf("timezone offset %d outside %d..%d",
			settings.TimezoneOffsetHours, MinOffsetHours, MaxOffsetHours))
	}
	switch settings.Theme {
	case model.ThemeClassic, model.ThemeParty:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown theme %q", settings.Theme))
	}
	return result.ErrorOrNil()
}
