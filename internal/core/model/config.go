package model

// Theme names the visual mode shown in the status line.
type Theme string

const (
	ThemeClassic Theme = "classic"
	ThemeParty   Theme = "party"
)

// ClockSettings contains runtime display options for the clock.
type ClockSettings struct {
	Use24Hour           bool
	ShowSeconds         bool
	ShowDate            bool
	SmoothHands         bool
	TimezoneOffsetHours int
	SoundEnabled        bool
	Theme               Theme
}

// Alarm is a recurring daily alarm.
type Alarm struct {
	ID        string
	TimeOfDay string
	Enabled   bool
}
