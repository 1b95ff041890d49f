// Package format turns clock readings and durations into display values.
// Every function here is pure.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Angles holds hand rotations in degrees. Values are not normalized to 360.
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// ClockTime renders the digital readout.
func ClockTime(value time.Time, use24Hour, showSeconds bool) string {
	hour := value.Hour()
	minute := value.Minute()
	second := value.Second()

	if use24Hour {
		if showSeconds {
			return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
		}
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	if showSeconds {
		return fmt.Sprintf("%d:%02d:%02d %s", hour12, minute, second, suffix)
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, suffix)
}

// Date renders e.g. "Tue, 05 Feb 2026".
func Date(value time.Time) string {
	return value.Format("Mon, 02 Jan 2006")
}

// Zone renders the time zone label for a reading shifted by offsetHours.
func Zone(value time.Time, offsetHours int) string {
	name, _ := value.Zone()
	if name == "" {
		name = "Local Time"
	}
	if offsetHours == 0 {
		return name
	}
	return fmt.Sprintf("%s %+dh", name, offsetHours)
}

// HandAngles computes the rotation of each hand. With smooth set the second
// hand sweeps through milliseconds instead of stepping.
func HandAngles(value time.Time, smooth bool) Angles {
	hours := float64(value.Hour() % 12)
	minutes := float64(value.Minute())
	seconds := float64(value.Second())

	secondDeg := seconds * 6
	if smooth {
		secondDeg += float64(value.Nanosecond()/int(time.Millisecond)) * 6 / 1000
	}
	return Angles{
		Hour:   hours*30 + minutes/60*30,
		Minute: minutes*6 + seconds/60*6,
		Second: secondDeg,
	}
}

// Stopwatch renders "MM:SS.mmm", flooring each part.
func Stopwatch(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	millis := elapsed.Milliseconds()
	minutes := millis / 60000
	seconds := millis / 1000 % 60
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis%1000)
}

// Countdown renders "MM:SS". Remaining time is rounded up to whole seconds so
// the readout only reaches 00:00 when nothing is left.
func Countdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int64((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ParseTimerInput converts minute and second fields into a duration.
// Fields that are empty, non-numeric or negative count as zero.
func ParseTimerInput(minutes, seconds string) time.Duration {
	return time.Duration(parseField(minutes))*time.Minute +
		time.Duration(parseField(seconds))*time.Second
}

func parseField(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
