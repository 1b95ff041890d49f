// Package audio raises audible and visible alerts for alarms and timers.
package audio

import (
	"bytes"
	"io"

	"clockface/internal/core/model"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

const bell = '\a'

// Notifier posts desktop notifications. fyne.App satisfies it.
type Notifier interface {
	SendNotification(notification *fyne.Notification)
}

// Alerter rings the terminal bell and posts notifications.
// Delivery failures are logged and otherwise ignored.
type Alerter struct {
	notifier Notifier
	speaker  io.Writer
	logger   *zap.Logger
	soundOn  func() bool
}

// NewAlerter creates an alerter. soundOn is consulted before every tone.
func NewAlerter(notifier Notifier, speaker io.Writer, soundOn func() bool, logger *zap.Logger) *Alerter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if soundOn == nil {
		soundOn = func() bool { return true }
	}
	return &Alerter{
		notifier: notifier,
		speaker:  speaker,
		logger:   logger,
		soundOn:  soundOn,
	}
}

// Alarm announces a due alarm.
func (alerter *Alerter) Alarm(alarm model.Alarm) {
	alerter.notify("Alarm", "It is "+alarm.TimeOfDay)
	alerter.beep(3)
}

// TimerExpired announces the end of the countdown.
func (alerter *Alerter) TimerExpired() {
	alerter.notify("Timer", "Time is up!")
	alerter.beep(2)
}

// Click gives short feedback for a user action.
func (alerter *Alerter) Click() {
	alerter.beep(1)
}

func (alerter *Alerter) notify(title, content string) {
	if alerter.notifier == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			alerter.logger.Debug("notification unavailable", zap.Any("reason", recovered))
		}
	}()
	alerter.notifier.SendNotification(fyne.NewNotification(title, content))
}

func (alerter *Alerter) beep(count int) {
	if alerter.speaker == nil || !alerter.soundOn() {
		return
	}
	if _, err := alerter.speaker.Write(bytes.Repeat([]byte{bell}, count)); err != nil {
		alerter.logger.Debug("tone unavailable", zap.Error(err))
	}
}
