// Package panel builds the alarm, stopwatch and timer controls.
package panel

import (
	"clockface/internal/core/clockwork"
	"clockface/internal/core/format"
	"clockface/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// Feedback gives short confirmation for user actions.
type Feedback interface {
	Click()
}

// Hooks lets the application observe changes made from the panel.
type Hooks struct {
	// ApplySettings replaces the clock settings. Defaults to
	// Clock.UpdateSettings.
	ApplySettings func(model.ClockSettings)
	// AlarmsChanged runs after an alarm is added, toggled or removed.
	AlarmsChanged func()
}

// Panel holds the control widgets. Every handler runs on the UI thread.
type Panel struct {
	clock       *clockwork.Clock
	feedback    Feedback
	hooks       Hooks
	logger      *zap.Logger
	alarmEntry  *widget.Entry
	alarmList   *fyne.Container
	minutes     *widget.Entry
	seconds     *widget.Entry
	stopwatchBt *widget.Button
	content     fyne.CanvasObject
}

// New creates the control panel for clock.
func New(clock *clockwork.Clock, feedback Feedback, hooks Hooks, logger *zap.Logger) *Panel {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hooks.ApplySettings == nil {
		hooks.ApplySettings = clock.UpdateSettings
	}
	panel := &Panel{
		clock:      clock,
		feedback:   feedback,
		hooks:      hooks,
		logger:     logger,
		alarmEntry: widget.NewEntry(),
		alarmList:  container.NewVBox(),
		minutes:    widget.NewEntry(),
		seconds:    widget.NewEntry(),
	}
	panel.alarmEntry.SetPlaceHolder("HH:MM")
	panel.alarmEntry.OnSubmitted = func(string) { panel.AddAlarm() }
	panel.minutes.SetPlaceHolder("min")
	panel.seconds.SetPlaceHolder("sec")
	panel.stopwatchBt = widget.NewButton("Start", panel.ToggleStopwatch)

	alarms := container.NewBorder(nil, nil, nil,
		widget.NewButton("Add alarm", panel.AddAlarm), panel.alarmEntry)
	stopwatch := container.NewGridWithColumns(3,
		panel.stopwatchBt,
		widget.NewButton("Lap", panel.Lap),
		widget.NewButton("Reset", panel.ResetStopwatch),
	)
	timer := container.NewGridWithColumns(5,
		panel.minutes,
		panel.seconds,
		widget.NewButton("Start", panel.StartTimer),
		widget.NewButton("Pause", panel.PauseTimer),
		widget.NewButton("Reset", panel.ResetTimer),
	)

	panel.content = container.NewAppTabs(
		container.NewTabItem("Alarms", container.NewBorder(alarms, nil, nil, nil,
			container.NewVScroll(panel.alarmList))),
		container.NewTabItem("Stopwatch", stopwatch),
		container.NewTabItem("Timer", timer),
	)
	return panel
}

// Content returns the panel's root object.
func (panel *Panel) Content() fyne.CanvasObject {
	return panel.content
}

// AddAlarm registers the alarm typed in the entry. Malformed input is ignored.
func (panel *Panel) AddAlarm() {
	alarm, err := panel.clock.Alarms().Add(panel.alarmEntry.Text)
	if err != nil {
		panel.logger.Debug("alarm input ignored", zap.Error(err))
		return
	}
	panel.logger.Info("alarm added", zap.String("id", alarm.ID), zap.String("time", alarm.TimeOfDay))
	panel.alarmEntry.SetText("")
	panel.click()
	panel.refreshAlarms()
	panel.alarmsChanged()
}

// ToggleStopwatch starts or stops the stopwatch.
func (panel *Panel) ToggleStopwatch() {
	panel.clock.Stopwatch().Toggle()
	panel.click()
	panel.refreshStopwatchButton()
}

// Lap records a stopwatch lap.
func (panel *Panel) Lap() {
	panel.clock.Stopwatch().Lap()
	panel.click()
}

// ResetStopwatch clears the stopwatch.
func (panel *Panel) ResetStopwatch() {
	panel.clock.Stopwatch().Reset()
	panel.click()
	panel.refreshStopwatchButton()
}

// StartTimer starts or resumes the countdown. Zero input is ignored.
func (panel *Panel) StartTimer() {
	requested := format.ParseTimerInput(panel.minutes.Text, panel.seconds.Text)
	if !panel.clock.Timer().Start(requested) {
		return
	}
	panel.click()
}

// PauseTimer pauses the countdown.
func (panel *Panel) PauseTimer() {
	panel.clock.Timer().Pause()
	panel.click()
}

// ResetTimer clears the countdown.
func (panel *Panel) ResetTimer() {
	panel.clock.Timer().Reset()
	panel.click()
}

// HandleRune maps keyboard shortcuts to actions.
func (panel *Panel) HandleRune(r rune) {
	switch r {
	case ' ':
		panel.ToggleStopwatch()
	case 'l', 'L':
		panel.Lap()
	case 'r', 'R':
		panel.ResetStopwatch()
	case 't', 'T':
		settings := panel.clock.Settings()
		settings.Use24Hour = !settings.Use24Hour
		panel.hooks.ApplySettings(settings)
	}
}

func (panel *Panel) refreshAlarms() {
	alarms := panel.clock.Alarms().List()
	rows := make([]fyne.CanvasObject, 0, len(alarms))
	for _, alarm := range alarms {
		rows = append(rows, panel.alarmRow(alarm))
	}
	panel.alarmList.Objects = rows
	panel.alarmList.Refresh()
}

func (panel *Panel) alarmRow(alarm model.Alarm) fyne.CanvasObject {
	id := alarm.ID
	enabled := widget.NewCheck(alarm.TimeOfDay, nil)
	enabled.SetChecked(alarm.Enabled)
	enabled.OnChanged = func(bool) {
		panel.clock.Alarms().Toggle(id)
		panel.click()
		panel.alarmsChanged()
	}
	remove := widget.NewButton("Delete", func() {
		panel.clock.Alarms().Remove(id)
		panel.click()
		panel.refreshAlarms()
		panel.alarmsChanged()
	})
	return container.NewBorder(nil, nil, nil, remove, enabled)
}

func (panel *Panel) refreshStopwatchButton() {
	if panel.clock.Stopwatch().Running() {
		panel.stopwatchBt.SetText("Stop")
		return
	}
	panel.stopwatchBt.SetText("Start")
}

func (panel *Panel) alarmsChanged() {
	if panel.hooks.AlarmsChanged != nil {
		panel.hooks.AlarmsChanged()
	}
}

func (panel *Panel) click() {
	if panel.feedback != nil {
		panel.feedback.Click()
	}
}
