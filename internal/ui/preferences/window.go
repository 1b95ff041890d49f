package preferences

import (
	"strconv"
	"strings"

	"clockface/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	use24    *widget.Check
	seconds  *widget.Check
	date     *widget.Check
	smooth   *widget.Check
	sound    *widget.Check
	offset   *widget.Entry
	theme    *widget.Select
	problem  *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Clockface Settings")

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		use24:    widget.NewCheck("24-hour clock", nil),
		seconds:  widget.NewCheck("Show seconds", nil),
		date:     widget.NewCheck("Show date", nil),
		smooth:   widget.NewCheck("Smooth hands", nil),
		sound:    widget.NewCheck("Sound", nil),
		offset:   widget.NewEntry(),
		theme:    widget.NewSelect([]string{string(model.ThemeClassic), string(model.ThemeParty)}, nil),
		problem:  widget.NewLabel(""),
	}
	prefs.problem.Wrapping = fyne.TextWrapWord
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.use24,
		prefs.seconds,
		prefs.date,
		prefs.smooth,
		prefs.sound,
		container.NewHBox(widget.NewLabel("Timezone offset"), prefs.offset, widget.NewLabel("h")),
		container.NewHBox(widget.NewLabel("Theme"), prefs.theme),
		prefs.problem,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 380))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.use24.SetChecked(settings.Use24Hour)
	prefs.seconds.SetChecked(settings.ShowSeconds)
	prefs.date.SetChecked(settings.ShowDate)
	prefs.smooth.SetChecked(settings.SmoothHands)
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.offset.SetText(strconv.Itoa(settings.TimezoneOffsetHours))
	prefs.theme.SetSelected(string(settings.Theme))
	prefs.problem.SetText("")
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.Use24Hour = prefs.use24.Checked
	settings.ShowSeconds = prefs.seconds.Checked
	settings.ShowDate = prefs.date.Checked
	settings.SmoothHands = prefs.smooth.Checked
	settings.SoundEnabled = prefs.sound.Checked
	if hours, ok := parseInt(prefs.offset.Text); ok {
		settings.TimezoneOffsetHours = hours
	}
	if prefs.theme.Selected != "" {
		settings.Theme = model.Theme(prefs.theme.Selected)
	}

	if err := settings.Validate(); err != nil {
		prefs.problem.SetText(err.Error())
		return
	}

	prefs.settings = settings
	prefs.problem.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}
