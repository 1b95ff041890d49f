// Package face shows the analog dial and the digital readouts.
package face

import (
	"image/color"
	"strings"

	"clockface/internal/core/format"
	"clockface/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines clock visuals.
type Config struct {
	Theme model.Theme
	Title string
}

// Window manages the clock UI and receives frames from the render loop.
type Window struct {
	window         fyne.Window
	config         Config
	dial           *dial
	background     *canvas.Rectangle
	clockLabel     *canvas.Text
	dateLabel      *canvas.Text
	zoneLabel      *canvas.Text
	statusLabel    *canvas.Text
	stopwatchLabel *canvas.Text
	countdownLabel *canvas.Text
	lapsLabel      *widget.Label
}

// New creates the clock window. Controls are placed under the readouts.
func New(app fyne.App, config Config, controls fyne.CanvasObject) *Window {
	if config.Title == "" {
		config.Title = "Clockface"
	}
	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	palette := paletteFor(config.Theme)
	background := canvas.NewRectangle(palette.background)
	face := newDial(palette.accent)

	clockLabel := newText("--:--", 34, true)
	dateLabel := newText("", 16, false)
	zoneLabel := newText("", 13, false)
	statusLabel := newText("Live", 13, true)
	statusLabel.Color = palette.accent
	stopwatchLabel := newText(format.Stopwatch(0), 20, true)
	countdownLabel := newText(format.Countdown(0), 20, true)

	lapsLabel := widget.NewLabel("")
	lapsLabel.TextStyle = fyne.TextStyle{Monospace: true}
	laps := container.NewVScroll(lapsLabel)
	laps.SetMinSize(fyne.NewSize(160, 120))

	readouts := container.NewVBox(
		container.NewCenter(clockLabel),
		container.NewCenter(dateLabel),
		container.NewCenter(zoneLabel),
		container.NewCenter(statusLabel),
		container.NewGridWithColumns(2,
			container.NewCenter(stopwatchLabel),
			container.NewCenter(countdownLabel),
		),
	)

	body := container.NewBorder(nil, controls, nil, laps,
		container.NewGridWithRows(2, container.New(face, face.objects()...), readouts))
	window.SetContent(container.NewStack(background, container.NewPadded(body)))
	window.Resize(fyne.NewSize(560, 720))

	return &Window{
		window:         window,
		config:         config,
		dial:           face,
		background:     background,
		clockLabel:     clockLabel,
		dateLabel:      dateLabel,
		zoneLabel:      zoneLabel,
		statusLabel:    statusLabel,
		stopwatchLabel: stopwatchLabel,
		countdownLabel: countdownLabel,
		lapsLabel:      lapsLabel,
	}
}

// Show displays the window.
func (face *Window) Show() {
	face.window.Show()
	face.window.RequestFocus()
}

// Hide hides the window.
func (face *Window) Hide() {
	face.window.Hide()
}

// Window exposes the underlying Fyne window.
func (face *Window) Window() fyne.Window {
	return face.window
}

// UpdateConfig updates clock visuals.
func (face *Window) UpdateConfig(config Config) {
	face.config = config
	palette := paletteFor(config.Theme)
	face.background.FillColor = palette.background
	face.statusLabel.Color = palette.accent
	face.dial.setAccent(palette.accent)
	canvas.Refresh(face.background)
	face.statusLabel.Refresh()
}

// SetHands rotates the analog hands.
func (face *Window) SetHands(angles format.Angles) {
	face.dial.setAngles(angles)
}

// SetDigital updates the time, date and zone text.
func (face *Window) SetDigital(clockText, dateText, zoneText string) {
	setText(face.clockLabel, clockText)
	setText(face.dateLabel, dateText)
	setText(face.zoneLabel, zoneText)
}

// SetStopwatch updates the stopwatch readout and lap list.
func (face *Window) SetStopwatch(elapsed string, laps []string) {
	setText(face.stopwatchLabel, elapsed)
	text := strings.Join(laps, "\n")
	if face.lapsLabel.Text != text {
		face.lapsLabel.SetText(text)
	}
}

// SetCountdown updates the countdown readout.
func (face *Window) SetCountdown(remaining string, running bool) {
	setText(face.countdownLabel, remaining)
	style := fyne.TextStyle{Bold: running}
	if face.countdownLabel.TextStyle != style {
		face.countdownLabel.TextStyle = style
		face.countdownLabel.Refresh()
	}
}

// SetStatus updates the status line.
func (face *Window) SetStatus(status string) {
	setText(face.statusLabel, status)
}

// setText only refreshes when the text changed; frames arrive at display rate.
func setText(label *canvas.Text, text string) {
	if label.Text == text {
		return
	}
	label.Text = text
	label.Refresh()
}

func newText(text string, size float32, bold bool) *canvas.Text {
	label := canvas.NewText(text, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = size
	label.TextStyle = fyne.TextStyle{Bold: bold}
	return label
}

type palette struct {
	background color.Color
	accent     color.Color
}

func paletteFor(theme model.Theme) palette {
	if theme == model.ThemeParty {
		return palette{
			background: color.NRGBA{R: 74, G: 20, B: 96, A: 255},
			accent:     color.NRGBA{R: 255, G: 105, B: 180, A: 255},
		}
	}
	return palette{
		background: color.NRGBA{R: 16, G: 16, B: 20, A: 255},
		accent:     color.NRGBA{R: 232, G: 190, B: 66, A: 255},
	}
}
