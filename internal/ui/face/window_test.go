package face

import (
	"testing"

	"clockface/internal/core/format"
	"clockface/internal/core/model"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

func TestWindowReceivesFrameValues(t *testing.T) {
	app := test.NewTempApp(t)
	face := New(app, Config{Theme: model.ThemeClassic}, widget.NewLabel("controls"))

	face.SetDigital("10:09:30", "Mon, 01 Jun 2026", "UTC")
	face.SetStopwatch("00:03.250", []string{"00:02.000", "00:01.000"})
	face.SetCountdown("00:42", true)
	face.SetStatus("Live · 24h · smooth")
	face.SetHands(format.Angles{Hour: 300, Minute: 54, Second: 180})

	assert.Equal(t, "10:09:30", face.clockLabel.Text)
	assert.Equal(t, "Mon, 01 Jun 2026", face.dateLabel.Text)
	assert.Equal(t, "UTC", face.zoneLabel.Text)
	assert.Equal(t, "00:03.250", face.stopwatchLabel.Text)
	assert.Equal(t, "00:02.000\n00:01.000", face.lapsLabel.Text)
	assert.Equal(t, "00:42", face.countdownLabel.Text)
	assert.True(t, face.countdownLabel.TextStyle.Bold)
	assert.Equal(t, "Live · 24h · smooth", face.statusLabel.Text)
	assert.Equal(t, format.Angles{Hour: 300, Minute: 54, Second: 180}, face.dial.angles)
}

func TestUpdateConfigSwitchesPalette(t *testing.T) {
	app := test.NewTempApp(t)
	face := New(app, Config{Theme: model.ThemeClassic}, nil)

	face.UpdateConfig(Config{Theme: model.ThemeParty})
	assert.Equal(t, paletteFor(model.ThemeParty).background, face.background.FillColor)
	assert.Equal(t, paletteFor(model.ThemeParty).accent, face.dial.hub.FillColor)
}
