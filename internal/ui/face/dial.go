package face

import (
	"image/color"
	"math"
	"strconv"

	"clockface/internal/core/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const (
	hourHandRatio   = float32(0.5)
	minuteHandRatio = float32(0.72)
	secondHandRatio = float32(0.85)
	numeralRatio    = float32(0.8)
	tickInnerRatio  = float32(0.9)
)

// dial draws the analog face. Hand angles are kept between layouts so a
// resize keeps the hands where they were.
type dial struct {
	rim      *canvas.Circle
	hub      *canvas.Circle
	ticks    []*canvas.Line
	numerals []*canvas.Text
	hour     *canvas.Line
	minute   *canvas.Line
	second   *canvas.Line
	angles   format.Angles
	size     fyne.Size
}

func newDial(accent color.Color) *dial {
	foreground := color.NRGBA{R: 240, G: 240, B: 240, A: 255}

	rim := canvas.NewCircle(color.NRGBA{R: 28, G: 28, B: 34, A: 255})
	rim.StrokeColor = foreground
	rim.StrokeWidth = 3

	hub := canvas.NewCircle(accent)

	face := &dial{
		rim:    rim,
		hub:    hub,
		hour:   canvas.NewLine(foreground),
		minute: canvas.NewLine(foreground),
		second: canvas.NewLine(accent),
	}
	face.hour.StrokeWidth = 6
	face.minute.StrokeWidth = 4
	face.second.StrokeWidth = 2

	for index := 0; index < 12; index++ {
		tick := canvas.NewLine(foreground)
		tick.StrokeWidth = 2
		face.ticks = append(face.ticks, tick)

		numeral := canvas.NewText(strconv.Itoa(index+1), foreground)
		numeral.Alignment = fyne.TextAlignCenter
		numeral.TextSize = 16
		face.numerals = append(face.numerals, numeral)
	}
	return face
}

func (face *dial) objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{face.rim}
	for _, tick := range face.ticks {
		objects = append(objects, tick)
	}
	for _, numeral := range face.numerals {
		objects = append(objects, numeral)
	}
	return append(objects, face.hour, face.minute, face.second, face.hub)
}

func (face *dial) setAngles(angles format.Angles) {
	face.angles = angles
	face.placeHands()
	face.hour.Refresh()
	face.minute.Refresh()
	face.second.Refresh()
}

func (face *dial) setAccent(accent color.Color) {
	face.second.StrokeColor = accent
	face.hub.FillColor = accent
	face.second.Refresh()
	face.hub.Refresh()
}

func (face *dial) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	face.size = size
	center, radius := dialGeometry(size)

	face.rim.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	face.rim.Resize(fyne.NewSize(radius*2, radius*2))

	hubRadius := radius * 0.04
	face.hub.Move(fyne.NewPos(center.X-hubRadius, center.Y-hubRadius))
	face.hub.Resize(fyne.NewSize(hubRadius*2, hubRadius*2))

	for index, tick := range face.ticks {
		degrees := float64(index+1) * 30
		tick.Position1 = handEnd(center, radius*tickInnerRatio, degrees)
		tick.Position2 = handEnd(center, radius*0.97, degrees)
	}
	for index, numeral := range face.numerals {
		anchor := handEnd(center, radius*numeralRatio, float64(index+1)*30)
		textSize := numeral.MinSize()
		numeral.Move(fyne.NewPos(anchor.X-textSize.Width/2, anchor.Y-textSize.Height/2))
		numeral.Resize(textSize)
	}
	face.placeHands()
}

func (face *dial) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(220, 220)
}

func (face *dial) placeHands() {
	center, radius := dialGeometry(face.size)
	face.hour.Position1 = center
	face.hour.Position2 = handEnd(center, radius*hourHandRatio, face.angles.Hour)
	face.minute.Position1 = center
	face.minute.Position2 = handEnd(center, radius*minuteHandRatio, face.angles.Minute)
	face.second.Position1 = handEnd(center, -radius*0.12, face.angles.Second)
	face.second.Position2 = handEnd(center, radius*secondHandRatio, face.angles.Second)
}

// dialGeometry returns the center and radius of the largest circle that fits.
func dialGeometry(size fyne.Size) (fyne.Position, float32) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	radius := side/2 - 4
	if radius < 0 {
		radius = 0
	}
	return fyne.NewPos(size.Width/2, size.Height/2), radius
}

// handEnd returns the point at length from center, rotated clockwise from
// twelve o'clock by degrees.
func handEnd(center fyne.Position, length float32, degrees float64) fyne.Position {
	radians := degrees * math.Pi / 180
	return fyne.NewPos(
		center.X+length*float32(math.Sin(radians)),
		center.Y-length*float32(math.Cos(radians)),
	)
}
