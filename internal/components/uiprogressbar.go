package components

import (
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// UIProgressBar is a fill-based indicator, e.g. standing pins out of the total.
type UIProgressBar struct {
	engine.BaseComponent

	Value    float32
	MaxValue float32

	BackgroundColor rl.Color
	FillColor       rl.Color
	BorderColor     rl.Color
	BorderWidth     int32
}

func NewUIProgressBar() *UIProgressBar {
	return &UIProgressBar{
		Value:           1,
		MaxValue:        1,
		BackgroundColor: rl.NewColor(40, 40, 50, 255),
		FillColor:       rl.NewColor(80, 200, 80, 255),
		BorderColor:     rl.NewColor(60, 60, 75, 255),
		BorderWidth:     1,
	}
}

// SetValue sets value and max together.
func (pb *UIProgressBar) SetValue(value, max float32) {
	pb.Value = value
	pb.MaxValue = max
}

// Percent returns the fill fraction, clamped to 0..1
func (pb *UIProgressBar) Percent() float32 {
	if pb.MaxValue <= 0 {
		return 0
	}
	p := pb.Value / pb.MaxValue
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// FillRect is the filled part of rect, growing from the left.
func (pb *UIProgressBar) FillRect(rect rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: rect.X, Y: rect.Y, Width: rect.Width * pb.Percent(), Height: rect.Height}
}

func (pb *UIProgressBar) Draw(rect rl.Rectangle) {
	rl.DrawRectangleRec(rect, pb.BackgroundColor)
	if fill := pb.FillRect(rect); fill.Width > 0 {
		rl.DrawRectangleRec(fill, pb.FillColor)
	}
	if pb.BorderWidth > 0 {
		rl.DrawRectangleLinesEx(rect, float32(pb.BorderWidth), pb.BorderColor)
	}
}
