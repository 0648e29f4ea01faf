package components

import (
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// UIPanel is a background panel behind HUD elements.
type UIPanel struct {
	engine.BaseComponent

	Color rl.Color

	BorderColor  rl.Color
	BorderWidth  int32
	BorderRadius float32 // rounded corners (0 = sharp)
}

func NewUIPanel() *UIPanel {
	return &UIPanel{
		Color:       rl.NewColor(30, 30, 40, 200),
		BorderColor: rl.NewColor(60, 60, 75, 255),
		BorderWidth: 1,
	}
}

// Draw renders the panel background
func (p *UIPanel) Draw(rect rl.Rectangle) {
	if p.BorderRadius > 0 && rect.Height > 0 {
		roundness := p.BorderRadius / rect.Height
		rl.DrawRectangleRounded(rect, roundness, 8, p.Color)
		if p.BorderWidth > 0 {
			rl.DrawRectangleRoundedLinesEx(rect, roundness, 8, float32(p.BorderWidth), p.BorderColor)
		}
		return
	}
	rl.DrawRectangleRec(rect, p.Color)
	if p.BorderWidth > 0 {
		rl.DrawRectangleLinesEx(rect, float32(p.BorderWidth), p.BorderColor)
	}
}
