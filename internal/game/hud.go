package game

import (
	"fmt"

	"arbowling/internal/bowling"
	"arbowling/internal/components"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors, dark with an indigo accent
var (
	colorBgPanel       = rl.NewColor(18, 18, 24, 200)
	colorBgElement     = rl.NewColor(28, 28, 38, 255)
	colorBgHover       = rl.NewColor(38, 38, 52, 255)
	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
)

const (
	hudMargin   = 10
	hudPanelW   = 260
	hudPanelH   = 76
	restartW    = 110
	restartH    = 34
	hudFontSize = 22
)

// HUD shows the pin count, a mode hint and the Restart button.
type HUD struct {
	Label *components.UIText
	Pins  *components.UIProgressBar
	Hint  string

	panel *components.UIPanel

	width, height int32
}

func NewHUD(width, height int32) *HUD {
	label := components.NewUIText()
	label.FontSize = hudFontSize
	label.Color = colorTextPrimary
	panel := components.NewUIPanel()
	panel.Color = colorBgPanel
	panel.BorderRadius = 10

	pins := components.NewUIProgressBar()
	pins.FillColor = colorAccent
	pins.BorderWidth = 0

	return &HUD{Label: label, Pins: pins, panel: panel, width: width, height: height}
}

// SetText implements bowling.Display.
func (h *HUD) SetText(text string) {
	h.Label.SetText(text)
}

// SetPins updates the standing-pins bar.
func (h *HUD) SetPins(standing, total int) {
	h.Pins.SetValue(float32(standing), float32(total))
}

// Resize tracks the window size for layout.
func (h *HUD) Resize(width, height int32) {
	h.width, h.height = width, height
}

// RestartBounds is the Restart button's screen rectangle, top right.
func (h *HUD) RestartBounds() rl.Rectangle {
	return rl.Rectangle{
		X:      float32(h.width - restartW - hudMargin),
		Y:      hudMargin,
		Width:  restartW,
		Height: restartH,
	}
}

// Covers reports whether a screen point lands on a HUD control, so the
// click is not also taken as a tap.
func (h *HUD) Covers(point rl.Vector2) bool {
	return rl.CheckCollisionPointRec(point, h.RestartBounds())
}

// UpdateHint picks the instruction line for the session's mode.
func (h *HUD) UpdateHint(s *bowling.Session, lightLevel float32, hasLight bool) {
	switch {
	case s.Mode == bowling.Shooting:
		h.Hint = "Click or Space to bowl"
	case s.SurfaceFound:
		h.Hint = "Click or Space to place the lane"
	default:
		h.Hint = "Look around to find a surface"
	}
	if hasLight {
		h.Hint += fmt.Sprintf("  |  light %.0f lm", lightLevel)
	}
}

// Draw renders the HUD and reports whether Restart was pressed.
func (h *HUD) Draw() bool {
	panel := rl.Rectangle{X: hudMargin, Y: hudMargin, Width: hudPanelW, Height: hudPanelH}
	h.panel.Draw(panel)

	h.Label.Draw(rl.Rectangle{X: panel.X + 12, Y: panel.Y + 4, Width: panel.Width - 24, Height: 28})
	h.Pins.Draw(rl.Rectangle{X: panel.X + 12, Y: panel.Y + 34, Width: panel.Width - 24, Height: 6})
	gui.Label(rl.Rectangle{X: panel.X + 12, Y: panel.Y + 46, Width: float32(h.width), Height: 24}, h.Hint)

	return gui.Button(h.RestartBounds(), "Restart")
}

// initStyle applies the dark raygui theme.
func initStyle() {
	gui.LoadStyleDefault()
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 16)
}
