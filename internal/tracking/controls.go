package tracking

import rl "github.com/gen2brain/raylib-go/raylib"

// ReadControls samples the keyboard and mouse. Look only applies while the
// right mouse button is held so the left button stays free for taps.
func ReadControls() Controls {
	var c Controls
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		c.LookDelta = rl.GetMouseDelta()
	}
	if rl.IsKeyDown(rl.KeyW) {
		c.Move.Y++
	}
	if rl.IsKeyDown(rl.KeyS) {
		c.Move.Y--
	}
	if rl.IsKeyDown(rl.KeyD) {
		c.Move.X++
	}
	if rl.IsKeyDown(rl.KeyA) {
		c.Move.X--
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		c.Dimmer++
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		c.Dimmer--
	}
	c.Focused = rl.IsWindowFocused()
	return c
}
