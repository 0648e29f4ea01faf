package game

import (
	"fmt"
	"time"

	"arbowling/internal/bowling"
	"arbowling/internal/config"
	"arbowling/internal/tracking"
	"arbowling/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// maxStep caps a frame's simulation step so a stalled frame cannot tunnel
// the ball through the pins.
const maxStep = 1.0 / 20

// Input is one frame of user input.
type Input struct {
	Controls tracking.Controls
	Confirm  bool // tap: left click or space
	Restart  bool
}

type Game struct {
	World      *world.World
	Device     *tracking.Device
	Dispatcher *bowling.Dispatcher
	Renderer   *world.Renderer
	HUD        *HUD
	DebugMode  bool

	cfg *config.Config
	log zerolog.Logger

	restartPressed bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(cfg *config.Config, log zerolog.Logger) *Game {
	w := world.New(cfg.WorldOptions(), log)
	device := tracking.NewDevice(cfg.DeviceConfig(), w, log)
	hud := NewHUD(cfg.Window.Width, cfg.Window.Height)
	d := bowling.NewDispatcher(w, device, hud, cfg.Settings(), log)
	device.SetObserver(d)

	d.Scoring.PinsChanged.AddListener(func(n int) {
		total := 0
		if lane := d.Session().CurrentLane(); lane != nil {
			total = lane.Total
		}
		hud.SetPins(n, total)
		log.Debug().Str("component", "hud").Int("pins", n).Msg("pin count")
	})

	return &Game{
		World:      w,
		Device:     device,
		Dispatcher: d,
		Renderer:   world.NewRenderer(),
		HUD:        hud,
		cfg:        cfg,
		log:        log.With().Str("component", "game").Logger(),
	}
}

// Load brings in the room and the first lane. It needs no window.
func (g *Game) Load() error {
	if err := g.World.LoadEnvironment(); err != nil {
		return err
	}
	if err := g.Dispatcher.Start(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	return nil
}

// Run opens the window and plays until it is closed.
func (g *Game) Run() error {
	if err := g.Load(); err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(g.cfg.Window.Width, g.cfg.Window.Height, g.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(g.cfg.Window.TargetFPS)
	initStyle()

	g.Device.Start()
	defer g.Device.Pause()

	for !rl.WindowShouldClose() {
		g.Update(rl.GetFrameTime(), g.readInput())
		g.Draw()
	}
	return nil
}

func (g *Game) readInput() Input {
	in := Input{Controls: tracking.ReadControls(), Restart: g.restartPressed}
	g.restartPressed = false

	clicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.HUD.Covers(rl.GetMousePosition())
	in.Confirm = clicked || rl.IsKeyPressed(rl.KeySpace)

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyR) {
		in.Restart = true
	}
	return in
}

// Update runs one frame: device, world step (contacts), frame routing,
// then input.
func (g *Game) Update(deltaTime float32, in Input) {
	start := time.Now()
	if deltaTime > maxStep {
		deltaTime = maxStep
	}

	g.Device.Update(deltaTime, in.Controls)
	g.World.Step(deltaTime)
	g.Dispatcher.Tick()

	if in.Restart {
		g.Dispatcher.Reset()
	} else if in.Confirm {
		g.Dispatcher.Confirm()
	}

	f, ok := g.Device.CurrentFrame()
	hasLight := ok && f.Light != nil
	var level float32
	if hasLight {
		level = f.Light.AmbientIntensity
	}
	g.HUD.UpdateHint(g.Dispatcher.Session(), level, hasLight)

	g.updateMs = float64(time.Since(start).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	g.HUD.Resize(width, height)
	if height > 0 {
		g.Renderer.Aspect = float32(width) / float32(height)
	}

	rl.BeginDrawing()
	rl.ClearBackground(world.Background)

	start := time.Now()
	g.Renderer.Draw(g.Device.Camera(), g.World)
	g.drawMs = float64(time.Since(start).Microseconds()) / 1000.0

	if g.HUD.Draw() {
		g.restartPressed = true
	}
	g.drawDebug(height)
	rl.EndDrawing()
}

func (g *Game) drawDebug(height int32) {
	if !g.DebugMode {
		return
	}
	y := height - 110
	s := g.Dispatcher.Session()
	rl.DrawFPS(10, y)
	rl.DrawText(fmt.Sprintf("Mode: %s  Shots: %d", s.Mode, s.Shots), 10, y+25, 16, rl.Yellow)
	rl.DrawText(fmt.Sprintf("Bodies: %d  Drawn: %d", g.World.Physics.DynamicObjectCount(), g.Renderer.Drawn()), 10, y+45, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Update: %.2f ms  Draw: %.2f ms", g.updateMs, g.drawMs), 10, y+65, 16, rl.Green)
}
