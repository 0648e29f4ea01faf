// Headless bowling run: places the lane in front of the simulated device
// and rolls balls from random lateral offsets, reporting pins knocked down.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"arbowling/internal/bowling"
	"arbowling/internal/config"
	"arbowling/internal/logging"
	"arbowling/internal/tracking"
	"arbowling/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	step        = float32(1.0 / 60)
	shotSeconds = 3
)

// noDisplay discards the HUD text.
type noDisplay struct{}

func (noDisplay) SetText(string) {}

func main() {
	configPath := flag.String("config", "", "config file")
	shots := flag.Int("shots", 20, "number of balls to roll")
	spread := flag.Float64("spread", 0.15, "max lateral offset of the device in meters")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := logging.ForFile("info", os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logging.ForFile(cfg.LogLevel, os.Stderr)

	// Stand low and level so balls roll straight at the lane
	devCfg := cfg.DeviceConfig()
	devCfg.Position = rl.Vector3{Y: 0.12}
	devCfg.Pitch = 0
	devCfg.Yaw = -90

	w := world.New(cfg.WorldOptions(), log)
	if err := w.LoadEnvironment(); err != nil {
		log.Fatal().Err(err).Msg("load environment")
	}
	device := tracking.NewDevice(devCfg, w, log)
	d := bowling.NewDispatcher(w, device, noDisplay{}, cfg.Settings(), log)
	device.SetObserver(d)
	if err := d.Start(); err != nil {
		log.Fatal().Err(err).Msg("start")
	}
	device.Start()

	var resets int
	d.Scoring.Cleared.AddListener(func() { resets++ })

	rng := rand.New(rand.NewSource(*seed))
	start := time.Now()
	for i := 0; i < *shots; i++ {
		if d.Session().Mode == bowling.Placing && !place(w, device, d) {
			log.Fatal().Msg("no surface to place the lane on")
		}

		before := d.Scoring.Remaining(d.Session())
		device.Position.X = (rng.Float32()*2 - 1) * float32(*spread)
		frame(w, device, d, true)
		for t := float32(0); t < shotSeconds; t += step {
			frame(w, device, d, false)
		}
		after := d.Scoring.Remaining(d.Session())
		if d.Session().Mode == bowling.Placing {
			after = 0
		}

		fmt.Printf("shot %3d  offset %+.3f  knocked %2d  standing %2d\n",
			i+1, device.Position.X, before-after, after)
	}
	fmt.Printf("\n%d shots, %d cleared lanes in %v\n", *shots, resets, time.Since(start).Round(time.Millisecond))
}

// place drops the lane a little way ahead of the device on the floor.
func place(w *world.World, device *tracking.Device, d *bowling.Dispatcher) bool {
	device.Position.X = 0
	pitch := device.Pitch
	device.Pitch = -15
	frame(w, device, d, false)
	placed := d.Session().SurfaceFound
	if placed {
		d.Confirm()
	}
	device.Pitch = pitch
	return placed && d.Session().Mode == bowling.Shooting
}

func frame(w *world.World, device *tracking.Device, d *bowling.Dispatcher, confirm bool) {
	device.Update(step, tracking.Controls{Focused: true})
	w.Step(step)
	d.Tick()
	if confirm {
		d.Confirm()
	}
}
