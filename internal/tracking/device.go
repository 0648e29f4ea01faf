package tracking

import (
	"errors"
	"math"

	"arbowling/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// ErrNoRaycaster is reported through SessionFailed when the device has no
// world to hit-test against.
var ErrNoRaycaster = errors.New("tracking: device has no raycaster")

// Raycaster finds real-world surfaces along a ray.
type Raycaster interface {
	HitTest(origin, direction rl.Vector3) (physics.RaycastHit, bool)
}

type DeviceConfig struct {
	Position        rl.Vector3
	Yaw             float32 // degrees, -90 looks down -Z
	Pitch           float32
	FOV             float32 // vertical, degrees
	Aspect          float32
	MoveSpeed       float32
	LookSpeed       float32
	LightEstimation bool
	BaseIntensity   float32 // lumens
	DimmerStep      float32
}

func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		Position:        rl.Vector3{Y: 1.6, Z: 1.5},
		Yaw:             -90,
		Pitch:           -25,
		FOV:             60,
		Aspect:          16.0 / 9.0,
		MoveSpeed:       1.5,
		LookSpeed:       0.1,
		LightEstimation: true,
		BaseIntensity:   1000,
		DimmerStep:      0.1,
	}
}

// Controls is one frame of user input driving the simulated device.
type Controls struct {
	LookDelta rl.Vector2 // mouse movement in pixels
	Move      rl.Vector2 // X strafe right, Y forward, each in [-1, 1]
	Dimmer    int        // +1 brighter, -1 darker
	Focused   bool
}

const (
	minDimmer = 0.0
	maxDimmer = 2.0
)

// Device simulates an AR device: a hand-held camera inside a room whose
// surfaces come from a Raycaster.
type Device struct {
	Position rl.Vector3
	Yaw      float32
	Pitch    float32
	Dimmer   float32

	cfg       DeviceConfig
	raycaster Raycaster
	observer  SessionObserver
	log       zerolog.Logger

	running     bool
	interrupted bool
	hasFrame    bool
	time        float64
}

func NewDevice(cfg DeviceConfig, raycaster Raycaster, log zerolog.Logger) *Device {
	return &Device{
		Position:  cfg.Position,
		Yaw:       cfg.Yaw,
		Pitch:     cfg.Pitch,
		Dimmer:    1,
		cfg:       cfg,
		raycaster: raycaster,
		log:       log.With().Str("component", "tracking").Logger(),
	}
}

// SetObserver sets the receiver of lifecycle events.
func (d *Device) SetObserver(o SessionObserver) {
	d.observer = o
}

// Start begins the tracking session.
func (d *Device) Start() {
	if d.raycaster == nil {
		d.log.Error().Err(ErrNoRaycaster).Msg("session failed")
		if d.observer != nil {
			d.observer.SessionFailed(ErrNoRaycaster)
		}
		return
	}
	d.running = true
	d.log.Info().Msg("session started")
	if d.observer != nil {
		d.observer.SessionStarted()
	}
}

// Pause stops producing frames until Start is called again.
func (d *Device) Pause() {
	if !d.running {
		return
	}
	d.running = false
	d.log.Info().Msg("session paused")
	if d.observer != nil {
		d.observer.SessionPaused()
	}
}

// Update moves the device and produces a new frame.
func (d *Device) Update(deltaTime float32, in Controls) {
	d.trackFocus(in.Focused)
	if !d.running || d.interrupted {
		return
	}

	d.Yaw += in.LookDelta.X * d.cfg.LookSpeed
	d.Pitch -= in.LookDelta.Y * d.cfg.LookSpeed
	d.Pitch = clampf(d.Pitch, -89, 89)

	forward, right := d.groundDirections()
	move := rl.Vector3Add(rl.Vector3Scale(forward, in.Move.Y), rl.Vector3Scale(right, in.Move.X))
	if length := rl.Vector3Length(move); length > 1 {
		move = rl.Vector3Scale(move, 1/length)
	}
	d.Position = rl.Vector3Add(d.Position, rl.Vector3Scale(move, d.cfg.MoveSpeed*deltaTime))

	if in.Dimmer != 0 {
		d.Dimmer = clampf(d.Dimmer+float32(in.Dimmer)*d.cfg.DimmerStep, minDimmer, maxDimmer)
		d.log.Debug().Float32("dimmer", d.Dimmer).Msg("light dimmer changed")
	}

	d.time += float64(deltaTime)
	d.hasFrame = true
}

func (d *Device) trackFocus(focused bool) {
	if !d.running {
		return
	}
	switch {
	case !focused && !d.interrupted:
		d.interrupted = true
		d.log.Warn().Msg("session interrupted")
		if d.observer != nil {
			d.observer.SessionInterrupted()
		}
	case focused && d.interrupted:
		d.interrupted = false
		d.log.Info().Msg("session interruption ended")
		if d.observer != nil {
			d.observer.SessionInterruptionEnded()
		}
	}
}

// LookDirection is the unit viewing direction from yaw and pitch.
func (d *Device) LookDirection() rl.Vector3 {
	yawRad := float64(d.Yaw) * math.Pi / 180
	pitchRad := float64(d.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

// groundDirections returns forward and right on the horizontal plane
func (d *Device) groundDirections() (forward, right rl.Vector3) {
	yawRad := float64(d.Yaw) * math.Pi / 180
	forward = rl.Vector3{X: float32(math.Cos(yawRad)), Z: float32(math.Sin(yawRad))}
	right = rl.Vector3{X: float32(-math.Sin(yawRad)), Z: float32(math.Cos(yawRad))}
	return
}

// Transform is the current camera-to-world matrix.
func (d *Device) Transform() rl.Matrix {
	return CameraTransform(d.Position, d.LookDirection())
}

// CurrentFrame implements Provider.
func (d *Device) CurrentFrame() (Frame, bool) {
	if !d.hasFrame {
		return Frame{}, false
	}
	f := Frame{Camera: d.Transform(), Time: d.time}
	if d.cfg.LightEstimation {
		f.Light = &LightEstimate{AmbientIntensity: d.cfg.BaseIntensity * d.Dimmer}
	}
	return f, true
}

// ViewportRay returns the world-space ray through a normalized viewport
// point.
func (d *Device) ViewportRay(point rl.Vector2) (origin, direction rl.Vector3) {
	m := d.Transform()
	right := rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}
	up := rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}
	forward := rl.Vector3{X: -m.M8, Y: -m.M9, Z: -m.M10}

	tanHalf := float32(math.Tan(float64(d.cfg.FOV) * math.Pi / 360))
	ndcX := (2*point.X - 1) * tanHalf * d.cfg.Aspect
	ndcY := (1 - 2*point.Y) * tanHalf

	direction = rl.Vector3Add(forward, rl.Vector3Add(rl.Vector3Scale(right, ndcX), rl.Vector3Scale(up, ndcY)))
	return d.Position, rl.Vector3Normalize(direction)
}

// HitTest implements Provider. Only feature points are simulated.
func (d *Device) HitTest(point rl.Vector2, types HitTestType) []HitResult {
	if types&HitFeaturePoint == 0 || d.raycaster == nil || !d.hasFrame {
		return nil
	}
	origin, direction := d.ViewportRay(point)
	hit, ok := d.raycaster.HitTest(origin, direction)
	if !ok {
		return nil
	}
	return []HitResult{{
		Type:           HitFeaturePoint,
		WorldTransform: Translation(hit.Point),
		Distance:       hit.Distance,
	}}
}

// Camera returns the raylib camera matching the device pose.
func (d *Device) Camera() rl.Camera3D {
	return rl.Camera3D{
		Position:   d.Position,
		Target:     rl.Vector3Add(d.Position, d.LookDirection()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       d.cfg.FOV,
		Projection: rl.CameraPerspective,
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
