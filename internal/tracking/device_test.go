package tracking

import (
	"errors"
	"testing"

	"arbowling/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floorAt treats the plane y = height as the only surface
type floorAt float32

func (f floorAt) HitTest(origin, direction rl.Vector3) (physics.RaycastHit, bool) {
	if direction.Y >= 0 {
		return physics.RaycastHit{}, false
	}
	t := (float32(f) - origin.Y) / direction.Y
	return physics.RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   rl.Vector3{Y: 1},
		Distance: t,
	}, true
}

type lifecycleLog struct {
	events []string
	err    error
}

func (l *lifecycleLog) SessionStarted()           { l.events = append(l.events, "started") }
func (l *lifecycleLog) SessionPaused()            { l.events = append(l.events, "paused") }
func (l *lifecycleLog) SessionInterrupted()       { l.events = append(l.events, "interrupted") }
func (l *lifecycleLog) SessionInterruptionEnded() { l.events = append(l.events, "ended") }
func (l *lifecycleLog) SessionFailed(err error) {
	l.events = append(l.events, "failed")
	l.err = err
}

func newDevice(t *testing.T, cfg DeviceConfig) *Device {
	t.Helper()
	d := NewDevice(cfg, floorAt(0), zerolog.Nop())
	d.Start()
	return d
}

func focused() Controls {
	return Controls{Focused: true}
}

func vecNear(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func TestNoFrameBeforeFirstUpdate(t *testing.T) {
	d := newDevice(t, DefaultDeviceConfig())

	_, ok := d.CurrentFrame()
	assert.False(t, ok)
	assert.Empty(t, d.HitTest(rl.Vector2{X: 0.5, Y: 0.5}, HitFeaturePoint))

	d.Update(0.016, focused())
	_, ok = d.CurrentFrame()
	assert.True(t, ok)
}

func TestFrameCameraTransform(t *testing.T) {
	cfg := DefaultDeviceConfig()
	cfg.Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	cfg.Pitch = 0
	d := newDevice(t, cfg)
	d.Update(0, focused())

	f, ok := d.CurrentFrame()
	require.True(t, ok)
	vecNear(t, rl.Vector3{X: 1, Y: 2, Z: 3}, f.Position())
	vecNear(t, rl.Vector3{Z: 1}, f.ZAxis())
	vecNear(t, rl.Vector3{Z: -1}, f.Forward())
}

func TestCameraTransformBasis(t *testing.T) {
	m := CameraTransform(rl.Vector3{}, rl.Vector3{X: 1})
	vecNear(t, rl.Vector3{Z: 1}, rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2})
	vecNear(t, rl.Vector3{Y: 1}, rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6})
	vecNear(t, rl.Vector3{X: -1}, rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10})

	// Looking straight down still yields a valid basis
	m = CameraTransform(rl.Vector3{}, rl.Vector3{Y: -1})
	vecNear(t, rl.Vector3{Y: 1}, rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10})
}

func TestViewportRayCenterIsForward(t *testing.T) {
	d := newDevice(t, DefaultDeviceConfig())

	origin, dir := d.ViewportRay(rl.Vector2{X: 0.5, Y: 0.5})
	vecNear(t, d.Position, origin)
	vecNear(t, d.LookDirection(), dir)

	_, left := d.ViewportRay(rl.Vector2{X: 0, Y: 0.5})
	_, top := d.ViewportRay(rl.Vector2{X: 0.5, Y: 0})
	assert.Less(t, left.X, dir.X, "left edge points left")
	assert.Greater(t, top.Y, dir.Y, "top edge points up")
}

func TestHitTestCenter(t *testing.T) {
	cfg := DefaultDeviceConfig()
	cfg.Position = rl.Vector3{Y: 1}
	cfg.Pitch = -45
	d := newDevice(t, cfg)
	d.Update(0, focused())

	results := d.HitTest(rl.Vector2{X: 0.5, Y: 0.5}, HitFeaturePoint)
	require.Len(t, results, 1)
	vecNear(t, rl.Vector3{Y: 0, Z: -1}, results[0].Position())
	assert.InDelta(t, 1.41421, results[0].Distance, 1e-3)

	assert.Empty(t, d.HitTest(rl.Vector2{X: 0.5, Y: 0.5}, 0), "no requested type")
}

func TestHitTestMissesAboveHorizon(t *testing.T) {
	cfg := DefaultDeviceConfig()
	cfg.Pitch = 30
	d := newDevice(t, cfg)
	d.Update(0, focused())

	assert.Empty(t, d.HitTest(rl.Vector2{X: 0.5, Y: 0.5}, HitFeaturePoint))
}

func TestLightEstimateDimmer(t *testing.T) {
	d := newDevice(t, DefaultDeviceConfig())
	d.Update(0, focused())

	f, _ := d.CurrentFrame()
	require.NotNil(t, f.Light)
	assert.InDelta(t, 1000, f.Light.AmbientIntensity, 1e-3)

	for i := 0; i < 5; i++ {
		d.Update(0, Controls{Focused: true, Dimmer: -1})
	}
	f, _ = d.CurrentFrame()
	assert.InDelta(t, 500, f.Light.AmbientIntensity, 1e-2)

	for i := 0; i < 30; i++ {
		d.Update(0, Controls{Focused: true, Dimmer: 1})
	}
	f, _ = d.CurrentFrame()
	assert.InDelta(t, 2000, f.Light.AmbientIntensity, 1e-2, "dimmer is clamped")
}

func TestLightEstimationDisabled(t *testing.T) {
	cfg := DefaultDeviceConfig()
	cfg.LightEstimation = false
	d := newDevice(t, cfg)
	d.Update(0, focused())

	f, ok := d.CurrentFrame()
	require.True(t, ok)
	assert.Nil(t, f.Light)
}

func TestMovement(t *testing.T) {
	cfg := DefaultDeviceConfig()
	cfg.Position = rl.Vector3{}
	cfg.MoveSpeed = 2
	d := newDevice(t, cfg)

	d.Update(0.5, Controls{Focused: true, Move: rl.Vector2{Y: 1}})
	vecNear(t, rl.Vector3{Z: -1}, d.Position)

	d.Update(0.5, Controls{Focused: true, Move: rl.Vector2{X: 1}})
	vecNear(t, rl.Vector3{X: 1, Z: -1}, d.Position)
}

func TestPitchClamped(t *testing.T) {
	d := newDevice(t, DefaultDeviceConfig())
	d.Update(0, Controls{Focused: true, LookDelta: rl.Vector2{Y: -10000}})
	assert.Equal(t, float32(89), d.Pitch)
}

func TestLifecycleEvents(t *testing.T) {
	log := &lifecycleLog{}
	d := NewDevice(DefaultDeviceConfig(), floorAt(0), zerolog.Nop())
	d.SetObserver(log)

	d.Start()
	d.Update(0, focused())
	d.Update(0, Controls{Focused: false})
	d.Update(0, Controls{Focused: false})
	d.Update(0, focused())
	d.Pause()
	d.Pause()

	assert.Equal(t, []string{"started", "interrupted", "ended", "paused"}, log.events)
}

func TestNoUpdatesWhileInterrupted(t *testing.T) {
	cfg := DefaultDeviceConfig()
	cfg.Position = rl.Vector3{}
	d := newDevice(t, cfg)

	d.Update(1, Controls{Focused: false, Move: rl.Vector2{Y: 1}})
	vecNear(t, rl.Vector3{}, d.Position)
	_, ok := d.CurrentFrame()
	assert.False(t, ok)
}

func TestStartWithoutRaycasterFails(t *testing.T) {
	log := &lifecycleLog{}
	d := NewDevice(DefaultDeviceConfig(), nil, zerolog.Nop())
	d.SetObserver(log)

	d.Start()

	assert.Equal(t, []string{"failed"}, log.events)
	assert.True(t, errors.Is(log.err, ErrNoRaycaster))
}
