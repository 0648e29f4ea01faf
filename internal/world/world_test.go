package world

import (
	"testing"

	"arbowling/internal/components"
	"arbowling/internal/engine"
	"arbowling/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := New(Options{
		Gravity:          rl.Vector3{Y: -9.8},
		LaneAsset:        laneAsset,
		EnvironmentAsset: roomAsset,
	}, zerolog.Nop())
	require.NoError(t, w.LoadEnvironment())
	return w
}

func TestReloadProducesFreshLane(t *testing.T) {
	w := newTestWorld(t)

	first, err := w.Reload()
	require.NoError(t, err)
	assert.Same(t, first, w.Lane())
	assert.Same(t, w.Scene, first.Container.Scene)

	second, err := w.Reload()
	require.NoError(t, err)
	assert.NotSame(t, first.Container, second.Container)
	assert.Nil(t, w.Scene.FindByUID(first.Container.UID), "old lane is gone")
	assert.Equal(t, 10, second.RemainingPins())
}

func TestEnvironmentSurvivesReload(t *testing.T) {
	w := newTestWorld(t)
	require.NotEmpty(t, w.Environment)
	floor := w.Environment[0]

	_, err := w.Reload()
	require.NoError(t, err)

	assert.Same(t, floor, w.Scene.FindByUID(floor.UID))
	_, ok := w.HitTest(rl.Vector3{Y: 5, Z: 3}, rl.Vector3{Y: -1})
	assert.True(t, ok)
}

func TestReloadMissingAsset(t *testing.T) {
	w := New(Options{LaneAsset: "testdata/missing.yaml"}, zerolog.Nop())
	_, err := w.Reload()
	assert.Error(t, err)
	assert.Nil(t, w.Lane())
}

func TestReloadWithoutLane(t *testing.T) {
	w := New(Options{LaneAsset: "testdata/nolane.yaml"}, zerolog.Nop())
	_, err := w.Reload()
	assert.ErrorIs(t, err, ErrNoLane)
}

func TestHitTestFloor(t *testing.T) {
	w := newTestWorld(t)

	hit, ok := w.HitTest(rl.Vector3{X: 3, Y: 2, Z: 3}, rl.Vector3{Y: -1})
	require.True(t, ok)
	assert.Equal(t, "Floor", hit.GameObject.Name)
	assert.InDelta(t, 0, hit.Point.Y, 1e-4)
}

func TestHitTestIgnoresLanePins(t *testing.T) {
	w := newTestWorld(t)
	lane, err := w.Reload()
	require.NoError(t, err)
	lane.Container.Transform.Position = rl.Vector3{X: 3}
	lane.Container.Active = true

	hit, ok := w.HitTest(rl.Vector3{X: 3, Y: 2}, rl.Vector3{Y: -1})
	require.True(t, ok)
	assert.Equal(t, "Floor", hit.GameObject.Name)
}

func TestDestroyIsIdempotent(t *testing.T) {
	w := newTestWorld(t)
	lane, err := w.Reload()
	require.NoError(t, err)

	pin := lane.Container.ChildrenWithTag(PinTag)[0]
	w.Destroy(pin)
	assert.True(t, pin.Destroyed())
	assert.Nil(t, pin.Parent)
	assert.Nil(t, w.Scene.FindByUID(pin.UID))
	assert.Equal(t, 9, lane.RemainingPins())
	assert.False(t, lane.IsPin(pin))

	w.Destroy(pin)
	w.Destroy(nil)
	assert.Equal(t, 9, lane.RemainingPins())
}

func TestDestroyAfterUsesSimulationTime(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.Reload()
	require.NoError(t, err)

	ball := engine.NewGameObject("ball")
	ball.Transform.Position = rl.Vector3{Y: 10}
	w.Spawn(ball)
	w.DestroyAfter(ball, 2)

	for i := 0; i < 3; i++ {
		w.Step(0.5)
	}
	assert.False(t, ball.Destroyed(), "removed early at t=%v", w.Now())

	w.Step(0.5)
	assert.True(t, ball.Destroyed())
	assert.Nil(t, w.Scene.FindByUID(ball.UID))
}

func TestReloadDropsPendingRemovals(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.Reload()
	require.NoError(t, err)

	ball := engine.NewGameObject("ball")
	w.Spawn(ball)
	w.DestroyAfter(ball, 1)
	require.Equal(t, 1, w.Scheduler.Pending())

	_, err = w.Reload()
	require.NoError(t, err)
	assert.Zero(t, w.Scheduler.Pending())
}

func TestAfterSkipsActionsDueInReloadingStep(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.Reload()
	require.NoError(t, err)

	var ran []string
	w.After(1, func() {
		ran = append(ran, "reload")
		_, err := w.Reload()
		require.NoError(t, err)
	})
	w.After(1, func() { ran = append(ran, "stale") })

	w.Step(1)
	w.Step(1)
	assert.Equal(t, []string{"reload"}, ran)
}

func TestReloadInsideContactDelegate(t *testing.T) {
	w := newTestWorld(t)
	lane, err := w.Reload()
	require.NoError(t, err)
	lane.Container.Active = true

	pin := lane.Container.ChildrenWithTag(PinTag)[0]
	ball := engine.NewGameObject("ball")
	// Overlaps this pin only
	ball.Transform.Position = rl.Vector3Add(pin.WorldPosition(), rl.Vector3{X: 0.1, Z: 0.06})
	rb := components.NewRigidbody()
	rb.UseGravity = false
	rb.CategoryMask = 3
	rb.ContactTestMask = 1
	ball.AddComponent(rb)
	ball.AddComponent(components.NewSphereCollider(0.1))
	w.Spawn(ball)

	reloads := 0
	w.SetContactDelegate(physics.ContactDelegateFunc(func(c physics.Contact) {
		reloads++
		_, err := w.Reload()
		require.NoError(t, err)
	}))

	w.Step(1.0 / 60.0)
	assert.Equal(t, 1, reloads)
	assert.NotSame(t, lane, w.Lane())

	// The fresh physics world has no delegate
	w.Step(1.0 / 60.0)
	assert.Equal(t, 1, reloads)
}

func TestLightFactor(t *testing.T) {
	ambient := components.NewAmbientLight()
	directional := components.NewDirectionalLight()
	assert.InDelta(t, 1.0, LightFactor(ambient, directional), 1e-5, "neutral estimate")

	ambient.Intensity = 0
	directional.Intensity = 0
	assert.Zero(t, LightFactor(ambient, directional))

	assert.Zero(t, LightFactor(nil, nil))

	directional.Intensity = 10000
	assert.Equal(t, float32(2), LightFactor(nil, directional))
}

func TestFrustumCulling(t *testing.T) {
	camera := rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{Z: -1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	f := NewFrustum(camera, 16.0/9.0)

	assert.True(t, f.ContainsPoint(rl.Vector3{Z: -5}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: 5}), "behind the camera")
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 50, Z: -5}))
	assert.True(t, f.ContainsSphere(rl.Vector3{X: 4, Z: -5}, 2))
	assert.False(t, f.ContainsPoint(rl.Vector3{Z: -CullFar - 1}))
}
