package world

import (
	"fmt"

	"arbowling/internal/engine"
	"arbowling/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// MaxHitDistance bounds surface hit-tests.
const MaxHitDistance = 50.0

type Options struct {
	Gravity          rl.Vector3
	LaneAsset        string
	EnvironmentAsset string
}

// World owns the persistent simulated surroundings and the reloadable
// virtual scene along with its physics and scheduled actions.
type World struct {
	Scene     *engine.Scene
	Physics   *physics.PhysicsWorld
	Scheduler *engine.Scheduler

	// Environment survives reloads; it stands in for the real room.
	Environment []*engine.GameObject

	opts     Options
	laneFile *SceneFile
	lane     *Lane
	log      zerolog.Logger
}

func New(opts Options, log zerolog.Logger) *World {
	w := &World{
		opts: opts,
		log:  log.With().Str("component", "world").Logger(),
	}
	w.reset()
	return w
}

func (w *World) reset() {
	w.Scene = engine.NewScene("Main")
	w.Physics = physics.NewPhysicsWorld(w.opts.Gravity, w.log)
	w.Scheduler = engine.NewScheduler()
	w.lane = nil
	for _, g := range w.Environment {
		w.Scene.AddGameObject(g)
		w.Physics.AddObject(g)
	}
}

// LoadEnvironment loads the simulated room surfaces. They stay in place
// across reloads.
func (w *World) LoadEnvironment() error {
	sf, err := ReadSceneFile(w.opts.EnvironmentAsset)
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}
	roots, err := sf.Instantiate()
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}
	w.Environment = append(w.Environment, roots...)
	for _, g := range roots {
		w.Scene.AddGameObject(g)
		w.Physics.AddObject(g)
		g.Start()
	}
	w.log.Info().Str("asset", w.opts.EnvironmentAsset).Int("objects", len(roots)).Msg("environment loaded")
	return nil
}

// Reload discards the virtual scene, its physics bodies and every pending
// scheduled action, then instantiates the authored lane again.
func (w *World) Reload() (*Lane, error) {
	w.reset()

	if w.laneFile == nil {
		sf, err := ReadSceneFile(w.opts.LaneAsset)
		if err != nil {
			return nil, fmt.Errorf("load lane: %w", err)
		}
		w.laneFile = sf
	}

	roots, err := w.laneFile.Instantiate()
	if err != nil {
		return nil, fmt.Errorf("load lane: %w", err)
	}
	lane, err := FindLane(roots)
	if err != nil {
		return nil, fmt.Errorf("load lane %s: %w", w.opts.LaneAsset, err)
	}

	for _, g := range roots {
		w.Spawn(g)
	}
	w.lane = lane
	w.log.Info().Int("pins", lane.Total).Msg("lane loaded")
	return lane, nil
}

// Lane returns the currently loaded lane, or nil.
func (w *World) Lane() *Lane {
	return w.lane
}

// Spawn adds g and its subtree to the scene and the physics world.
func (w *World) Spawn(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.Physics.AddObject(g)
	g.Start()
}

// Destroy removes g and its subtree for good. Destroying twice is a no-op.
func (w *World) Destroy(g *engine.GameObject) {
	if g == nil || g.Destroyed() {
		return
	}
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	if g.Scene != nil {
		g.Scene.RemoveGameObject(g)
	}
	w.Physics.RemoveObject(g)
	g.MarkDestroyed()
}

// After runs action delay seconds of simulation time from now. Actions
// still pending at a reload are dropped.
func (w *World) After(delay float64, action func()) {
	sched := w.Scheduler
	sched.After(delay, func() {
		if w.Scheduler == sched {
			action()
		}
	})
}

// DestroyAfter schedules g's removal delay seconds of simulation time from now.
func (w *World) DestroyAfter(g *engine.GameObject, delay float64) {
	w.After(delay, func() { w.Destroy(g) })
}

// SetContactDelegate installs d on the current physics world. A reload
// clears it.
func (w *World) SetContactDelegate(d physics.ContactDelegate) {
	w.Physics.SetContactDelegate(d)
}

// Step advances the scene, physics and scheduled actions by deltaTime.
// Contact callbacks run inside this call and may reload the world.
func (w *World) Step(deltaTime float32) {
	scene, phys, sched := w.Scene, w.Physics, w.Scheduler

	scene.Update(deltaTime)
	phys.Update(deltaTime)

	// Reloaded during contact delivery; the old actions are gone
	if w.Scheduler != sched {
		return
	}
	sched.Advance(float64(deltaTime))
}

// HitTest casts a ray against the environment surfaces only.
func (w *World) HitTest(origin, direction rl.Vector3) (physics.RaycastHit, bool) {
	return w.Physics.RaycastStatic(origin, direction, MaxHitDistance)
}

// Now returns the simulation time of the current scene.
func (w *World) Now() float64 {
	return w.Scheduler.Now()
}
