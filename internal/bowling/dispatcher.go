package bowling

import (
	"arbowling/internal/engine"
	"arbowling/internal/physics"
	"arbowling/internal/tracking"
	"arbowling/internal/world"

	"github.com/rs/zerolog"
)

// FrameObserver receives every tracking frame.
type FrameObserver interface {
	OnFrame(s *Session, f tracking.Frame)
}

// InputHandler receives confirmation input (a tap).
type InputHandler interface {
	OnConfirm(s *Session)
}

// CollisionHandler receives contact-begin callbacks.
type CollisionHandler interface {
	OnCollisionBegin(s *Session, c physics.Contact)
}

// Stage is the part of the world the controllers drive.
type Stage interface {
	Spawn(g *engine.GameObject)
	Destroy(g *engine.GameObject)
	DestroyAfter(g *engine.GameObject, delay float64)
	After(delay float64, action func())
	SetContactDelegate(d physics.ContactDelegate)
	Reload() (*world.Lane, error)
}

// Dispatcher owns the current Session and routes tracking frames, taps,
// contacts and lifecycle events to the controllers.
type Dispatcher struct {
	provider tracking.Provider
	stage    Stage

	Placement *Placement
	Shot      *Shot
	Scoring   *Scoring
	Lighting  *Lighting

	frames     []FrameObserver
	inputs     map[Mode]InputHandler
	collisions []CollisionHandler

	session *Session
	log     zerolog.Logger
}

func NewDispatcher(stage Stage, provider tracking.Provider, display Display, settings Settings, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		provider: provider,
		stage:    stage,
		session:  NewSession(nil),
		log:      log.With().Str("component", "dispatcher").Logger(),
	}

	d.Scoring = NewScoring(stage, display, settings, d.Reset, log)
	d.Placement = NewPlacement(stage, provider, d, d.Scoring, log)
	d.Shot = NewShot(stage, provider, d.Scoring, settings, log)
	d.Lighting = NewLighting(settings)

	d.frames = []FrameObserver{d.Placement, d.Lighting}
	d.inputs = map[Mode]InputHandler{
		Placing:  d.Placement,
		Shooting: d.Shot,
	}
	d.collisions = []CollisionHandler{d.Scoring}
	return d
}

// Start loads the lane and begins the first session.
func (d *Dispatcher) Start() error {
	lane, err := d.stage.Reload()
	if err != nil {
		return err
	}
	d.session = NewSession(lane)
	d.Scoring.Refresh(d.session)
	return nil
}

// Session returns the current session.
func (d *Dispatcher) Session() *Session {
	return d.session
}

// OnFrame routes a tracking frame to the frame observers.
func (d *Dispatcher) OnFrame(f tracking.Frame) {
	for _, o := range d.frames {
		o.OnFrame(d.session, f)
	}
}

// Tick pulls the provider's current frame, if any, and routes it.
func (d *Dispatcher) Tick() {
	if f, ok := d.provider.CurrentFrame(); ok {
		d.OnFrame(f)
	}
}

// Confirm routes a tap to the handler for the current mode.
func (d *Dispatcher) Confirm() {
	if h, ok := d.inputs[d.session.Mode]; ok {
		h.OnConfirm(d.session)
	}
}

// BeginContact implements physics.ContactDelegate.
func (d *Dispatcher) BeginContact(c physics.Contact) {
	for _, h := range d.collisions {
		h.OnCollisionBegin(d.session, c)
	}
}

// Reset reloads the authored scene and starts over in Placing. It is both
// the all-pins-down path and the Restart button.
func (d *Dispatcher) Reset() {
	d.session.discard()

	lane, err := d.stage.Reload()
	if err != nil {
		d.log.Error().Err(err).Msg("reload failed")
	}
	d.session = NewSession(lane)
	d.log.Info().Msg("scene reset")

	d.Scoring.Cleared.Invoke()
	d.Scoring.Refresh(d.session)
}

// Lifecycle events are reported only; there is no recovery.

func (d *Dispatcher) SessionStarted() {
	d.log.Info().Msg("tracking session started")
}

func (d *Dispatcher) SessionPaused() {
	d.log.Info().Msg("tracking session paused")
}

func (d *Dispatcher) SessionInterrupted() {
	d.log.Warn().Msg("tracking session interrupted")
}

func (d *Dispatcher) SessionInterruptionEnded() {
	d.log.Info().Msg("tracking session interruption ended")
}

func (d *Dispatcher) SessionFailed(err error) {
	d.log.Error().Err(err).Msg("tracking session failed")
}
