package bowling

import (
	"arbowling/internal/components"
	"arbowling/internal/engine"
	"arbowling/internal/physics"
	"arbowling/internal/tracking"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// ScreenCenter is the normalized viewport point placement hit-tests.
var ScreenCenter = rl.Vector2{X: 0.5, Y: 0.5}

// Placement tracks the real surface under the screen center with a
// reticle and drops the lane there on confirm.
type Placement struct {
	stage    Stage
	provider tracking.Provider
	contacts physics.ContactDelegate
	scoring  *Scoring
	log      zerolog.Logger
}

func NewPlacement(stage Stage, provider tracking.Provider, contacts physics.ContactDelegate, scoring *Scoring, log zerolog.Logger) *Placement {
	return &Placement{
		stage:    stage,
		provider: provider,
		contacts: contacts,
		scoring:  scoring,
		log:      log.With().Str("component", "placement").Logger(),
	}
}

// OnFrame moves the reticle to the nearest feature-point hit. A frame with
// no hit leaves the reticle where it was.
func (p *Placement) OnFrame(s *Session, f tracking.Frame) {
	if s.Mode != Placing {
		return
	}
	results := p.provider.HitTest(ScreenCenter, tracking.HitFeaturePoint)
	if len(results) == 0 {
		return
	}
	pos := results[0].Position()

	if s.Reticle == nil {
		s.Reticle = NewReticle()
		s.Reticle.Transform.Position = pos
		p.stage.Spawn(s.Reticle)
		p.log.Debug().Msg("surface found")
	}
	s.Reticle.SetWorldPosition(pos)
	s.SurfaceFound = true
}

// OnConfirm places the lane at the reticle. It does nothing until a
// surface has been found.
func (p *Placement) OnConfirm(s *Session) {
	if s.Mode != Placing || !s.SurfaceFound || s.Reticle == nil || s.loaded == nil {
		return
	}

	pos := s.Reticle.WorldPosition()
	p.stage.Destroy(s.Reticle)
	s.Reticle = nil

	lane := s.place()
	lane.Container.SetWorldPosition(pos)
	lane.Container.Active = true

	p.stage.SetContactDelegate(p.contacts)
	p.log.Info().
		Float32("x", pos.X).Float32("y", pos.Y).Float32("z", pos.Z).
		Msg("lane placed")

	p.scoring.Refresh(s)
}

// NewReticle builds the flat ring that marks the placement point.
func NewReticle() *engine.GameObject {
	g := engine.NewGameObject("reticle")
	g.AddComponent(components.NewShapeRenderer(components.ShapeRing, rl.Vector3{X: 0.15}, rl.White))
	return g
}
