package bowling

import (
	"arbowling/internal/components"
	"arbowling/internal/engine"
	"arbowling/internal/tracking"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// ProjectileTag marks balls fired by Shot.
const ProjectileTag = "projectile"

// Projectile collision filtering: it hits everything and reports contacts
// with default-category bodies.
const (
	ProjectileCategory    = components.CategoryDefault | components.CategoryStatic
	ProjectileContactTest = components.CategoryDefault
)

// Shot fires a ball from the camera along its view direction.
type Shot struct {
	stage    Stage
	provider tracking.Provider
	scoring  *Scoring
	settings Settings
	log      zerolog.Logger
}

func NewShot(stage Stage, provider tracking.Provider, scoring *Scoring, settings Settings, log zerolog.Logger) *Shot {
	return &Shot{
		stage:    stage,
		provider: provider,
		scoring:  scoring,
		settings: settings,
		log:      log.With().Str("component", "shot").Logger(),
	}
}

// Impulse is the launch impulse for a camera whose transform has z as its Z
// basis vector. The camera looks down -Z.
func (sh *Shot) Impulse(z rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: -z.X * sh.settings.ShotSpeed,
		Y: -z.Y * sh.settings.ShotVertical,
		Z: -z.Z * sh.settings.ShotSpeed,
	}
}

// OnConfirm fires one projectile. Without a current frame nothing is fired.
func (sh *Shot) OnConfirm(s *Session) {
	if s.Mode != Shooting {
		return
	}
	sh.scoring.Refresh(s)

	f, ok := sh.provider.CurrentFrame()
	if !ok {
		return
	}

	ball := NewProjectile(sh.settings)
	ball.Transform.Position = f.Position()
	sh.stage.Spawn(ball)

	impulse := sh.Impulse(f.ZAxis())
	engine.GetComponent[*components.Rigidbody](ball).ApplyImpulse(impulse)
	sh.stage.DestroyAfter(ball, sh.settings.ProjectileLifetime)
	s.Shots++

	sh.log.Debug().Int("shot", s.Shots).
		Float32("ix", impulse.X).Float32("iy", impulse.Y).Float32("iz", impulse.Z).
		Msg("fired")
}

// NewProjectile builds a dynamic ball: blue, green glow, fully metallic.
func NewProjectile(settings Settings) *engine.GameObject {
	g := engine.NewGameObject("ball")
	g.Tags = []string{ProjectileTag}

	rb := components.NewRigidbody()
	rb.Mass = settings.ProjectileMass
	rb.CategoryMask = ProjectileCategory
	rb.ContactTestMask = ProjectileContactTest
	g.AddComponent(rb)
	g.AddComponent(components.NewSphereCollider(settings.ProjectileRadius))

	r := components.NewShapeRenderer(components.ShapeSphere, rl.Vector3{X: settings.ProjectileRadius}, rl.Blue)
	r.Emission = rl.Green
	r.Metalness = 1
	g.AddComponent(r)
	return g
}
