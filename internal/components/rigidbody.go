package components

import (
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Rigidbody", func(decode engine.DecodeFunc) (engine.Component, error) {
		var def rigidbodyDef
		if err := decode(&def); err != nil {
			return nil, err
		}
		return def.build(), nil
	})
}

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.05 // m/s - below this, object might sleep
	SleepAngularThreshold  = 1.0  // deg/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3  // seconds of low velocity before sleeping
)

// Collision categories. A contact is reported when one body's category
// overlaps the other body's contact-test mask.
const (
	CategoryDefault uint32 = 1
	CategoryStatic  uint32 = 2
	CategoryAll     uint32 = 0xFFFFFFFF
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32 // how fast rotation slows down
	UseGravity      bool
	IsKinematic     bool // moves but doesn't get pushed by physics

	CategoryMask    uint32
	ContactTestMask uint32

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	sleepTimer float32
	CanSleep   bool
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:           1.0,
		Bounciness:     0.5,
		Friction:       0.1,
		AngularDamping: 0.98,
		UseGravity:     true,
		CanSleep:       true,
		CategoryMask:   CategoryDefault,
	}
}

// ApplyImpulse changes velocity instantly by impulse/mass.
func (r *Rigidbody) ApplyImpulse(impulse rl.Vector3) {
	if r.IsKinematic || r.Mass <= 0 {
		return
	}
	r.Velocity = rl.Vector3Add(r.Velocity, rl.Vector3Scale(impulse, 1/r.Mass))
	r.Wake()
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// Extra damping near rest reduces jitter
		r.Velocity = rl.Vector3Scale(r.Velocity, 0.9)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, 0.9)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
			r.AngularVelocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}

type rigidbodyDef struct {
	Mass        float32 `yaml:"mass"`
	Bounciness  float32 `yaml:"bounciness"`
	Friction    float32 `yaml:"friction"`
	UseGravity  *bool   `yaml:"useGravity"`
	IsKinematic bool    `yaml:"isKinematic"`
	Category    *uint32 `yaml:"category"`
	ContactTest uint32  `yaml:"contactTest"`
	StartAsleep bool    `yaml:"startAsleep"`
}

func (def rigidbodyDef) build() *Rigidbody {
	rb := NewRigidbody()
	if def.Mass > 0 {
		rb.Mass = def.Mass
	}
	if def.Bounciness > 0 {
		rb.Bounciness = def.Bounciness
	}
	if def.Friction > 0 {
		rb.Friction = def.Friction
	}
	if def.UseGravity != nil {
		rb.UseGravity = *def.UseGravity
	}
	rb.IsKinematic = def.IsKinematic
	if def.Category != nil {
		rb.CategoryMask = *def.Category
	}
	rb.ContactTestMask = def.ContactTest
	rb.IsSleeping = def.StartAsleep
	return rb
}
