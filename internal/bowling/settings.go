package bowling

// Settings are the tunable constants of the game.
type Settings struct {
	ShotSpeed          float32 // horizontal impulse scale
	ShotVertical       float32 // vertical impulse scale
	ProjectileRadius   float32
	ProjectileMass     float32
	ProjectileLifetime float64 // seconds
	PinRemovalDelay    float64 // seconds before the other participant of a hit goes
	AmbientFactor      float32 // ambient share of the light estimate
}

func DefaultSettings() Settings {
	return Settings{
		ShotSpeed:          5.0,
		ShotVertical:       0.0,
		ProjectileRadius:   0.1,
		ProjectileMass:     1.0,
		ProjectileLifetime: 5,
		PinRemovalDelay:    2,
		AmbientFactor:      0.4,
	}
}
