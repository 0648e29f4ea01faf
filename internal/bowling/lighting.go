package bowling

import "arbowling/internal/tracking"

// Lighting follows the real scene brightness with the lane's lights.
type Lighting struct {
	ambientFactor float32
}

func NewLighting(settings Settings) *Lighting {
	return &Lighting{ambientFactor: settings.AmbientFactor}
}

func (l *Lighting) OnFrame(s *Session, f tracking.Frame) {
	if s.Mode != Shooting || f.Light == nil {
		return
	}
	estimate := f.Light.AmbientIntensity
	if s.Directional != nil {
		s.Directional.Intensity = estimate
	}
	if s.Ambient != nil {
		s.Ambient.Intensity = estimate * l.ambientFactor
	}
}
