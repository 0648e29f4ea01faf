package components

import (
	"fmt"

	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Light", func(decode engine.DecodeFunc) (engine.Component, error) {
		var def struct {
			Kind      string     `yaml:"kind"`
			Color     string     `yaml:"color"`
			Intensity float32    `yaml:"intensity"`
			Direction [3]float32 `yaml:"direction"`
		}
		if err := decode(&def); err != nil {
			return nil, err
		}

		var l *Light
		switch def.Kind {
		case "ambient":
			l = NewAmbientLight()
		case "directional", "":
			l = NewDirectionalLight()
		default:
			return nil, fmt.Errorf("unknown light kind %q", def.Kind)
		}
		if def.Color != "" {
			l.Color = LookupColor(def.Color)
		}
		if def.Intensity > 0 {
			l.Intensity = def.Intensity
		}
		if def.Direction != [3]float32{} {
			l.Direction = rl.Vector3Normalize(vec3(def.Direction))
		}
		return l, nil
	})
}

// NeutralIntensity is the light intensity, in lumens, of a neutrally lit scene.
const NeutralIntensity = 1000.0

type LightKind int

const (
	LightDirectional LightKind = iota
	LightAmbient
)

// Light is an ambient or directional light. Intensity follows the AR
// convention where 1000 lumens is neutral.
type Light struct {
	engine.BaseComponent
	Kind      LightKind
	Color     rl.Color
	Intensity float32
	Direction rl.Vector3 // directional only
}

func NewDirectionalLight() *Light {
	return &Light{
		Kind:      LightDirectional,
		Color:     rl.White,
		Intensity: NeutralIntensity,
		Direction: rl.Vector3Normalize(rl.Vector3{X: 0.35, Y: -1.0, Z: -0.35}),
	}
}

func NewAmbientLight() *Light {
	return &Light{
		Kind:      LightAmbient,
		Color:     rl.White,
		Intensity: NeutralIntensity * 0.4,
	}
}

// Strength returns Intensity relative to a neutral scene (1.0 = neutral).
func (l *Light) Strength() float32 {
	return l.Intensity / NeutralIntensity
}

// GetColorFloat returns the light color premultiplied by Strength.
func (l *Light) GetColorFloat() []float32 {
	s := l.Strength()
	return []float32{
		float32(l.Color.R) / 255.0 * s,
		float32(l.Color.G) / 255.0 * s,
		float32(l.Color.B) / 255.0 * s,
		1.0,
	}
}
