package components

import (
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("SphereCollider", func(decode engine.DecodeFunc) (engine.Component, error) {
		var def struct {
			Radius float32    `yaml:"radius"`
			Offset [3]float32 `yaml:"offset"`
		}
		if err := decode(&def); err != nil {
			return nil, err
		}
		s := NewSphereCollider(def.Radius)
		s.Offset = vec3(def.Offset)
		return s, nil
	})
}

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), s.Offset)
}
