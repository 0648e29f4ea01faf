package components

import (
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("BoxCollider", func(decode engine.DecodeFunc) (engine.Component, error) {
		var def struct {
			Size   [3]float32 `yaml:"size"`
			Offset [3]float32 `yaml:"offset"`
		}
		if err := decode(&def); err != nil {
			return nil, err
		}
		b := NewBoxCollider(vec3(def.Size))
		b.Offset = vec3(def.Offset)
		return b, nil
	})
}

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), b.Offset)
}

// GetWorldSize returns the collider size scaled by the object's world scale
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	scale := b.GetGameObject().WorldScale()
	return rl.Vector3{
		X: b.Size.X * scale.X,
		Y: b.Size.Y * scale.Y,
		Z: b.Size.Z * scale.Z,
	}
}
