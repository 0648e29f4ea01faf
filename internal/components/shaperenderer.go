package components

import (
	"fmt"

	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("ShapeRenderer", func(decode engine.DecodeFunc) (engine.Component, error) {
		var def struct {
			Shape     string     `yaml:"shape"`
			Size      [3]float32 `yaml:"size"`
			Color     string     `yaml:"color"`
			Emission  string     `yaml:"emission"`
			Metalness float32    `yaml:"metalness"`
		}
		if err := decode(&def); err != nil {
			return nil, err
		}
		shape, ok := shapeByName[def.Shape]
		if !ok {
			return nil, fmt.Errorf("unknown shape %q", def.Shape)
		}
		r := NewShapeRenderer(shape, vec3(def.Size), LookupColor(def.Color))
		if def.Emission != "" {
			r.Emission = LookupColor(def.Emission)
		}
		r.Metalness = def.Metalness
		return r, nil
	})
}

type Shape int

const (
	ShapeSphere  Shape = iota // Size.X = radius
	ShapeCapsule              // Size.X = radius, Size.Y = height
	ShapeBox                  // Size = extents
	ShapePlane                // Size.X by Size.Z on the XZ plane
	ShapeRing                 // Size.X = radius, lies flat on the XZ plane
)

var shapeByName = map[string]Shape{
	"sphere":  ShapeSphere,
	"capsule": ShapeCapsule,
	"box":     ShapeBox,
	"plane":   ShapePlane,
	"ring":    ShapeRing,
}

// ShapeRenderer draws a primitive with a flat material.
type ShapeRenderer struct {
	engine.BaseComponent
	Shape     Shape
	Size      rl.Vector3
	Color     rl.Color
	Emission  rl.Color
	Metalness float32
}

func NewShapeRenderer(shape Shape, size rl.Vector3, color rl.Color) *ShapeRenderer {
	return &ShapeRenderer{
		Shape:    shape,
		Size:     size,
		Color:    color,
		Emission: rl.Blank,
	}
}

// Shade scales base by the light factor and adds the emission color.
func Shade(base, emission rl.Color, factor float32) rl.Color {
	channel := func(b, e uint8) uint8 {
		v := float32(b)*factor + float32(e)*0.5
		if v > 255 {
			return 255
		}
		if v < 0 {
			return 0
		}
		return uint8(v)
	}
	return rl.Color{
		R: channel(base.R, emission.R),
		G: channel(base.G, emission.G),
		B: channel(base.B, emission.B),
		A: base.A,
	}
}

// Draw renders the shape at the object's world transform. lightFactor is the
// combined strength of the lights affecting it.
func (s *ShapeRenderer) Draw(lightFactor float32) {
	g := s.GetGameObject()
	if g == nil || !g.ActiveInHierarchy() {
		return
	}

	pos := g.WorldPosition()
	rot := g.WorldRotation()
	scale := g.WorldScale()
	color := Shade(s.Color, s.Emission, lightFactor)

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(rot.Z, 0, 0, 1)
	rl.Rotatef(rot.Y, 0, 1, 0)
	rl.Rotatef(rot.X, 1, 0, 0)
	rl.Scalef(scale.X, scale.Y, scale.Z)

	origin := rl.Vector3Zero()
	switch s.Shape {
	case ShapeSphere:
		rl.DrawSphere(origin, s.Size.X, color)
	case ShapeCapsule:
		half := s.Size.Y/2 - s.Size.X
		if half < 0 {
			half = 0
		}
		rl.DrawCapsule(rl.Vector3{Y: -half}, rl.Vector3{Y: half}, s.Size.X, 12, 6, color)
	case ShapeBox:
		rl.DrawCube(origin, s.Size.X, s.Size.Y, s.Size.Z, color)
		rl.DrawCubeWires(origin, s.Size.X, s.Size.Y, s.Size.Z, rl.Fade(rl.Black, 0.2))
	case ShapePlane:
		rl.DrawPlane(origin, rl.Vector2{X: s.Size.X, Y: s.Size.Z}, color)
	case ShapeRing:
		rl.DrawCircle3D(origin, s.Size.X, rl.Vector3{X: 1}, 90, color)
		rl.DrawCircle3D(origin, s.Size.X*0.6, rl.Vector3{X: 1}, 90, color)
	}

	rl.PopMatrix()
}
