package world

import (
	"arbowling/internal/components"
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Directional light contributes this share of a neutral scene's brightness,
// ambient light the rest.
const directionalShare = 0.6

// Background stands in for the camera passthrough.
var Background = rl.Color{R: 46, G: 52, B: 64, A: 255}

type Renderer struct {
	Aspect     float32
	cullRadius float32
	drawn      int
}

func NewRenderer() *Renderer {
	return &Renderer{Aspect: 16.0 / 9.0, cullRadius: 1.0}
}

// LightFactor combines the lane's lights into a brightness multiplier where
// neutral lighting gives 1.0.
func LightFactor(ambient, directional *components.Light) float32 {
	factor := float32(0)
	if ambient != nil {
		factor += ambient.Strength()
	}
	if directional != nil {
		factor += directional.Strength() * directionalShare
	}
	if factor > 2 {
		factor = 2
	}
	return factor
}

// Draw renders every visible shape of w as seen from camera. Objects under
// the lane container are lit by the lane's lights; the rest is real-world
// stand-in geometry at neutral brightness.
func (r *Renderer) Draw(camera rl.Camera3D, w *World) {
	frustum := NewFrustum(camera, r.Aspect)

	laneFactor := float32(1)
	var container *engine.GameObject
	if lane := w.Lane(); lane != nil {
		container = lane.Container
		laneFactor = LightFactor(lane.AmbientLight, lane.DirectionalLight)
	}

	r.drawn = 0
	rl.BeginMode3D(camera)
	for _, g := range w.Scene.GameObjects {
		shape := engine.GetComponent[*components.ShapeRenderer](g)
		if shape == nil || !g.ActiveInHierarchy() {
			continue
		}
		if !frustum.ContainsSphere(g.WorldPosition(), r.boundingRadius(g, shape)) {
			continue
		}
		factor := float32(1)
		if container != nil && isDescendant(g, container) {
			factor = laneFactor
		}
		shape.Draw(factor)
		r.drawn++
	}
	rl.EndMode3D()
}

// Drawn returns how many shapes the last Draw call rendered.
func (r *Renderer) Drawn() int {
	return r.drawn
}

func (r *Renderer) boundingRadius(g *engine.GameObject, shape *components.ShapeRenderer) float32 {
	scale := g.WorldScale()
	maxScale := max(absf(scale.X), absf(scale.Y), absf(scale.Z))
	size := max(shape.Size.X, shape.Size.Y, shape.Size.Z)
	return max(size*maxScale, r.cullRadius)
}

func isDescendant(g, ancestor *engine.GameObject) bool {
	for obj := g; obj != nil; obj = obj.Parent {
		if obj == ancestor {
			return true
		}
	}
	return false
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
