package engine

import (
	"math"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
	destroyed  bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// FindComponent is GetComponent for interface types that need not embed Component.
func FindComponent[T any](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.ActiveInHierarchy() {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ActiveInHierarchy reports whether g and all of its ancestors are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for obj := g; obj != nil; obj = obj.Parent {
		if !obj.Active {
			return false
		}
	}
	return true
}

// Destroyed reports whether the object was removed from its scene for good.
func (g *GameObject) Destroyed() bool {
	return g.destroyed
}

// MarkDestroyed flags g and its descendants as destroyed.
func (g *GameObject) MarkDestroyed() {
	g.destroyed = true
	for _, c := range g.Children {
		c.MarkDestroyed()
	}
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// ChildrenWithTag returns the direct children carrying tag.
func (g *GameObject) ChildrenWithTag(tag string) []*GameObject {
	var result []*GameObject
	for _, c := range g.Children {
		if c.HasTag(tag) {
			result = append(result, c)
		}
	}
	return result
}

// FindChild returns the direct child with the given name.
func (g *GameObject) FindChild(name string) *GameObject {
	for _, c := range g.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (g *GameObject) rotationMatrix() rl.Matrix {
	rot := g.WorldRotation()
	// Same convention as the renderer: X then Y then Z
	rotX := rl.MatrixRotateX(float32(float64(rot.X) * math.Pi / 180))
	rotY := rl.MatrixRotateY(float32(float64(rot.Y) * math.Pi / 180))
	rotZ := rl.MatrixRotateZ(float32(float64(rot.Z) * math.Pi / 180))
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentScale := g.Parent.WorldScale()

	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}

	rotated := rl.Vector3Transform(scaled, g.Parent.rotationMatrix())
	return rl.Vector3Add(parentPos, rotated)
}

// SetWorldPosition moves g so that WorldPosition returns pos.
func (g *GameObject) SetWorldPosition(pos rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = pos
		return
	}
	local := rl.Vector3Subtract(pos, g.Parent.WorldPosition())
	local = rl.Vector3Transform(local, rl.MatrixInvert(g.Parent.rotationMatrix()))

	scale := g.Parent.WorldScale()
	if scale.X != 0 {
		local.X /= scale.X
	}
	if scale.Y != 0 {
		local.Y /= scale.Y
	}
	if scale.Z != 0 {
		local.Z /= scale.Z
	}
	g.Transform.Position = local
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}
