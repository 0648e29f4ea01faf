package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, size, and euler rotation in degrees,
// applied X then Y then Z like the scene graph.
func NewOBB(center, size, rotation rl.Vector3) OBB {
	rot := rl.MatrixMultiply(
		rl.MatrixMultiply(
			rl.MatrixRotateX(degToRad(rotation.X)),
			rl.MatrixRotateY(degToRad(rotation.Y)),
		),
		rl.MatrixRotateZ(degToRad(rotation.Z)),
	)

	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: absf(size.X) / 2, Y: absf(size.Y) / 2, Z: absf(size.Z) / 2},
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3{X: rot.M0, Y: rot.M1, Z: rot.M2}),
			rl.Vector3Normalize(rl.Vector3{X: rot.M4, Y: rot.M5, Z: rot.M6}),
			rl.Vector3Normalize(rl.Vector3{X: rot.M8, Y: rot.M9, Z: rot.M10}),
		},
	}
}

// NewOBBFromBox creates an OBB from a box collider's local size and the
// owning object's world rotation and scale.
func NewOBBFromBox(center, size, rotation, scale rl.Vector3) OBB {
	return NewOBB(center, rl.Vector3{
		X: size.X * scale.X,
		Y: size.Y * scale.Y,
		Z: size.Z * scale.Z,
	}, rotation)
}

// projectedRadius is the half-length of o's shadow on axis
func (o OBB) projectedRadius(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// separatingAxes returns the 15 SAT candidate axes: both boxes' face
// normals plus the non-degenerate edge cross products.
func separatingAxes(a, b OBB) []rl.Vector3 {
	axes := make([]rl.Vector3, 0, 15)
	axes = append(axes, a.Axes[:]...)
	axes = append(axes, b.Axes[:]...)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			// Parallel edges
			if rl.Vector3Length(axis) < 0.0001 {
				continue
			}
			axes = append(axes, rl.Vector3Normalize(axis))
		}
	}
	return axes
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	t := rl.Vector3Subtract(b.Center, a.Center)
	for _, axis := range separatingAxes(a, b) {
		if absf(rl.Vector3DotProduct(t, axis)) > a.projectedRadius(axis)+b.projectedRadius(axis) {
			return false
		}
	}
	return true
}

// ResolveOBB returns the minimum translation vector that pushes a out of b,
// or the zero vector when they do not overlap.
func (a OBB) ResolveOBB(b OBB) rl.Vector3 {
	t := rl.Vector3Subtract(b.Center, a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv rl.Vector3

	for _, axis := range separatingAxes(a, b) {
		dist := rl.Vector3DotProduct(t, axis)
		penetration := a.projectedRadius(axis) + b.projectedRadius(axis) - absf(dist)
		if penetration <= 0 {
			return rl.Vector3Zero()
		}
		if penetration < minPenetration {
			minPenetration = penetration
			// Push away from b
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, penetration)
			} else {
				mtv = rl.Vector3Scale(axis, -penetration)
			}
		}
	}
	return mtv
}

// toLocal expresses point in o's axes relative to its center
func (o OBB) toLocal(point rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(point, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	closest := ClosestPointOnOBB(o, center)
	d := rl.Vector3Subtract(center, closest)
	return rl.Vector3DotProduct(d, d) <= radius*radius
}

// ClosestPointOnOBB returns the point of o nearest to point
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	local := o.toLocal(point)
	result := o.Center
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[0], clampf(local.X, -o.HalfSize.X, o.HalfSize.X)))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], clampf(local.Y, -o.HalfSize.Y, o.HalfSize.Y)))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], clampf(local.Z, -o.HalfSize.Z, o.HalfSize.Z)))
	return result
}

func degToRad(deg float32) float32 {
	return float32(float64(deg) * math.Pi / 180)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
