package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// Near and far clip distances used for culling
const (
	CullNear float32 = 0.05
	CullFar  float32 = 100.0
)

// NewFrustum extracts the planes of camera's view volume for the given
// viewport aspect ratio (Gribb/Hartmann).
func NewFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, CullNear, CullFar)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, CullNear, CullFar)
	}

	// Combine view and projection: VP = P * V
	vp := rl.MatrixMultiply(view, proj)

	rows := [4][4]float32{
		{vp.M0, vp.M4, vp.M8, vp.M12},
		{vp.M1, vp.M5, vp.M9, vp.M13},
		{vp.M2, vp.M6, vp.M10, vp.M14},
		{vp.M3, vp.M7, vp.M11, vp.M15},
	}

	var f Frustum
	// Each plane is row4 plus or minus one of the first three rows
	for i := 0; i < 3; i++ {
		for j, sign := range [2]float32{1, -1} {
			f.planes[i*2+j] = normalizePlane(Plane{
				normal: rl.Vector3{
					X: rows[3][0] + sign*rows[i][0],
					Y: rows[3][1] + sign*rows[i][1],
					Z: rows[3][2] + sign*rows[i][2],
				},
				distance: rows[3][3] + sign*rows[i][3],
			})
		}
	}
	return f
}

// normalizePlane normalizes a plane equation
func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
// Returns true if the sphere should be rendered
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		// Distance from center to plane
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		// If sphere is completely behind any plane, it's outside
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, point) + f.planes[i].distance
		if dist < 0 {
			return false
		}
	}
	return true
}
