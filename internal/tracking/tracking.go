package tracking

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// LightEstimate is the scene lighting measured from the camera feed.
// AmbientIntensity is in lumens; 1000 is neutral.
type LightEstimate struct {
	AmbientIntensity float32
}

// Frame is one tracking update. Camera is the camera-to-world transform;
// the camera looks down its -Z axis.
type Frame struct {
	Camera rl.Matrix
	Light  *LightEstimate
	Time   float64
}

// Position is the camera's world position.
func (f Frame) Position() rl.Vector3 {
	return rl.Vector3{X: f.Camera.M12, Y: f.Camera.M13, Z: f.Camera.M14}
}

// ZAxis is the camera transform's Z basis vector, pointing backwards.
func (f Frame) ZAxis() rl.Vector3 {
	return rl.Vector3{X: f.Camera.M8, Y: f.Camera.M9, Z: f.Camera.M10}
}

// Forward is the viewing direction.
func (f Frame) Forward() rl.Vector3 {
	return rl.Vector3Negate(f.ZAxis())
}

type HitTestType uint8

const HitFeaturePoint HitTestType = 1

type HitResult struct {
	Type           HitTestType
	WorldTransform rl.Matrix
	Distance       float32
}

// Position is the translation of the hit transform.
func (h HitResult) Position() rl.Vector3 {
	return rl.Vector3{X: h.WorldTransform.M12, Y: h.WorldTransform.M13, Z: h.WorldTransform.M14}
}

// Provider supplies camera pose, hit-tests and light estimates.
type Provider interface {
	// CurrentFrame returns false until the first tracking update.
	CurrentFrame() (Frame, bool)
	// HitTest casts from a normalized viewport point ((0,0) top left,
	// (1,1) bottom right) and returns results nearest first.
	HitTest(point rl.Vector2, types HitTestType) []HitResult
}

// SessionObserver receives tracking session lifecycle events.
type SessionObserver interface {
	SessionStarted()
	SessionPaused()
	SessionInterrupted()
	SessionInterruptionEnded()
	SessionFailed(err error)
}

// CameraTransform builds a camera-to-world matrix at position looking along
// forward. The basis is right, up, backward.
func CameraTransform(position, forward rl.Vector3) rl.Matrix {
	forward = rl.Vector3Normalize(forward)
	worldUp := rl.Vector3{Y: 1}
	if absf(rl.Vector3DotProduct(forward, worldUp)) > 0.999 {
		worldUp = rl.Vector3{Z: -1}
	}
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, worldUp))
	up := rl.Vector3CrossProduct(right, forward)
	back := rl.Vector3Negate(forward)

	return rl.Matrix{
		M0: right.X, M1: right.Y, M2: right.Z,
		M4: up.X, M5: up.Y, M6: up.Z,
		M8: back.X, M9: back.Y, M10: back.Z,
		M12: position.X, M13: position.Y, M14: position.Z,
		M15: 1,
	}
}

// Translation is a pure translation transform.
func Translation(position rl.Vector3) rl.Matrix {
	m := rl.MatrixIdentity()
	m.M12, m.M13, m.M14 = position.X, position.Y, position.Z
	return m
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
