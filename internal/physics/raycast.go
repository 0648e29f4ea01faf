package physics

import (
	"math"

	"arbowling/internal/components"
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	GameObject *engine.GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast returns the closest active collider along the ray whose category
// overlaps mask. Pass components.CategoryAll to test everything.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, mask uint32) (RaycastHit, bool) {
	return raycast([][]*engine.GameObject{p.Objects, p.Kinematics, p.Statics}, origin, direction, maxDistance, mask)
}

// RaycastStatic only tests bodies without a rigidbody.
func (p *PhysicsWorld) RaycastStatic(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	return raycast([][]*engine.GameObject{p.Statics}, origin, direction, maxDistance, components.CategoryAll)
}

func raycast(lists [][]*engine.GameObject, origin, direction rl.Vector3, maxDistance float32, mask uint32) (RaycastHit, bool) {
	if rl.Vector3Length(direction) < 0.0001 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	closest := RaycastHit{Distance: maxDistance}
	hit := false

	for _, list := range lists {
		for _, obj := range list {
			if !obj.ActiveInHierarchy() {
				continue
			}
			if category, _ := Masks(obj); category&mask == 0 {
				continue
			}
			if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
				if h, ok := raycastOBB(origin, direction, boxOBB(obj, box), closest.Distance); ok {
					h.GameObject = obj
					closest, hit = h, true
				}
			}
			if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
				if h, ok := raycastSphere(origin, direction, sphere.GetCenter(), sphere.Radius, closest.Distance); ok {
					h.GameObject = obj
					closest, hit = h, true
				}
			}
		}
	}
	return closest, hit
}

// raycastOBB runs the slab test in the box's local frame
func raycastOBB(origin, direction rl.Vector3, o OBB, maxDistance float32) (RaycastHit, bool) {
	localOrigin := o.toLocal(origin)
	localDir := rl.Vector3{
		X: rl.Vector3DotProduct(direction, o.Axes[0]),
		Y: rl.Vector3DotProduct(direction, o.Axes[1]),
		Z: rl.Vector3DotProduct(direction, o.Axes[2]),
	}
	originC := [3]float32{localOrigin.X, localOrigin.Y, localOrigin.Z}
	dirC := [3]float32{localDir.X, localDir.Y, localDir.Z}
	half := [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z}

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)
	enterAxis, enterSign := 0, float32(-1)

	for i := 0; i < 3; i++ {
		if dirC[i] == 0 {
			if originC[i] < -half[i] || originC[i] > half[i] {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (-half[i] - originC[i]) / dirC[i]
		t2 := (half[i] - originC[i]) / dirC[i]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis, enterSign = i, sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	// Origin inside the box: report the exit point
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   rl.Vector3Scale(o.Axes[enterAxis], enterSign),
		Distance: t,
	}, true
}

func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	b := rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))
	t := -b - sqrtD
	if t < 0 {
		t = -b + sqrtD
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return RaycastHit{
		Point:    point,
		Normal:   rl.Vector3Normalize(rl.Vector3Subtract(point, center)),
		Distance: t,
	}, true
}
