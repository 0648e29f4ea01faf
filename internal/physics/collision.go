package physics

import (
	"arbowling/internal/components"
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Contacts slower than this along an upward normal are treated as resting
	restingSpeed = 0.5

	sphereTorqueScale = 50.0
	boxTorqueScale    = 500.0
)

// penetrate returns the contact normal pointing from b towards a and the
// penetration depth. ok is false when the colliders do not overlap.
func penetrate(a, b *engine.GameObject) (normal rl.Vector3, depth float32, ok bool) {
	sphereA := engine.GetComponent[*components.SphereCollider](a)
	sphereB := engine.GetComponent[*components.SphereCollider](b)
	boxA := engine.GetComponent[*components.BoxCollider](a)
	boxB := engine.GetComponent[*components.BoxCollider](b)

	switch {
	case sphereA != nil && sphereB != nil:
		diff := rl.Vector3Subtract(sphereA.GetCenter(), sphereB.GetCenter())
		dist := rl.Vector3Length(diff)
		minDist := sphereA.Radius + sphereB.Radius
		if dist >= minDist || dist < 0.0001 {
			return rl.Vector3{}, 0, false
		}
		return rl.Vector3Scale(diff, 1/dist), minDist - dist, true

	case sphereA != nil && boxB != nil:
		return sphereBox(sphereA, boxOBB(b, boxB))

	case boxA != nil && sphereB != nil:
		n, d, hit := sphereBox(sphereB, boxOBB(a, boxA))
		return rl.Vector3Negate(n), d, hit

	case boxA != nil && boxB != nil:
		pushOut := boxOBB(a, boxA).ResolveOBB(boxOBB(b, boxB))
		length := rl.Vector3Length(pushOut)
		if length < 0.0001 {
			return rl.Vector3{}, 0, false
		}
		return rl.Vector3Scale(pushOut, 1/length), length, true
	}
	return rl.Vector3{}, 0, false
}

// sphereBox returns the normal from the box towards the sphere center
func sphereBox(sphere *components.SphereCollider, obb OBB) (rl.Vector3, float32, bool) {
	center := sphere.GetCenter()
	closest := ClosestPointOnOBB(obb, center)
	diff := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(diff)
	if dist >= sphere.Radius || dist < 0.0001 {
		return rl.Vector3{}, 0, false
	}
	return rl.Vector3Scale(diff, 1/dist), sphere.Radius - dist, true
}

func boxOBB(g *engine.GameObject, box *components.BoxCollider) OBB {
	return NewOBBFromBox(box.GetCenter(), box.Size, g.WorldRotation(), g.WorldScale())
}

// contactArm estimates the lever arm from g's center to the contact point
// on the side facing -normal
func contactArm(g *engine.GameObject, normal rl.Vector3) (rl.Vector3, float32) {
	if sphere := engine.GetComponent[*components.SphereCollider](g); sphere != nil {
		return rl.Vector3Scale(normal, -sphere.Radius), sphereTorqueScale
	}
	if box := engine.GetComponent[*components.BoxCollider](g); box != nil {
		size := box.GetWorldSize()
		return rl.Vector3{
			X: -normal.X * absf(size.X) / 2,
			Y: -normal.Y * absf(size.Y) / 2,
			Z: -normal.Z * absf(size.Z) / 2,
		}, boxTorqueScale
	}
	return rl.Vector3{}, 0
}

func applySpin(g *engine.GameObject, rb *components.Rigidbody, normal, impulse rl.Vector3) {
	arm, scale := contactArm(g, normal)
	torque := rl.Vector3CrossProduct(arm, impulse)
	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity, rl.Vector3Scale(torque, scale/rb.Mass))
}

// resolveCollision handles collision between two dynamic rigidbodies
func (p *PhysicsWorld) resolveCollision(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}

	// Skip if both objects are sleeping
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	normal, depth, ok := penetrate(a, b)
	if !ok {
		return
	}

	p.recordCollision(a, b)

	// Split the push based on mass ratio
	totalMass := rbA.Mass + rbB.Mass
	translate(a, rl.Vector3Scale(normal, depth*rbB.Mass/totalMass))
	translate(b, rl.Vector3Scale(normal, -depth*rbA.Mass/totalMass))

	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)

	// Only resolve if objects are moving toward each other
	if velAlongNormal > 0 {
		return
	}

	e := (rbA.Bounciness + rbB.Bounciness) / 2
	j := -(1 + e) * velAlongNormal
	j /= 1/rbA.Mass + 1/rbB.Mass

	impulse := rl.Vector3Scale(normal, j)
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))

	applySpin(a, rbA, normal, impulse)
	applySpin(b, rbB, rl.Vector3Negate(normal), rl.Vector3Negate(impulse))
}

// resolveKinematicCollision lets a kinematic body shove dynamic ones
func (p *PhysicsWorld) resolveKinematicCollision(kinematic, obj *engine.GameObject) {
	rbKin := engine.GetComponent[*components.Rigidbody](kinematic)
	rbObj := engine.GetComponent[*components.Rigidbody](obj)
	if rbKin == nil || rbObj == nil {
		return
	}

	normal, depth, ok := penetrate(obj, kinematic)
	if !ok {
		return
	}

	p.recordCollision(kinematic, obj)

	// Push the dynamic object fully out (kinematic doesn't move)
	translate(obj, rl.Vector3Scale(normal, depth))

	kinVelAlongNormal := rl.Vector3DotProduct(rbKin.Velocity, normal)
	if kinVelAlongNormal > 0 {
		rbObj.Velocity = rl.Vector3Add(rbObj.Velocity, rl.Vector3Scale(normal, kinVelAlongNormal*1.5))
		rbObj.Wake()
	}
}

// resolveStaticCollision handles dynamic object colliding with static object
func (p *PhysicsWorld) resolveStaticCollision(obj, static *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](obj)
	if rb == nil || rb.IsSleeping {
		return
	}

	normal, depth, ok := penetrate(obj, static)
	if !ok {
		return
	}

	p.recordCollision(obj, static)

	// Static doesn't move
	translate(obj, rl.Vector3Scale(normal, depth))

	velAlongNormal := rl.Vector3DotProduct(rb.Velocity, normal)
	if velAlongNormal >= 0 {
		return
	}

	if normal.Y > 0.5 && -velAlongNormal < restingSpeed {
		// Resting on a surface: cancel the normal component instead of bouncing
		rb.Velocity = rl.Vector3Subtract(rb.Velocity, rl.Vector3Scale(normal, velAlongNormal))
		rb.Velocity.X *= 1 - rb.Friction
		rb.Velocity.Z *= 1 - rb.Friction
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, 1-rb.Friction*0.5)
		p.supported[obj] = true
		return
	}

	// Reflect and apply bounciness
	reflect := rl.Vector3Scale(normal, -(1+rb.Bounciness)*velAlongNormal)
	rb.Velocity = rl.Vector3Add(rb.Velocity, reflect)

	// Friction perpendicular to normal
	rb.Velocity.X *= 1 - rb.Friction
	rb.Velocity.Z *= 1 - rb.Friction

	applySpin(obj, rb, normal, reflect)

	if normal.Y > 0.5 {
		rb.AngularVelocity.X *= 1 - rb.Friction*0.5
		rb.AngularVelocity.Z *= 1 - rb.Friction*0.5
	}
}
