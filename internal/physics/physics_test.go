package physics

import (
	"testing"

	"arbowling/internal/components"
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = float32(1.0 / 60.0)

type recordingDelegate struct {
	contacts []Contact
	onBegin  func(c Contact)
}

func (r *recordingDelegate) BeginContact(c Contact) {
	r.contacts = append(r.contacts, c)
	if r.onBegin != nil {
		r.onBegin(c)
	}
}

func newWorld() *PhysicsWorld {
	return NewPhysicsWorld(rl.Vector3{Y: -9.8}, zerolog.Nop())
}

func newBall(pos rl.Vector3) (*engine.GameObject, *components.Rigidbody) {
	g := engine.NewGameObject("ball")
	g.Transform.Position = pos
	rb := components.NewRigidbody()
	rb.UseGravity = false
	rb.CategoryMask = 3
	rb.ContactTestMask = 1
	g.AddComponent(rb)
	g.AddComponent(components.NewSphereCollider(0.1))
	return g, rb
}

func newPin(pos rl.Vector3) (*engine.GameObject, *components.Rigidbody) {
	g := engine.NewGameObject("pin")
	g.Transform.Position = pos
	rb := components.NewRigidbody()
	rb.UseGravity = false
	rb.ContactTestMask = 1
	g.AddComponent(rb)
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.2, Y: 0.2, Z: 0.2}))
	return g, rb
}

func newFloor() *engine.GameObject {
	g := engine.NewGameObject("floor")
	g.Transform.Position = rl.Vector3{Y: -0.5}
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 10, Y: 1, Z: 10}))
	return g
}

func run(p *PhysicsWorld, steps int) {
	for i := 0; i < steps; i++ {
		p.Update(step)
	}
}

func TestShouldReportContact(t *testing.T) {
	ball, _ := newBall(rl.Vector3{})
	pin, _ := newPin(rl.Vector3{})
	other, _ := newPin(rl.Vector3{})
	floor := newFloor()

	assert.True(t, ShouldReportContact(ball, pin))
	assert.True(t, ShouldReportContact(pin, ball))
	assert.True(t, ShouldReportContact(pin, other))
	assert.False(t, ShouldReportContact(ball, floor))
	assert.False(t, ShouldReportContact(pin, floor))
}

func TestMasksStaticDefault(t *testing.T) {
	category, contactTest := Masks(newFloor())
	assert.Equal(t, components.CategoryStatic, category)
	assert.Zero(t, contactTest)
}

func TestBallHitsPinReportsOneContact(t *testing.T) {
	p := newWorld()
	pin, pinRB := newPin(rl.Vector3{X: 0.5})
	ball, ballRB := newBall(rl.Vector3{})
	ballRB.Velocity = rl.Vector3{X: 5}
	p.AddObject(pin)
	p.AddObject(ball)

	d := &recordingDelegate{}
	p.SetContactDelegate(d)

	run(p, 30)

	require.Len(t, d.contacts, 1)
	assert.Same(t, pin, d.contacts[0].A, "older object comes first")
	assert.Same(t, ball, d.contacts[0].B)
	assert.Greater(t, pinRB.Velocity.X, float32(0), "pin should be knocked away")
	assert.Less(t, ballRB.Velocity.X, float32(5))
}

func TestPinToPinContactReported(t *testing.T) {
	p := newWorld()
	a, rbA := newPin(rl.Vector3{})
	b, _ := newPin(rl.Vector3{X: 0.5})
	rbA.Velocity = rl.Vector3{X: 3}
	p.AddObject(a)
	p.AddObject(b)

	d := &recordingDelegate{}
	p.SetContactDelegate(d)

	run(p, 30)

	require.Len(t, d.contacts, 1)
	assert.Same(t, a, d.contacts[0].A)
	assert.Same(t, b, d.contacts[0].B)
}

func TestContactNotReportedWithoutMatchingMask(t *testing.T) {
	p := newWorld()
	a, rbA := newPin(rl.Vector3{})
	b, rbB := newPin(rl.Vector3{X: 0.5})
	rbA.ContactTestMask = 0
	rbB.ContactTestMask = 0
	rbA.Velocity = rl.Vector3{X: 3}
	p.AddObject(a)
	p.AddObject(b)

	d := &recordingDelegate{}
	p.SetContactDelegate(d)

	run(p, 30)

	assert.Empty(t, d.contacts)
}

type enterCounter struct {
	engine.BaseComponent
	entered, exited int
}

func (e *enterCounter) OnCollisionEnter(other *engine.GameObject) { e.entered++ }
func (e *enterCounter) OnCollisionExit(other *engine.GameObject)  { e.exited++ }

func TestCollisionHandlersStillNotified(t *testing.T) {
	p := newWorld()
	a, rbA := newPin(rl.Vector3{})
	b, _ := newPin(rl.Vector3{X: 0.5})
	counter := &enterCounter{}
	a.AddComponent(counter)
	rbA.Velocity = rl.Vector3{X: 3}
	p.AddObject(a)
	p.AddObject(b)

	run(p, 60)

	assert.Equal(t, 1, counter.entered)
	assert.Equal(t, 1, counter.exited)
}

func TestBallOnFloorNotReported(t *testing.T) {
	p := newWorld()
	p.AddObject(newFloor())
	ball, ballRB := newBall(rl.Vector3{Y: 0.5})
	ballRB.UseGravity = true
	p.AddObject(ball)

	d := &recordingDelegate{}
	p.SetContactDelegate(d)

	run(p, 120)

	assert.Empty(t, d.contacts)
	assert.InDelta(t, 0.1, ball.WorldPosition().Y, 0.05, "ball should rest on the floor")
}

func TestBoxComesToRestOnFloor(t *testing.T) {
	p := newWorld()
	p.AddObject(newFloor())
	box, rb := newPin(rl.Vector3{Y: 0.2})
	rb.UseGravity = true
	p.AddObject(box)

	run(p, 180)

	assert.True(t, rb.IsSleeping)
	assert.InDelta(t, 0.1, box.WorldPosition().Y, 0.02)
}

func TestInactiveHierarchySkipped(t *testing.T) {
	p := newWorld()
	container := engine.NewGameObject("lane")
	container.Active = false
	pin, _ := newPin(rl.Vector3{X: 0.5})
	container.AddChild(pin)
	ball, ballRB := newBall(rl.Vector3{})
	ballRB.Velocity = rl.Vector3{X: 5}
	p.AddObject(container)
	p.AddObject(ball)

	d := &recordingDelegate{}
	p.SetContactDelegate(d)
	run(p, 30)
	assert.Empty(t, d.contacts, "hidden pins take no part")

	container.Active = true
	ball.Transform.Position = rl.Vector3{}
	ballRB.Velocity = rl.Vector3{X: 5}
	run(p, 30)
	assert.Len(t, d.contacts, 1)
}

func TestRemoveObjectDuringDelegate(t *testing.T) {
	p := newWorld()
	pin, _ := newPin(rl.Vector3{X: 0.5})
	ball, ballRB := newBall(rl.Vector3{})
	ballRB.Velocity = rl.Vector3{X: 5}
	p.AddObject(pin)
	p.AddObject(ball)

	d := &recordingDelegate{}
	d.onBegin = func(c Contact) {
		p.RemoveObject(c.A)
		c.A.MarkDestroyed()
	}
	p.SetContactDelegate(d)

	run(p, 30)

	assert.Len(t, d.contacts, 1)
	assert.Equal(t, 1, p.DynamicObjectCount())
	assert.Greater(t, ball.WorldPosition().X, float32(0.5), "ball continues through the removed pin")
}

func TestChildBodyMovesInWorldSpace(t *testing.T) {
	p := newWorld()
	parent := engine.NewGameObject("parent")
	parent.Transform.Position = rl.Vector3{X: 10}
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	ball, rb := newBall(rl.Vector3{})
	parent.AddChild(ball)
	rb.Velocity = rl.Vector3{Z: 6}
	p.AddObject(parent)

	p.Update(0.5)

	assert.InDelta(t, 10, ball.WorldPosition().X, 1e-4)
	assert.InDelta(t, 3, ball.WorldPosition().Z, 1e-4)
	assert.InDelta(t, 1.5, ball.Transform.Position.Z, 1e-4)
}

func TestRaycastMask(t *testing.T) {
	p := newWorld()
	floor := newFloor()
	p.AddObject(floor)

	hit, ok := p.Raycast(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 100, components.CategoryStatic)
	require.True(t, ok)
	assert.Same(t, floor, hit.GameObject)
	assert.InDelta(t, 5, hit.Distance, 1e-4)
	assert.InDelta(t, 0, hit.Point.Y, 1e-4)
	assert.InDelta(t, 1, hit.Normal.Y, 1e-4)

	_, ok = p.Raycast(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 100, components.CategoryDefault)
	assert.False(t, ok)

	_, ok = p.Raycast(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 2, components.CategoryAll)
	assert.False(t, ok, "floor is beyond max distance")
}

func TestRaycastPicksClosest(t *testing.T) {
	p := newWorld()
	near, _ := newBall(rl.Vector3{Z: -2})
	far, _ := newBall(rl.Vector3{Z: -4})
	p.AddObject(far)
	p.AddObject(near)

	hit, ok := p.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 10, components.CategoryAll)
	require.True(t, ok)
	assert.Same(t, near, hit.GameObject)
	assert.InDelta(t, 1.9, hit.Distance, 1e-4)
}

func TestOBBRotatedSeparation(t *testing.T) {
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})
	b := NewOBB(rl.Vector3{X: 1.1}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})
	assert.False(t, a.IntersectsOBB(b))

	// Rotating b by 45 degrees brings its corner into a
	b = NewOBB(rl.Vector3{X: 1.1}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{Y: 45})
	assert.True(t, a.IntersectsOBB(b))
}

func TestOBBResolvePushesApart(t *testing.T) {
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})
	b := NewOBB(rl.Vector3{X: 0.8}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})

	mtv := a.ResolveOBB(b)

	assert.InDelta(t, -0.2, mtv.X, 1e-4)
	assert.InDelta(t, 0, mtv.Y, 1e-4)
	assert.InDelta(t, 0, mtv.Z, 1e-4)
}

func TestClosestPointOnOBB(t *testing.T) {
	o := NewOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{})
	p := ClosestPointOnOBB(o, rl.Vector3{X: 5, Y: 0.5, Z: -3})
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 0.5, p.Y, 1e-5)
	assert.InDelta(t, -1, p.Z, 1e-5)
	assert.True(t, o.IntersectsSphere(rl.Vector3{X: 1.5}, 0.6))
	assert.False(t, o.IntersectsSphere(rl.Vector3{X: 1.5}, 0.4))
}

func TestRaycastStaticIgnoresBodies(t *testing.T) {
	p := newWorld()
	floor := newFloor()
	ball, _ := newBall(rl.Vector3{Y: 1})
	p.AddObject(floor)
	p.AddObject(ball)

	hit, ok := p.RaycastStatic(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 100)
	require.True(t, ok)
	assert.Same(t, floor, hit.GameObject)

	hit, ok = p.Raycast(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 100, components.CategoryAll)
	require.True(t, ok)
	assert.Same(t, ball, hit.GameObject)
}
