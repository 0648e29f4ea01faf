package physics

import (
	"arbowling/internal/components"
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 1.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(pos.X / CellSize),
		Y: int(pos.Y / CellSize),
		Z: int(pos.Z / CellSize),
	}
}

// CollisionPair represents two objects that are colliding
type CollisionPair struct {
	A, B *engine.GameObject
}

// makePair creates a consistent collision pair (older object first)
func makePair(a, b *engine.GameObject) CollisionPair {
	if a.UID > b.UID {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

type PhysicsWorld struct {
	Gravity    rl.Vector3
	Objects    []*engine.GameObject // dynamic rigidbodies
	Kinematics []*engine.GameObject // kinematic rigidbodies
	Statics    []*engine.GameObject // no rigidbody (floor, tables)
	grid       map[CellKey][]*engine.GameObject

	// Collision tracking for callbacks
	activeCollisions  map[CollisionPair]bool // collisions from last step
	currentCollisions map[CollisionPair]bool // collisions this step
	currentOrder      []CollisionPair        // this step's pairs in detection order

	// Bodies resting on a static surface; gravity is balanced by the normal force
	supported map[*engine.GameObject]bool

	delegate ContactDelegate
	log      zerolog.Logger
}

func NewPhysicsWorld(gravity rl.Vector3, log zerolog.Logger) *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:           gravity,
		Objects:           make([]*engine.GameObject, 0),
		Kinematics:        make([]*engine.GameObject, 0),
		Statics:           make([]*engine.GameObject, 0),
		grid:              make(map[CellKey][]*engine.GameObject),
		activeCollisions:  make(map[CollisionPair]bool),
		currentCollisions: make(map[CollisionPair]bool),
		supported:         make(map[*engine.GameObject]bool),
		log:               log.With().Str("component", "physics").Logger(),
	}
}

// SetContactDelegate installs the receiver of contact-begin notifications.
// Pass nil to stop delivery.
func (p *PhysicsWorld) SetContactDelegate(d ContactDelegate) {
	p.delegate = d
}

// AddObject registers g and every descendant that has a collider.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	if hasCollider(g) {
		rb := engine.GetComponent[*components.Rigidbody](g)
		if rb == nil {
			p.Statics = append(p.Statics, g)
		} else if rb.IsKinematic {
			p.Kinematics = append(p.Kinematics, g)
		} else {
			p.Objects = append(p.Objects, g)
		}
	}
	for _, child := range g.Children {
		p.AddObject(child)
	}
}

// RemoveObject unregisters g and its descendants. Pending collision state
// for them is dropped without exit callbacks.
func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	for _, child := range g.Children {
		p.RemoveObject(child)
	}
	p.Objects = removeFrom(p.Objects, g)
	p.Kinematics = removeFrom(p.Kinematics, g)
	p.Statics = removeFrom(p.Statics, g)
	delete(p.supported, g)

	for pair := range p.activeCollisions {
		if pair.A == g || pair.B == g {
			delete(p.activeCollisions, pair)
		}
	}
}

func removeFrom(list []*engine.GameObject, g *engine.GameObject) []*engine.GameObject {
	for i, obj := range list {
		if obj == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func hasCollider(g *engine.GameObject) bool {
	return engine.GetComponent[*components.BoxCollider](g) != nil ||
		engine.GetComponent[*components.SphereCollider](g) != nil
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *PhysicsWorld) DynamicObjectCount() int {
	return len(p.Objects)
}

func active(list []*engine.GameObject) []*engine.GameObject {
	result := make([]*engine.GameObject, 0, len(list))
	for _, obj := range list {
		if obj.ActiveInHierarchy() {
			result = append(result, obj)
		}
	}
	return result
}

// Update advances the simulation by deltaTime and delivers collision callbacks.
func (p *PhysicsWorld) Update(deltaTime float32) {
	p.currentCollisions = make(map[CollisionPair]bool)
	p.currentOrder = p.currentOrder[:0]
	supported := p.supported
	p.supported = make(map[*engine.GameObject]bool)

	// Hidden subtrees take no part in the simulation
	dynamics := active(p.Objects)
	kinematics := active(p.Kinematics)
	statics := active(p.Statics)

	// 1. Apply gravity and integrate velocity
	for _, obj := range dynamics {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsSleeping {
			continue
		}

		if rb.UseGravity && !supported[obj] {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.Gravity, deltaTime))
		} else if supported[obj] && rl.Vector3Length(rb.Velocity) < components.SleepVelocityThreshold {
			// Still at rest, let it settle into sleep
			p.supported[obj] = true
		}

		translate(obj, rl.Vector3Scale(rb.Velocity, deltaTime))

		obj.Transform.Rotation = rl.Vector3Add(
			obj.Transform.Rotation,
			rl.Vector3Scale(rb.AngularVelocity, deltaTime),
		)

		// Time-based so it's framerate independent
		damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)

		rb.TrySleep(deltaTime)
	}

	// 2. Broad-phase: spatial hashing
	p.rebuildGrid(dynamics)
	checked := make(map[[2]uint64]bool)
	for _, obj := range dynamics {
		for _, other := range p.getNeighborObjects(obj) {
			if obj == other {
				continue
			}
			key := [2]uint64{obj.UID, other.UID}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if checked[key] {
				continue
			}
			checked[key] = true
			p.resolveCollision(obj, other)
		}
	}

	// 3. Kinematic vs dynamic
	for _, kinematic := range kinematics {
		for _, obj := range dynamics {
			p.resolveKinematicCollision(kinematic, obj)
		}
	}

	// 4. Dynamic vs static
	for _, obj := range dynamics {
		for _, static := range statics {
			p.resolveStaticCollision(obj, static)
		}
	}

	// 5. Dispatch collision callbacks
	p.dispatchCollisionCallbacks()
}

// rebuildGrid clears and repopulates the spatial hash grid
func (p *PhysicsWorld) rebuildGrid(dynamics []*engine.GameObject) {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range dynamics {
		cell := posToCell(obj.WorldPosition())
		p.grid[cell] = append(p.grid[cell], obj)
	}
}

// getNeighborObjects returns all objects in same cell and 26 neighboring cells
func (p *PhysicsWorld) getNeighborObjects(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.WorldPosition())
	var neighbors []*engine.GameObject
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				neighbors = append(neighbors, p.grid[key]...)
			}
		}
	}
	return neighbors
}

// recordCollision marks a collision pair as active this step and wakes sleeping objects
func (p *PhysicsWorld) recordCollision(a, b *engine.GameObject) {
	pair := makePair(a, b)
	if !p.currentCollisions[pair] {
		p.currentCollisions[pair] = true
		p.currentOrder = append(p.currentOrder, pair)
	}

	// Only wake on significant relative velocity so settled pins stay put
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}
	relSpeed := rl.Vector3Length(rl.Vector3Subtract(rbA.Velocity, rbB.Velocity))
	if relSpeed > components.SleepVelocityThreshold*2.0 {
		rbA.Wake()
		rbB.Wake()
	}
}

// dispatchCollisionCallbacks sends OnCollisionEnter/Exit to handlers and
// contact-begin to the delegate
func (p *PhysicsWorld) dispatchCollisionCallbacks() {
	var begun []CollisionPair
	for _, pair := range p.currentOrder {
		if !p.activeCollisions[pair] {
			begun = append(begun, pair)
		}
	}

	var ended []CollisionPair
	for pair := range p.activeCollisions {
		if !p.currentCollisions[pair] {
			ended = append(ended, pair)
		}
	}

	// Swap buffers before callbacks so they can safely add or remove bodies
	p.activeCollisions = p.currentCollisions

	for _, pair := range begun {
		if pair.A.Destroyed() || pair.B.Destroyed() {
			continue
		}
		notifyCollisionEnter(pair.A, pair.B)
		notifyCollisionEnter(pair.B, pair.A)

		if p.delegate != nil && ShouldReportContact(pair.A, pair.B) {
			p.log.Debug().Str("a", pair.A.Name).Str("b", pair.B.Name).Msg("contact began")
			p.delegate.BeginContact(Contact{A: pair.A, B: pair.B})
		}
	}

	for _, pair := range ended {
		notifyCollisionExit(pair.A, pair.B)
		notifyCollisionExit(pair.B, pair.A)
	}
}

// notifyCollisionEnter calls OnCollisionEnter on all handlers in obj
func notifyCollisionEnter(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionEnter(other)
		}
	}
}

// notifyCollisionExit calls OnCollisionExit on all handlers in obj
func notifyCollisionExit(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionExit(other)
		}
	}
}

func translate(obj *engine.GameObject, delta rl.Vector3) {
	obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), delta))
}
