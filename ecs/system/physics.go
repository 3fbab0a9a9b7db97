package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewind/ecs"
	"github.com/milk9111/rewind/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
)

const groundGraceFrames = 6

// PhysicsSystem owns the Chipmunk space. Components are the authority: every
// tick the Transform/Velocity/GravityScale of each body is pushed into
// Chipmunk, the space is stepped, and the result is pulled back.
//
// A body whose entity is rewinding keeps its velocity but skips position
// integration, so playback is the only thing that moves it.
type PhysicsSystem struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool

	gravityScale float64
	suspended    bool
}

type playerContactState struct {
	grounded    bool
	groundGrace int
}

// NewPhysicsSystem creates a space pulling bodies down (+Y) at gravity px/s².
func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	ps := &PhysicsSystem{
		gravity:      gravity,
		entities:     make(map[ecs.Entity]*bodyInfo),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		playerStates: make(map[ecs.Entity]*playerContactState),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: ps.gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body so the next Update rebuilds the space from the
// world. Used when a scene is reloaded.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = ps.newSpace()
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.playerShapes = make(map[*cp.Shape]ecs.Entity)
	ps.groundShapes = make(map[*cp.Shape]ecs.Entity)
	ps.playerStates = make(map[ecs.Entity]*playerContactState)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = ps.newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.pushState(w)
	ps.resetPlayerContacts(w)

	ps.space.Step(w.Time().Delta)

	ps.pullState(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			playerEntity, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// Only a contact whose normal points from the sensor down into the
		// ground counts (positive Y in screen-down coordinates).
		if n.Y <= 0.5 {
			return true
		}
		st := sys.playerStates[playerEntity]
		if st == nil {
			st = &playerContactState{}
			sys.playerStates[playerEntity] = st
		}
		st.grounded = true
		st.groundGrace = groundGraceFrames
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())

		info := ps.createBodyInfo(*transform, *bodyComp, isPlayer)
		if info == nil || info.mainShape == nil {
			continue
		}
		ps.entities[e] = info
		if isPlayer {
			ps.playerShapes[info.mainShape] = e
			if info.groundShape != nil {
				ps.groundShapes[info.groundShape] = e
			}
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
		log.Printf("physics: entity %s body created static=%v player=%v", e, info.static, isPlayer)
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody, isPlayer bool) *bodyInfo {
	if ps.space == nil {
		return nil
	}

	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 32
		height = 32
	}

	info := &bodyInfo{static: bodyComp.Static, gravityScale: 1}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{
				L: transform.X - width/2,
				B: transform.Y - height/2,
				R: transform.X + width/2,
				T: transform.Y + height/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	switch {
	case bodyComp.FixedRotation:
		moment = math.Inf(1)
	case radius > 0:
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	default:
		moment = cp.MomentForBox(mass, width, height)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	body.SetAngularVelocity(0)
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(info.gravityScale), damping, dt)
	})
	body.SetPositionUpdateFunc(func(b *cp.Body, dt float64) {
		if info.suspended {
			return
		}
		cp.BodyUpdatePosition(b, dt)
	})

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		if groundShape := ps.createGroundSensor(width, height, body); groundShape != nil {
			ps.space.AddShape(groundShape)
			info.groundShape = groundShape
			info.shapes = append(info.shapes, groundShape)
		}
	}

	return info
}

func (ps *PhysicsSystem) createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	if body == nil || width <= 0 || height <= 0 {
		return nil
	}

	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}

	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

// pushState copies component state into the dynamic bodies.
func (ps *PhysicsSystem) pushState(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		info := ps.entities[e]
		if info == nil || info.static || info.body == nil {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

		info.gravityScale = 1
		if g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			info.gravityScale = g.Scale
		}
		info.suspended = false
		if h, ok := ecs.Get(w, e, component.HistoryComponent.Kind()); ok {
			info.suspended = h.Rewinding()
		}

		pos := cp.Vector{X: transform.X, Y: transform.Y}
		if info.body.Position() != pos {
			info.body.SetPosition(pos)
		}
		if !bodyComp.FixedRotation && info.body.Angle() != transform.Rotation {
			info.body.SetAngle(transform.Rotation)
		}
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			info.body.SetVelocityVector(cp.Vector{X: vel.X, Y: vel.Y})
			if !bodyComp.FixedRotation {
				info.body.SetAngularVelocity(vel.Angular)
			}
		}
	}
}

// pullState copies the stepped bodies back into components.
func (ps *PhysicsSystem) pullState(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		info := ps.entities[e]
		if info == nil || info.static || info.body == nil {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()

		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
			vel.Angular = info.body.AngularVelocity()
		}
	}
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	players := w.Query(component.PlayerCollisionComponent.Kind())
	seen := make(map[ecs.Entity]struct{}, len(players))
	for _, e := range players {
		seen[e] = struct{}{}
		pc, _ := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		st := ps.playerStates[e]
		if st == nil {
			st = &playerContactState{}
			ps.playerStates[e] = st
		}
		st.groundGrace = pc.GroundGrace
		if st.groundGrace > 0 {
			st.groundGrace--
		}
		st.grounded = false
	}

	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		if !ok {
			continue
		}
		pc.Grounded = st.grounded
		pc.GroundGrace = st.groundGrace
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil || ps.space == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.playerShapes, shape)
			delete(ps.groundShapes, shape)
		}
		if info.body != nil && !info.static && ps.space != nil {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}
