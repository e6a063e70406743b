package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/component"
	"github.com/sirupsen/logrus"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBody
	collisionTypeGroundSensor
	collisionTypeTrigger
)

// DefaultGravity is the downward acceleration of a new world, in m/s².
const DefaultGravity = -9.81

// ContactListener receives ground-check contacts of a body.
type ContactListener interface {
	OnGroundContactEnter(c component.Collider)
	OnGroundContactExit(c component.Collider)
}

type contactEvent struct {
	body     *Body
	collider component.Collider
	enter    bool
}

// World owns the Chipmunk space. The simulation is a side view: world X and Y
// map to the space, Y is up and Z is dropped.
type World struct {
	space         *cp.Space
	handlersReady bool

	bodies  []*Body
	pending []contactEvent
	log     *logrus.Entry
}

// NewWorld creates an empty world with gravity along Y.
func NewWorld(gravity float64, log *logrus.Entry) *World {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	w := &World{
		space: space,
		log:   log.WithField("component", "physics"),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Bodies returns the bodies in creation order.
func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	return w.bodies
}

func categoryOf(layer component.Layer) uint {
	if layer < 0 || layer >= 32 {
		return 0
	}
	return 1 << uint(layer)
}

func queryFilter(mask component.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

func (w *World) addStatic(shape *cp.Shape, c component.Collider) *cp.Shape {
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryOf(c.Layer), cp.ALL_CATEGORIES))
	shape.UserData = c
	return w.space.AddShape(shape)
}

// AddSegment adds a static segment from a to b with the given thickness.
func (w *World) AddSegment(a, b mgl64.Vec2, radius float64, c component.Collider) *cp.Shape {
	if w == nil || w.space == nil {
		return nil
	}
	shape := cp.NewSegment(w.space.StaticBody, cp.Vector{X: a.X(), Y: a.Y()}, cp.Vector{X: b.X(), Y: b.Y()}, radius)
	return w.addStatic(shape, c)
}

// AddBox adds a static axis-aligned box spanning min to max.
func (w *World) AddBox(min, max mgl64.Vec2, c component.Collider) *cp.Shape {
	if w == nil || w.space == nil {
		return nil
	}
	bb := cp.BB{L: min.X(), B: min.Y(), R: max.X(), T: max.Y()}
	return w.addStatic(cp.NewBox2(w.space.StaticBody, bb, 0), c)
}

// AddTrigger adds a static sensor box. Queries never report it.
func (w *World) AddTrigger(min, max mgl64.Vec2, c component.Collider) *cp.Shape {
	shape := w.AddBox(min, max, c)
	if shape != nil {
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeTrigger)
	}
	return shape
}

// Raycast casts from origin along direction and reports the closest solid
// shape on mask within maxDistance.
func (w *World) Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask component.LayerMask) (component.RaycastHit, bool) {
	if w == nil || w.space == nil || maxDistance <= 0 {
		return component.RaycastHit{}, false
	}
	dir := mgl64.Vec2{direction.X(), direction.Y()}
	if dir.Len() < 1e-12 {
		return component.RaycastHit{}, false
	}
	dir = dir.Normalize()

	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := cp.Vector{X: origin.X() + dir.X()*maxDistance, Y: origin.Y() + dir.Y()*maxDistance}
	info := w.space.SegmentQueryFirst(start, end, 0, queryFilter(mask))
	if info.Shape == nil {
		return component.RaycastHit{}, false
	}
	c, _ := info.Shape.UserData.(component.Collider)
	return component.RaycastHit{
		Point:    mgl64.Vec3{info.Point.X, info.Point.Y, origin.Z()},
		Normal:   mgl64.Vec3{info.Normal.X, info.Normal.Y, 0},
		Distance: info.Alpha * maxDistance,
		Collider: c,
	}, true
}

// OverlapBox lists the solid colliders on mask touching the oriented box.
// The box is reduced to its axis-aligned bounds in the XY plane.
func (w *World) OverlapBox(center, halfExtents mgl64.Vec3, rotation mgl64.Quat, mask component.LayerMask) []component.Collider {
	if w == nil || w.space == nil {
		return nil
	}
	hx, hy := projectedExtents(halfExtents, rotation)
	bb := cp.NewBBForExtents(cp.Vector{X: center.X(), Y: center.Y()}, hx, hy)

	var out []component.Collider
	seen := make(map[*cp.Shape]struct{})
	w.space.BBQuery(bb, queryFilter(mask), func(shape *cp.Shape, data interface{}) {
		if shape.Sensor() {
			return
		}
		if _, ok := seen[shape]; ok {
			return
		}
		c, ok := shape.UserData.(component.Collider)
		if !ok {
			return
		}
		seen[shape] = struct{}{}
		out = append(out, c)
	}, nil)
	return out
}

func projectedExtents(half mgl64.Vec3, rotation mgl64.Quat) (float64, float64) {
	var hx, hy float64
	for i, axis := range []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		r := rotation.Rotate(axis).Mul(half[i])
		hx += math.Abs(r.X())
		hy += math.Abs(r.Y())
	}
	return hx, hy
}

// Step applies the forces queued on every body, advances the space and then
// delivers the ground contacts the step produced.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	for _, b := range w.bodies {
		b.applyForces(dt)
	}
	w.space.Step(dt)
	w.flushContacts()
}

func (w *World) flushContacts() {
	events := w.pending
	w.pending = nil
	for _, e := range events {
		if e.body.removed || e.body.listener == nil {
			continue
		}
		if e.enter {
			e.body.listener.OnGroundContactEnter(e.collider)
			continue
		}
		e.body.listener.OnGroundContactExit(e.collider)
	}
}

func (w *World) queueContact(arb *cp.Arbiter, enter bool) {
	sensor, other := arb.Shapes()
	body, ok := sensor.UserData.(*Body)
	if !ok || body == nil {
		return
	}
	c, ok := other.UserData.(component.Collider)
	if !ok {
		return
	}
	w.pending = append(w.pending, contactEvent{body: body, collider: c, enter: enter})
}

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	groundHandler := w.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundHandler.UserData = w
	groundHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		world.queueContact(arb, true)
		return true
	}
	groundHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		world.queueContact(arb, false)
	}

	w.handlersReady = true
}
