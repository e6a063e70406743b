package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/component"
)

// BodySpec describes a character body. Position is the feet.
type BodySpec struct {
	Position mgl64.Vec2
	Mass     float64
	Layer    component.Layer
	Capsule  *component.ResizableCapsule
}

// Body is a fixed-rotation Chipmunk body carrying a capsule box and a
// ground-check sensor. Its origin is the feet. Heading is kept separately as
// a yaw rotation since the space itself is planar.
type Body struct {
	world  *World
	body   *cp.Body
	shape  *cp.Shape
	sensor *cp.Shape

	rotation mgl64.Quat
	scale    float64

	velocityChange mgl64.Vec3
	acceleration   mgl64.Vec3

	listener ContactListener
	removed  bool
}

// NewBody creates a body for spec and adds it to the world.
func (w *World) NewBody(spec BodySpec) *Body {
	if w == nil || w.space == nil || spec.Capsule == nil {
		return nil
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}

	capsule := spec.Capsule.Capsule
	width := capsule.Radius * 2
	center := capsule.ColliderCenterInLocalSpace.Y()
	half := capsule.ColliderVerticalExtents.Y()

	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetAngle(0)
	cpBody.SetPosition(cp.Vector{X: spec.Position.X(), Y: spec.Position.Y()})

	filter := cp.NewShapeFilter(cp.NO_GROUP, categoryOf(spec.Layer), cp.ALL_CATEGORIES)

	shape := cp.NewBox2(cpBody, cp.BB{L: -width / 2, B: center - half, R: width / 2, T: center + half}, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFilter(filter)

	trigger := spec.Capsule.Trigger
	tc := trigger.Center
	th := trigger.GroundCheckColliderVerticalExtents
	sensor := cp.NewBox2(cpBody, cp.BB{L: tc.X() - th.X(), B: tc.Y() - th.Y(), R: tc.X() + th.X(), T: tc.Y() + th.Y()}, 0)
	sensor.SetSensor(true)
	sensor.SetCollisionType(collisionTypeGroundSensor)
	sensor.SetFilter(filter)

	b := &Body{
		world:    w,
		body:     cpBody,
		shape:    shape,
		sensor:   sensor,
		rotation: mgl64.QuatIdent(),
		scale:    1,
	}
	shape.UserData = b
	sensor.UserData = b

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	w.space.AddShape(sensor)
	w.bodies = append(w.bodies, b)

	w.log.WithField("position", spec.Position).Debug("body added")
	return b
}

// RemoveBody takes b out of the world. It must not run during Step.
func (w *World) RemoveBody(b *Body) {
	if w == nil || b == nil || b.removed {
		return
	}
	b.removed = true
	w.space.RemoveShape(b.sensor)
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// SetContactListener routes ground-check contacts to l.
func (b *Body) SetContactListener(l ContactListener) {
	if b == nil {
		return
	}
	b.listener = l
}

// CP returns the underlying Chipmunk body.
func (b *Body) CP() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

func (b *Body) Velocity() mgl64.Vec3 {
	if b == nil {
		return mgl64.Vec3{}
	}
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, 0}
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	if b == nil {
		return
	}
	b.body.SetVelocity(v.X(), v.Y())
}

// AddForce queues a force for the next Step.
func (b *Body) AddForce(force mgl64.Vec3, mode component.ForceMode) {
	if b == nil {
		return
	}
	switch mode {
	case component.ForceModeVelocityChange:
		b.velocityChange = b.velocityChange.Add(force)
	case component.ForceModeAcceleration:
		b.acceleration = b.acceleration.Add(force)
	}
}

func (b *Body) applyForces(dt float64) {
	if b.velocityChange == (mgl64.Vec3{}) && b.acceleration == (mgl64.Vec3{}) {
		return
	}
	dv := b.velocityChange.Add(b.acceleration.Mul(dt))
	v := b.body.Velocity()
	b.body.SetVelocity(v.X+dv.X(), v.Y+dv.Y())
	b.body.Activate()
	b.velocityChange = mgl64.Vec3{}
	b.acceleration = mgl64.Vec3{}
}

func (b *Body) Position() mgl64.Vec3 {
	if b == nil {
		return mgl64.Vec3{}
	}
	p := b.body.Position()
	return mgl64.Vec3{p.X, p.Y, 0}
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p mgl64.Vec2) {
	if b == nil {
		return
	}
	b.body.SetPosition(cp.Vector{X: p.X(), Y: p.Y()})
	b.body.Activate()
}

func (b *Body) Rotation() mgl64.Quat {
	if b == nil {
		return mgl64.QuatIdent()
	}
	return b.rotation
}

func (b *Body) MoveRotation(q mgl64.Quat) {
	if b == nil {
		return
	}
	b.rotation = q.Normalize()
}

func (b *Body) Scale() float64 {
	if b == nil {
		return 1
	}
	return b.scale
}
