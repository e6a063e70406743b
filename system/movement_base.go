package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/component"
)

const (
	animationBlendSpeed = 10.0
	blendSnapThreshold  = 0.01

	// defaultMinimumMovement is the speed below which the body counts as still.
	defaultMinimumMovement = 0.1
)

type inputBinding struct {
	action *component.InputAction
	phase  component.InputPhase
	fn     component.InputCallback
	sub    component.Subscription
}

// inputBindings is the callback set a state registers on Enter and removes on
// Exit. The list is fixed at construction so both sides always match.
type inputBindings struct {
	list   []inputBinding
	active bool
}

func (b *inputBindings) add(action *component.InputAction, phase component.InputPhase, fn component.InputCallback) {
	b.list = append(b.list, inputBinding{action: action, phase: phase, fn: fn})
}

func (b *inputBindings) subscribe() {
	if b.active {
		return
	}
	for i := range b.list {
		bd := &b.list[i]
		bd.sub = bd.action.Subscribe(bd.phase, bd.fn)
	}
	b.active = true
}

func (b *inputBindings) unsubscribe() {
	if !b.active {
		return
	}
	for i := range b.list {
		bd := &b.list[i]
		bd.action.Unsubscribe(bd.sub)
		bd.sub = 0
	}
	b.active = false
}

// movementState is the behavior every state shares. Concrete states override
// behavior through the hook fields, which the shared code calls at event time.
type movementState struct {
	m        *Movement
	id       StateID
	bindings inputBindings

	onRun                     func(e component.InputEvent)
	onMovementPerformed       func(e component.InputEvent)
	onMovementCanceled        func(e component.InputEvent)
	onContactWithGround       func(c component.Collider)
	onContactWithGroundExited func(c component.Collider)
}

func (s *movementState) initBase(m *Movement, id StateID) {
	s.m = m
	s.id = id
	s.onRun = s.baseRun

	in := m.input
	s.bindings.add(in.Run, component.InputPerformed, func(e component.InputEvent) { s.onRun(e) })
	s.bindings.add(in.Run, component.InputCanceled, func(e component.InputEvent) { s.onRun(e) })
	s.bindings.add(in.Move, component.InputPerformed, func(e component.InputEvent) {
		if s.onMovementPerformed != nil {
			s.onMovementPerformed(e)
		}
	})
	s.bindings.add(in.Move, component.InputCanceled, func(e component.InputEvent) {
		if s.onMovementCanceled != nil {
			s.onMovementCanceled(e)
		}
	})
}

func (s *movementState) ID() StateID { return s.id }

func (s *movementState) Enter() { s.bindings.subscribe() }

func (s *movementState) Exit() { s.bindings.unsubscribe() }

// HandleInput copies the polled move vector into the context.
func (s *movementState) HandleInput() {
	s.ctx().MovementInput = s.m.input.Move.ReadValue()
}

func (s *movementState) Update(dt float64) { s.updateMovementAnimation(dt) }

func (s *movementState) PhysicsUpdate(dt float64) { s.move(dt) }

func (s *movementState) OnGroundContactEnter(c component.Collider) {
	if !s.m.layers.IsGroundLayer(c.Layer) {
		return
	}
	if s.onContactWithGround != nil {
		s.onContactWithGround(c)
	}
}

func (s *movementState) OnGroundContactExit(c component.Collider) {
	if !s.m.layers.IsGroundLayer(c.Layer) {
		return
	}
	if s.onContactWithGroundExited != nil {
		s.onContactWithGroundExited(c)
	}
}

func (s *movementState) OnAnimationEnterEvent()      {}
func (s *movementState) OnAnimationExitEvent()       {}
func (s *movementState) OnAnimationTransitionEvent() {}

func (s *movementState) ctx() *component.LocomotionContext { return s.m.ctx }

func (s *movementState) grounded() *component.GroundedData { return &s.m.cfg.Grounded }

func (s *movementState) airborne() *component.AirborneData { return &s.m.cfg.Airborne }

func (s *movementState) baseRun(e component.InputEvent) {
	s.ctx().ShouldRun = e.ReadValueAsButton()
}

// move corrects the horizontal velocity to the desired heading and speed in
// one velocity change. No input or a zero modifier applies nothing.
func (s *movementState) move(dt float64) {
	ctx := s.ctx()
	if !ctx.HasMovementInput() || common.Approximately(ctx.MovementSpeedModifier, 0) {
		return
	}

	targetYaw := s.updateTargetRotation(movementInputDirection(ctx.MovementInput))
	s.rotateTowardsTargetRotation(dt)

	speed := s.grounded().BaseSpeed * ctx.MovementSpeedModifier * ctx.MovementOnSlopesSpeedModifier
	desired := common.YawToDirection(targetYaw).Mul(speed)
	s.m.body.AddForce(desired.Sub(s.horizontalVelocity()), component.ForceModeVelocityChange)
}

func (s *movementState) updateMovementAnimation(dt float64) {
	ctx := s.ctx()
	g := s.grounded()

	target := g.IdleData.SpeedModifier
	if ctx.HasMovementInput() {
		target = g.WalkData.SpeedModifier
		if ctx.ShouldRun {
			target = g.RunData.SpeedModifier
		}
	}

	ctx.AnimationBlend = common.Lerp(ctx.AnimationBlend, target, common.Clamp01(dt*animationBlendSpeed))
	if ctx.AnimationBlend < blendSnapThreshold {
		ctx.AnimationBlend = 0
	}
	s.m.animator.SetFloat(component.AnimationSpeed, ctx.AnimationBlend)
}

func (s *movementState) startAnimation(signal component.AnimationSignal) {
	s.m.animator.SetBool(signal, true)
}

func (s *movementState) stopAnimation(signal component.AnimationSignal) {
	s.m.animator.SetBool(signal, false)
}

func (s *movementState) horizontalVelocity() mgl64.Vec3 {
	return common.Horizontal(s.m.body.Velocity())
}

func (s *movementState) verticalVelocity() mgl64.Vec3 {
	return common.Vertical(s.m.body.Velocity())
}

func (s *movementState) isMovingHorizontally(minimumMagnitude float64) bool {
	v := s.horizontalVelocity()
	return mgl64.Vec2{v.X(), v.Z()}.Len() > minimumMagnitude
}

func (s *movementState) isMovingUp(minimumVelocity float64) bool {
	return s.verticalVelocity().Y() > minimumVelocity
}

func (s *movementState) isMovingDown(minimumVelocity float64) bool {
	return s.verticalVelocity().Y() < -minimumVelocity
}

func (s *movementState) resetVelocity() {
	s.m.body.SetVelocity(mgl64.Vec3{})
}

func (s *movementState) resetVerticalVelocity() {
	s.m.body.SetVelocity(s.horizontalVelocity())
}

func (s *movementState) resetHorizontalVelocity() {
	s.m.body.SetVelocity(s.verticalVelocity())
}

// decelerateVertically pulls an ascending body back with the configured force.
func (s *movementState) decelerateVertically() {
	force := s.verticalVelocity().Mul(-s.ctx().MovementDecelerationForce)
	s.m.body.AddForce(force, component.ForceModeAcceleration)
}

func (s *movementState) bodyTransform() (mgl64.Vec3, mgl64.Quat, float64) {
	b := s.m.body
	return b.Position(), b.Rotation(), b.Scale()
}

// groundAngleBelow casts down from the capsule center and returns the angle of
// the ground that was hit, in degrees.
func (s *movementState) groundAngleBelow(maxDistance float64) (component.RaycastHit, float64, bool) {
	pos, rot, scale := s.bodyTransform()
	origin := s.m.capsule.WorldCenter(pos, rot, scale)
	down := common.Up.Mul(-1)
	hit, ok := s.m.geometry.Raycast(origin, down, maxDistance, s.m.layers.GroundLayer)
	if !ok {
		return component.RaycastHit{}, 0, false
	}
	return hit, common.AngleBetween(hit.Normal, common.Up), true
}
