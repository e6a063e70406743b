package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/component"
)

type jumpState struct {
	airborneState

	shouldKeepRotating bool
	canStartFalling    bool
}

func newJumpState(m *Movement) *jumpState {
	s := &jumpState{}
	s.initAirborne(m, StateJump)
	return s
}

func (s *jumpState) Enter() {
	s.airborneState.Enter()

	ctx := s.ctx()
	jump := &s.airborne().JumpData
	ctx.MovementDecelerationForce = jump.DecelerationForce
	ctx.UseRotationData(jump.RotationData)
	s.shouldKeepRotating = ctx.HasMovementInput()

	s.jump()
}

func (s *jumpState) Exit() {
	s.airborneState.Exit()
	s.ctx().UseRotationData(s.grounded().BaseRotationData)
	s.canStartFalling = false
}

// Update falls once the body has risen and stopped rising.
func (s *jumpState) Update(dt float64) {
	s.airborneState.Update(dt)

	if !s.canStartFalling && s.isMovingUp(0) {
		s.canStartFalling = true
	}
	if !s.canStartFalling || s.isMovingUp(0) {
		return
	}
	s.m.switchTo(StateFall)
}

func (s *jumpState) PhysicsUpdate(dt float64) {
	s.airborneState.PhysicsUpdate(dt)

	if s.shouldKeepRotating {
		s.rotateTowardsTargetRotation(dt)
	}
	if s.isMovingUp(defaultMinimumMovement) {
		s.decelerateVertically()
	}
}

func (s *jumpState) jump() {
	ctx := s.ctx()

	direction := common.YawToDirection(common.YawOf(s.m.body.Rotation()))
	if s.shouldKeepRotating {
		s.updateTargetRotation(movementInputDirection(ctx.MovementInput))
		direction = common.YawToDirection(ctx.CurrentTargetRotation.Y())
	}

	force := s.jumpForceOnSlope(directedJumpForce(ctx.CurrentJumpForce, direction))

	s.resetVelocity()
	s.m.body.AddForce(force, component.ForceModeVelocityChange)
}

func (s *jumpState) jumpForceOnSlope(force mgl64.Vec3) mgl64.Vec3 {
	jump := &s.airborne().JumpData
	_, angle, ok := s.groundAngleBelow(jump.JumpToGroundRayDistance)
	if !ok {
		return force
	}
	return shapeJumpForceOnSlope(force, angle, s.verticalVelocity().Y(),
		jump.JumpForceModifierOnSlopeUpwards, jump.JumpForceModifierOnSlopeDownwards)
}

type fallState struct {
	airborneState

	positionOnEnter mgl64.Vec3
}

func newFallState(m *Movement) *fallState {
	s := &fallState{}
	s.initAirborne(m, StateFall)
	s.onContactWithGround = s.land
	return s
}

func (s *fallState) Enter() {
	s.airborneState.Enter()
	s.startAnimation(component.AnimationFalling)
	s.positionOnEnter = s.m.body.Position()
	s.resetVerticalVelocity()
}

func (s *fallState) Exit() {
	s.airborneState.Exit()
	s.stopAnimation(component.AnimationFalling)
}

func (s *fallState) PhysicsUpdate(dt float64) {
	s.airborneState.PhysicsUpdate(dt)
	s.limitVerticalVelocity()
}

func (s *fallState) limitVerticalVelocity() {
	correction, ok := fallSpeedCorrection(s.verticalVelocity().Y(), s.airborne().FallData.FallSpeedLimit)
	if !ok {
		return
	}
	s.m.body.AddForce(mgl64.Vec3{0, correction, 0}, component.ForceModeVelocityChange)
}

func (s *fallState) land(component.Collider) {
	ctx := s.ctx()
	fallDistance := s.positionOnEnter.Y() - s.m.body.Position().Y()
	next := classifyLanding(fallDistance, s.airborne().FallData.MinimumDistanceToBeConsideredHardFall, ctx.ShouldRun, ctx.HasMovementInput())
	s.m.log.WithField("distance", fallDistance).Debugf("landed as %s", next)
	s.m.switchTo(next)
}
