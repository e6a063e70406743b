package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/component"
)

// floatLift returns the vertical velocity change that brings the capsule
// center back to its float height. ok is false when it already sits there.
func floatLift(centerLocalY, scale, hitDistance, stepReachForce, verticalVelocity float64) (float64, bool) {
	distanceToFloatingPoint := centerLocalY*scale - hitDistance
	if distanceToFloatingPoint == 0 {
		return 0, false
	}
	return distanceToFloatingPoint*stepReachForce - verticalVelocity, true
}

// groundedState adds floating, ground loss and the run/jump bindings.
type groundedState struct {
	movementState

	// onMove re-evaluates which moving state to go to.
	onMove        func()
	onJumpStarted func()
}

func (s *groundedState) initGrounded(m *Movement, id StateID) {
	s.initBase(m, id)
	s.onMove = s.moveToGait
	s.onJumpStarted = func() { s.m.switchTo(StateJump) }
	s.onRun = s.groundedRun
	s.onMovementPerformed = s.groundedMovementPerformed
	s.onContactWithGroundExited = s.groundedContactExited

	s.bindings.add(m.input.Jump, component.InputStarted, func(component.InputEvent) {
		if s.onJumpStarted != nil {
			s.onJumpStarted()
		}
	})
}

func (s *groundedState) Enter() {
	s.movementState.Enter()
	s.startAnimation(component.AnimationGrounded)
	s.updateShouldRunState()
}

func (s *groundedState) Exit() {
	s.movementState.Exit()
	s.stopAnimation(component.AnimationGrounded)
}

func (s *groundedState) PhysicsUpdate(dt float64) {
	s.movementState.PhysicsUpdate(dt)
	s.float()
}

// updateShouldRunState drops the run latch when there is nothing to run with.
func (s *groundedState) updateShouldRunState() {
	ctx := s.ctx()
	if !ctx.ShouldRun || ctx.HasMovementInput() {
		return
	}
	ctx.ShouldRun = false
}

// float keeps the capsule hovering at its center height over the ground and
// records the slope modifier for the next move.
func (s *groundedState) float() {
	slope := s.m.capsule.Slope
	hit, angle, ok := s.groundAngleBelow(slope.FloatRayDistance)
	if !ok {
		return
	}
	if s.setSlopeSpeedModifierOnAngle(angle) == 0 {
		return
	}

	lift, ok := floatLift(
		s.m.capsule.Capsule.ColliderCenterInLocalSpace.Y(),
		s.m.body.Scale(),
		hit.Distance,
		slope.StepReachForce,
		s.verticalVelocity().Y(),
	)
	if !ok {
		return
	}
	s.m.body.AddForce(mgl64.Vec3{0, lift, 0}, component.ForceModeVelocityChange)
}

func (s *groundedState) setSlopeSpeedModifierOnAngle(angle float64) float64 {
	modifier := s.grounded().SlopeSpeedAngles.Evaluate(angle)
	s.ctx().MovementOnSlopesSpeedModifier = modifier
	return modifier
}

func (s *groundedState) isThereGroundUnderneath() bool {
	pos, rot, scale := s.bodyTransform()
	center := s.m.capsule.GroundCheckCenter(pos, rot, scale)
	half := s.m.capsule.GroundCheckHalfExtents(scale)
	return len(s.m.geometry.OverlapBox(center, half, rot, s.m.layers.GroundLayer)) > 0
}

func (s *groundedState) groundedContactExited(component.Collider) {
	if s.isThereGroundUnderneath() {
		return
	}
	pos, rot, scale := s.bodyTransform()
	bottom := s.m.capsule.WorldBottom(pos, rot, scale)
	down := common.Up.Mul(-1)
	if _, ok := s.m.geometry.Raycast(bottom, down, s.grounded().GroundToFallRayDistance, s.m.layers.GroundLayer); ok {
		return
	}
	s.onFall()
}

func (s *groundedState) onFall() { s.m.switchTo(StateFall) }

func (s *groundedState) moveToGait() {
	if s.ctx().ShouldRun {
		s.m.switchTo(StateRun)
		return
	}
	s.m.switchTo(StateWalk)
}

// onLandToMovingState re-enables jump after a landing: at once when standing
// still, after the jump delay when moving on.
func (s *groundedState) onLandToMovingState() {
	ctx := s.ctx()
	if !ctx.HasMovementInput() {
		s.m.input.Jump.Enable()
		return
	}
	// running and walking landings share the same delay
	ctx.JumpEnable.Schedule(ctx.Time, s.grounded().JumpDelay)
}

func (s *groundedState) groundedRun(e component.InputEvent) {
	s.baseRun(e)
	if s.ctx().HasMovementInput() {
		s.onMove()
	}
}

func (s *groundedState) groundedMovementPerformed(e component.InputEvent) {
	s.updateTargetRotation(movementInputDirection(e.Value))
}
