package system

import "github.com/milk9111/locomotion/component"

type lightLandState struct {
	groundedState
}

func newLightLandState(m *Movement) *lightLandState {
	s := &lightLandState{}
	s.initGrounded(m, StateLightLand)
	return s
}

func (s *lightLandState) Enter() {
	ctx := s.ctx()
	ctx.MovementSpeedModifier = s.grounded().IdleData.SpeedModifier
	s.groundedState.Enter()
	ctx.CurrentJumpForce = s.airborne().JumpData.StationaryForce

	// a re-enable left over from an earlier landing must not fire mid-landing
	ctx.JumpEnable.Cancel()
	s.m.input.Jump.Disable()

	s.resetVelocity()
}

func (s *lightLandState) Exit() {
	s.groundedState.Exit()
	s.onLandToMovingState()
}

func (s *lightLandState) Update(dt float64) {
	s.groundedState.Update(dt)
	if !s.ctx().HasMovementInput() {
		return
	}
	s.onMove()
}

// PhysicsUpdate resets horizontal velocity unconditionally, as Idle does.
func (s *lightLandState) PhysicsUpdate(dt float64) {
	s.groundedState.PhysicsUpdate(dt)
	s.resetHorizontalVelocity()
}

func (s *lightLandState) OnAnimationTransitionEvent() { s.m.switchTo(StateIdle) }

type rollState struct {
	groundedState
}

func newRollState(m *Movement) *rollState {
	s := &rollState{}
	s.initGrounded(m, StateRoll)
	s.onJumpStarted = func() {}
	return s
}

func (s *rollState) Enter() {
	ctx := s.ctx()
	ctx.MovementSpeedModifier = s.grounded().RollData.SpeedModifier
	s.groundedState.Enter()
	ctx.CurrentJumpForce = s.airborne().JumpData.StationaryForce
	s.startAnimation(component.AnimationRolling)
}

func (s *rollState) Exit() {
	s.groundedState.Exit()
	s.stopAnimation(component.AnimationRolling)
}

// PhysicsUpdate keeps turning toward the last heading when there is no input.
func (s *rollState) PhysicsUpdate(dt float64) {
	s.groundedState.PhysicsUpdate(dt)
	if s.ctx().HasMovementInput() {
		return
	}
	s.rotateTowardsTargetRotation(dt)
}

func (s *rollState) OnAnimationTransitionEvent() {
	if !s.ctx().HasMovementInput() {
		s.m.switchTo(StateIdle)
		return
	}
	s.onMove()
}

type hardLandState struct {
	groundedState
}

func newHardLandState(m *Movement) *hardLandState {
	s := &hardLandState{}
	s.initGrounded(m, StateHardLand)
	s.onMove = func() { s.m.switchTo(StateWalk) }
	s.onJumpStarted = func() {}
	s.bindings.add(m.input.Move, component.InputStarted, func(component.InputEvent) { s.onMove() })
	return s
}

func (s *hardLandState) Enter() {
	ctx := s.ctx()
	ctx.MovementSpeedModifier = 0
	s.groundedState.Enter()
	ctx.CurrentJumpForce = s.airborne().JumpData.StationaryForce
	s.startAnimation(component.AnimationHardLanding)

	s.m.input.Move.Disable()
	s.resetVelocity()
}

func (s *hardLandState) Exit() {
	s.groundedState.Exit()
	s.stopAnimation(component.AnimationHardLanding)
	s.m.input.Move.Enable()
}

// PhysicsUpdate resets horizontal velocity unconditionally, as Idle does.
func (s *hardLandState) PhysicsUpdate(dt float64) {
	s.groundedState.PhysicsUpdate(dt)
	s.resetHorizontalVelocity()
}

func (s *hardLandState) OnAnimationExitEvent() { s.m.input.Move.Enable() }

func (s *hardLandState) OnAnimationTransitionEvent() { s.m.switchTo(StateIdle) }
