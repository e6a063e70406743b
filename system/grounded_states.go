package system

import "github.com/milk9111/locomotion/component"

type idleState struct {
	groundedState
}

func newIdleState(m *Movement) *idleState {
	s := &idleState{}
	s.initGrounded(m, StateIdle)
	return s
}

func (s *idleState) Enter() {
	s.ctx().MovementSpeedModifier = s.grounded().IdleData.SpeedModifier
	s.groundedState.Enter()
	s.ctx().CurrentJumpForce = s.airborne().JumpData.StationaryForce
	s.resetVelocity()
}

func (s *idleState) Update(dt float64) {
	s.groundedState.Update(dt)
	if !s.ctx().HasMovementInput() {
		return
	}
	s.onMove()
}

// PhysicsUpdate floats the body and removes any horizontal drift. The reset
// runs every step, not only above the moving threshold; zeroing a still body
// is a no-op.
func (s *idleState) PhysicsUpdate(dt float64) {
	s.groundedState.PhysicsUpdate(dt)
	s.resetHorizontalVelocity()
}

type walkState struct {
	groundedState
}

func newWalkState(m *Movement) *walkState {
	s := &walkState{}
	s.initGrounded(m, StateWalk)
	s.onMovementCanceled = func(component.InputEvent) { s.m.switchTo(StateIdle) }
	return s
}

func (s *walkState) Enter() {
	s.ctx().MovementSpeedModifier = s.grounded().WalkData.SpeedModifier
	s.groundedState.Enter()
	s.ctx().CurrentJumpForce = s.airborne().JumpData.WeakForce
}

type runState struct {
	groundedState

	startTime float64
}

func newRunState(m *Movement) *runState {
	s := &runState{}
	s.initGrounded(m, StateRun)
	s.onRun = s.run
	s.onMovementCanceled = func(component.InputEvent) { s.m.switchTo(StateIdle) }
	return s
}

func (s *runState) Enter() {
	s.ctx().MovementSpeedModifier = s.grounded().RunData.SpeedModifier
	s.groundedState.Enter()
	s.ctx().CurrentJumpForce = s.airborne().JumpData.MediumForce
	s.startTime = s.ctx().Time
}

// run stops running on release. A press right after entering does not
// re-evaluate the gait.
func (s *runState) run(e component.InputEvent) {
	s.baseRun(e)
	ctx := s.ctx()
	if !ctx.ShouldRun {
		s.stopRunning()
		return
	}
	if ctx.Time < s.startTime+s.grounded().RunData.RunToWalkTime {
		return
	}
	if ctx.HasMovementInput() {
		s.onMove()
	}
}

func (s *runState) stopRunning() {
	if !s.ctx().HasMovementInput() {
		s.m.switchTo(StateIdle)
		return
	}
	s.m.switchTo(StateWalk)
}
