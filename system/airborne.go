package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/component"
)

// directedJumpForce points the horizontal part of a jump force along direction.
func directedJumpForce(force, direction mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{force.X() * direction.X(), force.Y(), force.Z() * direction.Z()}
}

// shapeJumpForceOnSlope scales a jump launched on a slope: ascending trims the
// horizontal push, descending trims the vertical one.
func shapeJumpForceOnSlope(force mgl64.Vec3, groundAngle, verticalVelocity float64, upwards, downwards common.Curve) mgl64.Vec3 {
	if verticalVelocity > defaultMinimumMovement {
		modifier := upwards.Evaluate(groundAngle)
		force[0] *= modifier
		force[2] *= modifier
	}
	if verticalVelocity < -defaultMinimumMovement {
		force[1] *= downwards.Evaluate(groundAngle)
	}
	return force
}

// fallSpeedCorrection returns the upward velocity change that caps a fall at
// limit.
func fallSpeedCorrection(verticalVelocity, limit float64) (float64, bool) {
	if verticalVelocity >= -limit {
		return 0, false
	}
	return -limit - verticalVelocity, true
}

// classifyLanding picks the landing state for a fall of fallDistance.
func classifyLanding(fallDistance, hardFallDistance float64, shouldRun, hasInput bool) StateID {
	if fallDistance < hardFallDistance {
		return StateLightLand
	}
	if !shouldRun || !hasInput {
		return StateHardLand
	}
	return StateRoll
}

// airborneState lands on ground contact and toggles the airborne flag.
type airborneState struct {
	movementState
}

func (s *airborneState) initAirborne(m *Movement, id StateID) {
	s.initBase(m, id)
	s.onContactWithGround = func(component.Collider) { s.m.switchTo(StateLightLand) }
}

func (s *airborneState) Enter() {
	s.movementState.Enter()
	s.startAnimation(component.AnimationAirborne)
}

func (s *airborneState) Exit() {
	s.movementState.Exit()
	s.stopAnimation(component.AnimationAirborne)
}
