package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
)

// rotationEpsilon is the yaw difference, in degrees, treated as already facing.
const rotationEpsilon = 1e-6

// movementInputDirection lifts 2D input onto the horizontal plane.
func movementInputDirection(input mgl64.Vec2) mgl64.Vec3 {
	return mgl64.Vec3{input.X(), 0, input.Y()}
}

// targetYaw returns the heading for a horizontal direction relative to the
// reference yaw, in [0, 360).
func targetYaw(direction mgl64.Vec3, referenceYaw float64) float64 {
	yaw := common.NormalizeAngle(mgl64.RadToDeg(math.Atan2(direction.X(), direction.Z())))
	return common.NormalizeAngle(yaw + referenceYaw)
}

// dampYaw moves current toward target over what is left of reach after
// elapsed seconds. Equal angles are returned untouched.
func dampYaw(current, target float64, velocity *float64, reach, elapsed, dt float64) float64 {
	if math.Abs(common.DeltaAngle(current, target)) < rotationEpsilon {
		return current
	}
	return common.SmoothDampAngle(current, target, velocity, reach-elapsed, dt)
}

// updateTargetRotation stores a new target yaw, restarting the damping window
// when it changed, and returns it.
func (s *movementState) updateTargetRotation(direction mgl64.Vec3) float64 {
	ctx := s.ctx()
	yaw := targetYaw(direction, s.m.heading.Yaw())
	if yaw != ctx.CurrentTargetRotation.Y() {
		ctx.CurrentTargetRotation[1] = yaw
		ctx.DampedTargetRotationPassedTime[1] = 0
	}
	return yaw
}

// rotateTowardsTargetRotation damps the body yaw toward the stored target.
// Elapsed time advances on every call so the window keeps shrinking.
func (s *movementState) rotateTowardsTargetRotation(dt float64) {
	ctx := s.ctx()
	ctx.DampedTargetRotationPassedTime[1] += dt

	current := common.YawOf(s.m.body.Rotation())
	target := ctx.CurrentTargetRotation.Y()
	if math.Abs(common.DeltaAngle(current, target)) < rotationEpsilon {
		return
	}

	velocity := ctx.DampedTargetRotationCurrentVelocity.Y()
	smoothed := dampYaw(current, target, &velocity, ctx.TimeToReachTargetRotation.Y(), ctx.DampedTargetRotationPassedTime.Y(), dt)
	ctx.DampedTargetRotationCurrentVelocity[1] = velocity

	s.m.body.MoveRotation(common.YawRotation(smoothed))
}
