package component

import "github.com/go-gl/mathgl/mgl64"

// RotationData is the per-axis time, in seconds, to reach a new target rotation.
type RotationData struct {
	TargetRotationReachTime mgl64.Vec3 `yaml:"target_rotation_reach_time"`
}

// LocomotionContext is the blackboard shared by every movement state. Only the
// active state writes to it.
type LocomotionContext struct {
	MovementInput mgl64.Vec2
	ShouldRun     bool

	MovementSpeedModifier         float64
	MovementOnSlopesSpeedModifier float64
	MovementDecelerationForce     float64

	CurrentJumpForce mgl64.Vec3

	RotationData                        RotationData
	TimeToReachTargetRotation           mgl64.Vec3
	CurrentTargetRotation               mgl64.Vec3
	DampedTargetRotationCurrentVelocity mgl64.Vec3
	DampedTargetRotationPassedTime      mgl64.Vec3

	// AnimationBlend is the smoothed value pushed to the Speed parameter.
	AnimationBlend float64

	// Time is the frame clock in seconds, advanced by the controller.
	Time float64

	// JumpEnable re-enables the jump action once landing settles.
	JumpEnable DelayedAction
}

// NewLocomotionContext returns a context with neutral modifiers.
func NewLocomotionContext() *LocomotionContext {
	return &LocomotionContext{MovementOnSlopesSpeedModifier: 1}
}

// HasMovementInput reports whether the last polled move vector is non-zero.
func (c *LocomotionContext) HasMovementInput() bool {
	if c == nil {
		return false
	}
	return c.MovementInput != (mgl64.Vec2{})
}

// UseRotationData swaps the active rotation data and its reach times.
func (c *LocomotionContext) UseRotationData(data RotationData) {
	if c == nil {
		return
	}
	c.RotationData = data
	c.TimeToReachTargetRotation = data.TargetRotationReachTime
}
