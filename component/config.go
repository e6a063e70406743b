package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
)

// IdleData configures the idle state.
type IdleData struct {
	SpeedModifier float64 `yaml:"speed_modifier"`
}

// WalkData configures the walk state.
type WalkData struct {
	SpeedModifier float64 `yaml:"speed_modifier"`
}

// RunData configures the run state.
type RunData struct {
	SpeedModifier float64 `yaml:"speed_modifier"`
	// RunToWalkTime guards against re-evaluating the gait right after a run starts.
	RunToWalkTime float64 `yaml:"run_to_walk_time"`
}

// RollData configures the roll state.
type RollData struct {
	SpeedModifier float64 `yaml:"speed_modifier"`
}

// GroundedData configures every grounded state.
type GroundedData struct {
	BaseSpeed float64 `yaml:"base_speed"`
	// GroundToFallRayDistance is how far below the capsule bottom ground may
	// be before contact loss becomes a fall.
	GroundToFallRayDistance float64 `yaml:"ground_to_fall_ray_distance"`
	// SlopeSpeedAngles maps ground angle in degrees to a speed modifier.
	SlopeSpeedAngles common.Curve `yaml:"slope_speed_angles"`
	BaseRotationData RotationData `yaml:"base_rotation"`
	// JumpDelay is how long jump stays disabled after landing into movement.
	JumpDelay float64 `yaml:"jump_delay"`

	IdleData IdleData `yaml:"idle"`
	WalkData WalkData `yaml:"walk"`
	RunData  RunData  `yaml:"run"`
	RollData RollData `yaml:"roll"`
}

// JumpData configures the jump state.
type JumpData struct {
	RotationData RotationData `yaml:"rotation"`

	JumpToGroundRayDistance float64 `yaml:"jump_to_ground_ray_distance"`
	// Slope curves map ground angle in degrees to a force multiplier.
	JumpForceModifierOnSlopeUpwards   common.Curve `yaml:"force_modifier_on_slope_upwards"`
	JumpForceModifierOnSlopeDownwards common.Curve `yaml:"force_modifier_on_slope_downwards"`

	StationaryForce mgl64.Vec3 `yaml:"stationary_force"`
	WeakForce       mgl64.Vec3 `yaml:"weak_force"`
	MediumForce     mgl64.Vec3 `yaml:"medium_force"`

	DecelerationForce float64 `yaml:"deceleration_force"`
}

// FallData configures the fall state.
type FallData struct {
	FallSpeedLimit                        float64 `yaml:"fall_speed_limit"`
	MinimumDistanceToBeConsideredHardFall float64 `yaml:"hard_fall_distance"`
}

// AirborneData configures every airborne state.
type AirborneData struct {
	JumpData JumpData `yaml:"jump"`
	FallData FallData `yaml:"fall"`
}

// MovementConfig is the immutable configuration the states read.
type MovementConfig struct {
	Grounded GroundedData `yaml:"grounded"`
	Airborne AirborneData `yaml:"airborne"`
}
