package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
)

// Snapshot is a point-in-time view of the character for logs, replays and the
// sandbox clipboard export.
type Snapshot struct {
	Tick     int        `json:"tick"`
	Time     float64    `json:"time"`
	State    string     `json:"state"`
	Grounded bool       `json:"grounded"`
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
	Yaw      float64    `json:"yaw"`
	Respawns int        `json:"respawns"`

	MovementInput mgl64.Vec2 `json:"movement_input"`
	ShouldRun     bool       `json:"should_run"`
	SpeedModifier float64    `json:"speed_modifier"`
	SlopeModifier float64    `json:"slope_modifier"`
	TargetYaw     float64    `json:"target_yaw"`
	JumpForce     mgl64.Vec3 `json:"jump_force"`
	JumpEnabled   bool       `json:"jump_enabled"`
	JumpPending   bool       `json:"jump_pending"`
}

// Snapshot captures the current tick.
func (s *Sim) Snapshot() Snapshot {
	c := s.Character
	ctx := c.Movement.Context()
	state := c.State()
	return Snapshot{
		Tick:          s.ticks,
		Time:          s.time,
		State:         state.String(),
		Grounded:      state.Grounded(),
		Position:      c.Body.Position(),
		Velocity:      c.Body.Velocity(),
		Yaw:           common.YawOf(c.Body.Rotation()),
		Respawns:      s.respawns,
		MovementInput: ctx.MovementInput,
		ShouldRun:     ctx.ShouldRun,
		SpeedModifier: ctx.MovementSpeedModifier,
		SlopeModifier: ctx.MovementOnSlopesSpeedModifier,
		TargetYaw:     ctx.CurrentTargetRotation.Y(),
		JumpForce:     ctx.CurrentJumpForce,
		JumpEnabled:   c.Input.Jump.Enabled(),
		JumpPending:   ctx.JumpEnable.Pending,
	}
}
