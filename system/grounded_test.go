package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/component"
)

func TestFloatLift(t *testing.T) {
	cases := []struct {
		name     string
		hit      float64
		vertical float64
		want     float64
		ok       bool
	}{
		{"at float height", 1, 0, 0, false},
		{"sunk", 0.8, 0, 5, true},
		{"sunk while rising", 0.8, 2, 3, true},
		{"above", 1.2, 0, -5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := floatLift(1, 1, tc.hit, 25, tc.vertical)
			if ok != tc.ok || math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("floatLift = %v %v, want %v %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestGroundLossStartsFall(t *testing.T) {
	t.Run("nothing below", func(t *testing.T) {
		h := newHarness(t)
		h.m.OnGroundContactExit(groundCollider)
		h.expectState(t, StateFall)
	})

	t.Run("overlap still touching", func(t *testing.T) {
		h := newHarness(t)
		h.geo.overlap = true
		h.m.OnGroundContactExit(groundCollider)
		h.expectState(t, StateIdle)
		if h.geo.rays != 0 {
			t.Fatalf("expected no ray when the overlap finds ground")
		}
	})

	t.Run("ground within reach", func(t *testing.T) {
		h := newHarness(t)
		h.geo.hasGround = true
		h.geo.groundY = -0.4
		h.m.OnGroundContactExit(groundCollider)
		h.expectState(t, StateIdle)
	})

	t.Run("ground out of reach", func(t *testing.T) {
		h := newHarness(t)
		h.geo.hasGround = true
		h.geo.groundY = -2
		h.m.OnGroundContactExit(groundCollider)
		h.expectState(t, StateFall)
	})

	t.Run("other layer", func(t *testing.T) {
		h := newHarness(t)
		h.m.OnGroundContactExit(component.Collider{Name: "crate", Layer: 1})
		h.expectState(t, StateIdle)
	})
}

func landLightly(t *testing.T, h *harness) {
	t.Helper()
	h.body.pos = mgl64.Vec3{0, 1, 0}
	h.m.switchTo(StateFall)
	h.body.pos = mgl64.Vec3{}
	h.m.OnGroundContactEnter(groundCollider)
	h.expectState(t, StateLightLand)
}

func TestLightLandReenablesJumpAfterDelay(t *testing.T) {
	h := newHarness(t)
	landLightly(t, h)
	if h.input.Jump.Enabled() {
		t.Fatalf("jump should be disabled while landing")
	}

	h.input.Move.SetValue(mgl64.Vec2{0, 1})
	h.m.Frame(0.02)
	h.expectState(t, StateWalk)
	if h.input.Jump.Enabled() {
		t.Fatalf("jump should wait for the delay")
	}

	h.m.Frame(0.1)
	h.m.Frame(0.1)
	if h.input.Jump.Enabled() {
		t.Fatalf("jump enabled before the delay elapsed")
	}
	h.m.Frame(0.1)
	if !h.input.Jump.Enabled() {
		t.Fatalf("jump should be enabled after the delay")
	}
}

func TestLightLandStandingStillReenablesJump(t *testing.T) {
	h := newHarness(t)
	landLightly(t, h)
	h.m.OnAnimationTransitionEvent()
	h.expectState(t, StateIdle)
	if !h.input.Jump.Enabled() {
		t.Fatalf("jump should be enabled at once when standing still")
	}
}

func TestRelandingCancelsPendingJumpEnable(t *testing.T) {
	h := newHarness(t)
	landLightly(t, h)
	h.input.Move.SetValue(mgl64.Vec2{0, 1})
	h.m.Frame(0.02)
	h.expectState(t, StateWalk)
	h.input.Move.SetValue(mgl64.Vec2{})
	h.expectState(t, StateIdle)

	landLightly(t, h)
	for i := 0; i < 5; i++ {
		h.m.Frame(0.1)
	}
	h.expectState(t, StateLightLand)
	if h.input.Jump.Enabled() {
		t.Fatalf("a stale re-enable fired during a landing")
	}
}

func TestHardLandLocksMovement(t *testing.T) {
	h := newHarness(t)
	h.m.switchTo(StateHardLand)
	if h.input.Move.Enabled() {
		t.Fatalf("move should be disabled on hard landing")
	}
	if !h.anim.bools[component.AnimationHardLanding] {
		t.Fatalf("expected hard landing animation")
	}

	h.input.Move.SetValue(mgl64.Vec2{0, 1})
	h.m.Frame(0.02)
	h.expectState(t, StateHardLand)
	if got := h.m.Context().MovementInput; got != (mgl64.Vec2{}) {
		t.Fatalf("disabled move leaked input %v", got)
	}

	h.m.OnAnimationExitEvent()
	h.expectState(t, StateWalk)
	if !h.input.Move.Enabled() {
		t.Fatalf("move should be enabled after the hard landing")
	}
	if h.anim.bools[component.AnimationHardLanding] {
		t.Fatalf("hard landing animation still set")
	}
}

func TestHardLandTransitionEventReturnsToIdle(t *testing.T) {
	h := newHarness(t)
	h.m.switchTo(StateHardLand)
	h.m.OnAnimationExitEvent()
	h.m.OnAnimationTransitionEvent()
	h.expectState(t, StateIdle)
}

func TestRollEndsByInput(t *testing.T) {
	t.Run("no input", func(t *testing.T) {
		h := newHarness(t)
		h.m.switchTo(StateRoll)
		h.m.OnAnimationTransitionEvent()
		h.expectState(t, StateIdle)
	})
	t.Run("running", func(t *testing.T) {
		h := newHarness(t)
		h.input.Move.SetValue(mgl64.Vec2{0, 1})
		h.m.HandleInput()
		h.input.Run.Press()
		h.m.switchTo(StateRoll)
		h.m.OnAnimationTransitionEvent()
		h.expectState(t, StateRun)
	})
}

func TestRollWithoutInputKeepsTurning(t *testing.T) {
	h := newHarness(t)
	h.m.switchTo(StateRoll)
	ctx := h.m.Context()
	ctx.CurrentTargetRotation[1] = 90
	ctx.DampedTargetRotationPassedTime[1] = 0

	prev := h.body.yaw()
	for i := 0; i < 25; i++ {
		h.physicsStep(0.02)
		yaw := h.body.yaw()
		if yaw < prev-1e-9 || yaw > 90+1e-6 {
			t.Fatalf("step %d: yaw %v after %v", i, yaw, prev)
		}
		prev = yaw
	}
	if math.Abs(prev-90) > 1e-3 {
		t.Fatalf("expected the roll to finish turning to 90, got %v", prev)
	}
	if h.body.vel.X() != 0 || h.body.vel.Z() != 0 {
		t.Fatalf("turning without input must not move the body, got %v", h.body.vel)
	}

	h.m.switchTo(StateIdle)
	ctx.CurrentTargetRotation[1] = 180
	ctx.DampedTargetRotationPassedTime[1] = 0
	h.physicsStep(0.02)
	if math.Abs(h.body.yaw()-prev) > 1e-9 {
		t.Fatalf("idle should not turn without input, got %v", h.body.yaw())
	}
}
