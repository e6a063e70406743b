package character

import (
	"io"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/system"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func flatLevel(halfWidth float64) *prefabs.LevelSpec {
	return &prefabs.LevelSpec{
		Name:    "flat",
		Gravity: physics.DefaultGravity,
		Spawn:   mgl64.Vec2{0, 0.5},
		KillY:   -5,
		Segments: []prefabs.SegmentSpec{
			{Name: "floor", From: mgl64.Vec2{-halfWidth, 0}, To: mgl64.Vec2{halfWidth, 0}, Layer: prefabs.DefaultGroundLayer},
		},
	}
}

func newSim(t *testing.T, level *prefabs.LevelSpec) *Sim {
	t.Helper()
	spec, err := prefabs.LoadCharacterSpec("character.yaml")
	if err != nil {
		t.Fatalf("LoadCharacterSpec: %v", err)
	}
	s, err := NewSim(level, spec, quietLogger())
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	return s
}

func recordTransitions(s *Sim) *[][2]system.StateID {
	var seen [][2]system.StateID
	s.Character.Movement.OnTransition = func(from, to system.StateID) {
		seen = append(seen, [2]system.StateID{from, to})
	}
	return &seen
}

func contains(seen [][2]system.StateID, from, to system.StateID) bool {
	for _, tr := range seen {
		if tr[0] == from && tr[1] == to {
			return true
		}
	}
	return false
}

func TestCharacterSettlesOnGround(t *testing.T) {
	s := newSim(t, flatLevel(50))
	s.Run(120)

	if got := s.Character.State(); got != system.StateIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if y := s.Character.Body.Position().Y(); math.Abs(y) > 0.05 {
		t.Fatalf("expected the feet to float at the ground, got y=%v", y)
	}
	if s.Respawns() != 0 {
		t.Fatalf("unexpected respawn")
	}
}

func TestCharacterWalksAndStops(t *testing.T) {
	s := newSim(t, flatLevel(50))
	s.Run(30)

	s.Character.Input.Move.SetValue(mgl64.Vec2{1, 0})
	s.Run(60)
	if got := s.Character.State(); got != system.StateWalk {
		t.Fatalf("expected walk, got %s", got)
	}
	if vx := s.Character.Body.Velocity().X(); math.Abs(vx-5*0.225) > 1e-6 {
		t.Fatalf("expected walk speed, got %v", vx)
	}
	if x := s.Character.Body.Position().X(); x < 0.5 {
		t.Fatalf("expected to have moved right, got x=%v", x)
	}
	if yaw := common.YawOf(s.Character.Body.Rotation()); math.Abs(yaw-90) > 1e-3 {
		t.Fatalf("expected to face +X, got yaw %v", yaw)
	}

	s.Character.Input.Move.SetValue(mgl64.Vec2{})
	if got := s.Character.State(); got != system.StateIdle {
		t.Fatalf("expected idle on release, got %s", got)
	}
	s.Advance()
	if vx := s.Character.Body.Velocity().X(); vx != 0 {
		t.Fatalf("expected idle to stop horizontal motion, got %v", vx)
	}
}

func TestCharacterJumpsAndLands(t *testing.T) {
	s := newSim(t, flatLevel(50))
	s.Run(60)
	seen := recordTransitions(s)

	s.Character.Input.Jump.Press()
	s.Character.Input.Jump.Release()
	if got := s.Character.State(); got != system.StateJump {
		t.Fatalf("expected jump, got %s", got)
	}

	peak := 0.0
	for i := 0; i < 300 && s.Character.State() != system.StateIdle; i++ {
		s.Advance()
		peak = math.Max(peak, s.Character.Body.Position().Y())
	}

	for _, tr := range [][2]system.StateID{
		{system.StateIdle, system.StateJump},
		{system.StateJump, system.StateFall},
		{system.StateFall, system.StateLightLand},
		{system.StateLightLand, system.StateIdle},
	} {
		if !contains(*seen, tr[0], tr[1]) {
			t.Fatalf("missing transition %s -> %s in %v", tr[0], tr[1], *seen)
		}
	}
	if peak < 0.5 {
		t.Fatalf("jump peaked too low: %v", peak)
	}
	if !s.Character.Input.Jump.Enabled() {
		t.Fatalf("jump should be enabled after landing in place")
	}
}

func TestCharacterRespawnsAfterFallingOff(t *testing.T) {
	s := newSim(t, flatLevel(1))
	seen := recordTransitions(s)
	s.Run(30)

	s.Character.Input.Move.SetValue(mgl64.Vec2{1, 0})
	for i := 0; i < 600 && s.Respawns() == 0; i++ {
		s.Advance()
	}
	if s.Respawns() != 1 {
		t.Fatalf("expected a respawn")
	}
	if !contains(*seen, system.StateWalk, system.StateFall) {
		t.Fatalf("expected walking off the edge to fall, got %v", *seen)
	}
	if got := s.Character.Body.Position(); got.X() != 0 || got.Y() != 0.5 {
		t.Fatalf("expected the spawn position, got %v", got)
	}
	if got := s.Character.State(); got != system.StateIdle {
		t.Fatalf("expected idle after respawn, got %s", got)
	}
}

func TestReplaceKeepsOneBody(t *testing.T) {
	s := newSim(t, flatLevel(50))
	s.Run(10)

	// a landing into walk left jump disabled with its re-enable pending
	ctx := s.Character.Movement.Context()
	s.Character.Input.Jump.Disable()
	ctx.JumpEnable.Schedule(ctx.Time, 1)

	spec, err := prefabs.LoadCharacterSpec("character.yaml")
	if err != nil {
		t.Fatalf("LoadCharacterSpec: %v", err)
	}
	spec.Movement.Grounded.BaseSpeed = 8
	if err := s.Replace(spec); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if n := len(s.World.Bodies()); n != 1 {
		t.Fatalf("expected one body, got %d", n)
	}
	handlers := 0
	for _, a := range s.Character.Input.Actions() {
		handlers += a.HandlerCount()
	}
	if handlers != 5 {
		t.Fatalf("expected only the new idle bindings, got %d", handlers)
	}
	if s.Character.Movement.Config().Grounded.BaseSpeed != 8 {
		t.Fatalf("replacement did not take the new config")
	}
	if !s.Character.Input.Jump.Enabled() {
		t.Fatalf("replacing the character stranded a disabled jump")
	}
	s.Character.Input.Jump.Press()
	if got := s.Character.State(); got != system.StateJump {
		t.Fatalf("expected the replacement to jump, got %s", got)
	}
}

func TestNewRequiresWorld(t *testing.T) {
	if _, err := New(nil, &prefabs.CharacterSpec{}, mgl64.Vec2{}, nil, quietLogger()); err != ErrNoWorld {
		t.Fatalf("expected ErrNoWorld, got %v", err)
	}
}
