package script

import (
	"io"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/component"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestDriverReadsGlobals(t *testing.T) {
	src := []byte(`
move_x := 0.0
run := false
jump := false
if tick > 2 { move_x = 3 }
if state == "idle" { jump = true }
run = vy < 0
`)
	d, err := New("inline", src, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		name  string
		frame Frame
		want  Output
	}{
		{"start", Frame{Tick: 0, State: "walk"}, Output{}},
		{"clamped move", Frame{Tick: 5, State: "walk"}, Output{Move: mgl64.Vec2{1, 0}}},
		{"jump on idle", Frame{Tick: 0, State: "idle"}, Output{Jump: true}},
		{"run while falling", Frame{Tick: 0, State: "fall", Velocity: mgl64.Vec3{0, -2, 0}}, Output{Run: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.Eval(tc.frame); got != tc.want {
				t.Fatalf("Eval = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDriverFailingTickYieldsNoInput(t *testing.T) {
	d, err := New("broken", []byte(`
move_x := 1.0
samples := [1.0]
if tick == 3 { move_x = samples[tick] }
`), quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := d.Eval(Frame{Tick: 3}); got != (Output{}) {
		t.Fatalf("expected no input on failure, got %+v", got)
	}
	if d.Failures() != 1 {
		t.Fatalf("expected one failure, got %d", d.Failures())
	}
	if got := d.Eval(Frame{Tick: 4}); got.Move != (mgl64.Vec2{1, 0}) {
		t.Fatalf("expected the script to recover, got %+v", got)
	}
}

func TestCompileError(t *testing.T) {
	if _, err := New("bad", []byte(`move_x := `), quietLogger()); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestEmbeddedScripts(t *testing.T) {
	for _, name := range []string{"walk_jump.tengo", "scripts/run_ledge.tengo"} {
		d, err := Load(name, quietLogger())
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if got := d.Eval(Frame{Tick: 20}); got.Move.X() != 1 {
			t.Fatalf("%s: expected to move right at tick 20, got %+v", name, got)
		}
	}
}

func TestApplyDrivesActions(t *testing.T) {
	in := component.NewInputActions()
	var jumps int
	in.Jump.Subscribe(component.InputStarted, func(component.InputEvent) { jumps++ })

	Apply(Output{Move: mgl64.Vec2{-1, 0}, Jump: true}, in)
	Apply(Output{Move: mgl64.Vec2{-1, 0}, Jump: true}, in)
	if jumps != 1 {
		t.Fatalf("a held jump should start once, got %d", jumps)
	}
	if got := in.Move.ReadValue(); got != (mgl64.Vec2{-1, 0}) {
		t.Fatalf("unexpected move %v", got)
	}
	Apply(Output{}, in)
	if in.Jump.IsPressed() || in.Run.IsPressed() {
		t.Fatalf("buttons should be released")
	}
}
