// Package script plays back input from tengo scripts. A script runs once per
// tick and sets the globals move_x, move_y, run and jump.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/component"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/sirupsen/logrus"
)

// Frame is what a script can read about the character.
type Frame struct {
	Tick     int
	Time     float64
	State    string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// Output is the input a script asked for.
type Output struct {
	Move mgl64.Vec2
	Run  bool
	Jump bool
}

type Driver struct {
	name     string
	compiled *tengo.Compiled
	log      *logrus.Entry
	failures int
}

// Load compiles a script from the prefab scripts directory.
func Load(name string, log *logrus.Entry) (*Driver, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return New(name, src, log)
}

// New compiles src.
func New(name string, src []byte, log *logrus.Entry) (*Driver, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := tengo.NewScript(src)
	_ = s.Add("tick", 0)
	_ = s.Add("time", 0.0)
	_ = s.Add("state", "")
	_ = s.Add("x", 0.0)
	_ = s.Add("y", 0.0)
	_ = s.Add("vx", 0.0)
	_ = s.Add("vy", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Driver{
		name:     name,
		compiled: compiled,
		log:      log.WithField("script", name),
	}, nil
}

// Name is the script the driver was built from.
func (d *Driver) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Failures counts the ticks whose evaluation failed.
func (d *Driver) Failures() int {
	if d == nil {
		return 0
	}
	return d.failures
}

// Eval runs the script for one tick. A failing tick yields no input.
func (d *Driver) Eval(f Frame) Output {
	if d == nil || d.compiled == nil {
		return Output{}
	}
	out, err := d.eval(f)
	if err != nil {
		d.failures++
		d.log.WithError(err).WithField("tick", f.Tick).Warn("script tick failed")
		return Output{}
	}
	return out
}

func (d *Driver) eval(f Frame) (Output, error) {
	c := d.compiled
	inputs := []struct {
		name  string
		value any
	}{
		{"tick", f.Tick},
		{"time", f.Time},
		{"state", f.State},
		{"x", f.Position.X()},
		{"y", f.Position.Y()},
		{"vx", f.Velocity.X()},
		{"vy", f.Velocity.Y()},
	}
	for _, in := range inputs {
		if err := c.Set(in.name, in.value); err != nil {
			return Output{}, err
		}
	}
	if err := c.Run(); err != nil {
		return Output{}, err
	}

	var out Output
	if c.IsDefined("move_x") {
		out.Move[0] = mgl64.Clamp(c.Get("move_x").Float(), -1, 1)
	}
	if c.IsDefined("move_y") {
		out.Move[1] = mgl64.Clamp(c.Get("move_y").Float(), -1, 1)
	}
	if c.IsDefined("run") {
		out.Run = c.Get("run").Bool()
	}
	if c.IsDefined("jump") {
		out.Jump = c.Get("jump").Bool()
	}
	return out, nil
}

// Apply drives the input actions with out, the way a gamepad would.
func Apply(out Output, in *component.InputActions) {
	if in == nil {
		return
	}
	in.Move.SetValue(out.Move)
	setButton(in.Run, out.Run)
	setButton(in.Jump, out.Jump)
}

func setButton(a *component.InputAction, pressed bool) {
	if pressed {
		a.Press()
		return
	}
	a.Release()
}
