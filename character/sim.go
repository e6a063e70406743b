package character

import (
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/script"
	"github.com/sirupsen/logrus"
)

// DefaultTick is the fixed simulation step in seconds.
const DefaultTick = 1.0 / 60

// Sim runs one character in a level on a fixed tick. Input comes either from
// the host, which sets the input actions before Advance, or from a script.
type Sim struct {
	World     *physics.World
	Level     *prefabs.LevelSpec
	Character *Character
	Driver    *script.Driver
	Tick      float64

	ticks    int
	time     float64
	respawns int
	log      *logrus.Entry
}

// NewSim builds the level world and spawns the character at the level spawn.
func NewSim(level *prefabs.LevelSpec, spec *prefabs.CharacterSpec, log *logrus.Entry) (*Sim, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	world := physics.NewLevelWorld(level, log)
	c, err := New(world, spec, level.Spawn, nil, log)
	if err != nil {
		return nil, err
	}
	return &Sim{
		World:     world,
		Level:     level,
		Character: c,
		Tick:      DefaultTick,
		log:       log,
	}, nil
}

// Ticks is the number of completed ticks.
func (s *Sim) Ticks() int { return s.ticks }

// Time is the simulated time in seconds.
func (s *Sim) Time() float64 { return s.time }

// Respawns counts how often the character fell out of the level.
func (s *Sim) Respawns() int { return s.respawns }

// Advance runs one tick: script input, fixed update, world step, frame update.
func (s *Sim) Advance() {
	if s == nil || s.Character == nil {
		return
	}
	c := s.Character
	if s.Driver != nil {
		out := s.Driver.Eval(script.Frame{
			Tick:     s.ticks,
			Time:     s.time,
			State:    c.State().String(),
			Position: c.Body.Position(),
			Velocity: c.Body.Velocity(),
		})
		script.Apply(out, c.Input)
	}

	c.FixedUpdate(s.Tick)
	s.World.Step(s.Tick)
	c.Update(s.Tick)

	s.ticks++
	s.time += s.Tick

	if s.Level != nil && c.Body.Position().Y() < s.Level.KillY {
		s.respawns++
		c.Respawn(s.Level.Spawn)
	}
}

// Run advances n ticks.
func (s *Sim) Run(n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

// Replace swaps in a character built from spec at the current position.
func (s *Sim) Replace(spec *prefabs.CharacterSpec) error {
	pos := s.Character.Body.Position()
	input := s.Character.Input
	s.Character.Close()
	c, err := New(s.World, spec, pos.Vec2(), input, s.log)
	if err != nil {
		return err
	}
	s.Character = c
	return nil
}

// Grounded reports whether the character is in a grounded state.
func (s *Sim) Grounded() bool {
	return s.Character.State().Grounded()
}
