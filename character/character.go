// Package character assembles a movement controller on a physics body and
// runs it on a fixed tick.
package character

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/component"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/system"
	"github.com/sirupsen/logrus"
)

var ErrNoWorld = errors.New("character: physics world is required")

// Character is a movement controller wired to a body, an animator and an
// input action map.
type Character struct {
	Spec     *prefabs.CharacterSpec
	Movement *system.Movement
	Body     *physics.Body
	Capsule  *component.ResizableCapsule
	Animator *component.ParameterAnimator
	Relay    *component.AnimationEventRelay
	Input    *component.InputActions

	world *physics.World
	log   *logrus.Entry
}

// New spawns a character described by spec at spawn (the feet) and starts it.
func New(world *physics.World, spec *prefabs.CharacterSpec, spawn mgl64.Vec2, input *component.InputActions, log *logrus.Entry) (*Character, error) {
	if world == nil {
		return nil, ErrNoWorld
	}
	if spec == nil {
		return nil, fmt.Errorf("character: %w", system.ErrMissingConfig)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if input == nil {
		input = component.NewInputActions()
	}
	log = log.WithField("character", spec.Name)

	capsule := spec.Capsule()
	body := world.NewBody(physics.BodySpec{
		Position: spawn,
		Mass:     spec.Body.Mass,
		Layer:    spec.Body.Layer,
		Capsule:  capsule,
	})
	if body == nil {
		return nil, fmt.Errorf("character: %w", system.ErrMissingBody)
	}
	animator := spec.Animator()

	movement, err := system.NewMovement(system.Deps{
		Body:     body,
		Geometry: world,
		Animator: animator,
		Input:    input,
		Capsule:  capsule,
		Layers:   spec.Layers(),
		Config:   spec.MovementConfig(),
		Logger:   log,
	})
	if err != nil {
		world.RemoveBody(body)
		return nil, fmt.Errorf("character: %w", err)
	}

	c := &Character{
		Spec:     spec,
		Movement: movement,
		Body:     body,
		Capsule:  capsule,
		Animator: animator,
		Relay:    component.NewAnimationEventRelay(animator, movement),
		Input:    input,
		world:    world,
		log:      log,
	}
	body.SetContactListener(movement)
	movement.Start()
	log.WithField("spawn", spawn).Info("character spawned")
	return c, nil
}

// FixedUpdate runs the physics half of a tick. The host steps the world after it.
func (c *Character) FixedUpdate(dt float64) {
	if c == nil {
		return
	}
	c.Movement.PhysicsUpdate(dt)
}

// Update runs the frame half of a tick and feeds due clip events back.
func (c *Character) Update(dt float64) {
	if c == nil {
		return
	}
	c.Movement.Frame(dt)
	c.Relay.EmitAll(c.Animator.Advance(dt))
}

// Respawn teleports the character to spawn and restarts its movement.
func (c *Character) Respawn(spawn mgl64.Vec2) {
	if c == nil {
		return
	}
	c.Body.SetPosition(spawn)
	c.Body.SetVelocity(mgl64.Vec3{})
	c.Movement.Restart()
	c.log.WithField("spawn", spawn).Info("character respawned")
}

// Close releases the input bindings and removes the body.
func (c *Character) Close() {
	if c == nil {
		return
	}
	c.Movement.Stop()
	c.world.RemoveBody(c.Body)
}

// State returns the active movement state.
func (c *Character) State() system.StateID {
	if c == nil {
		return -1
	}
	return c.Movement.CurrentID()
}
