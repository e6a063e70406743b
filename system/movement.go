package system

import (
	"errors"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/milk9111/locomotion/component"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingBody     = errors.New("locomotion: rigid body is required")
	ErrMissingGeometry = errors.New("locomotion: geometry query is required")
	ErrMissingAnimator = errors.New("locomotion: animator is required")
	ErrMissingInput    = errors.New("locomotion: input actions are required")
	ErrMissingProbe    = errors.New("locomotion: capsule probe is required")
	ErrMissingConfig   = errors.New("locomotion: movement config is required")
)

// Deps are the collaborators a Movement drives.
type Deps struct {
	Body     component.Rigidbody
	Geometry component.GeometryQuery
	Animator component.Animator
	Input    *component.InputActions
	Capsule  *component.ResizableCapsule
	Layers   component.LayerData
	Config   *component.MovementConfig

	// Heading is the reference yaw for input. Defaults to a fixed yaw of 0.
	Heading component.Heading
	// Logger defaults to the standard logrus logger.
	Logger *logrus.Entry
}

// Movement owns the locomotion context and the eight movement states, and
// resolves transitions between them. It is driven by the host through the
// embedded StateMachine callbacks plus Update and PhysicsUpdate.
type Movement struct {
	StateMachine

	body     component.Rigidbody
	geometry component.GeometryQuery
	animator component.Animator
	input    *component.InputActions
	capsule  *component.ResizableCapsule
	layers   component.LayerData
	cfg      *component.MovementConfig
	heading  component.Heading

	ctx    *component.LocomotionContext
	states *orderedmap.OrderedMap[StateID, MovementState]
	log    *logrus.Entry

	// OnTransition observes every transition after the new state entered.
	OnTransition func(from, to StateID)
}

// NewMovement validates deps and builds every state once.
func NewMovement(d Deps) (*Movement, error) {
	switch {
	case d.Body == nil:
		return nil, ErrMissingBody
	case d.Geometry == nil:
		return nil, ErrMissingGeometry
	case d.Animator == nil:
		return nil, ErrMissingAnimator
	case d.Capsule == nil:
		return nil, ErrMissingProbe
	case d.Config == nil:
		return nil, ErrMissingConfig
	case d.Input == nil:
		return nil, ErrMissingInput
	}
	for _, a := range []struct {
		name   string
		action *component.InputAction
	}{{"move", d.Input.Move}, {"run", d.Input.Run}, {"jump", d.Input.Jump}} {
		if a.action == nil {
			return nil, fmt.Errorf("%w: %s action", ErrMissingInput, a.name)
		}
	}

	heading := d.Heading
	if heading == nil {
		heading = component.FixedHeading(0)
	}
	log := d.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	m := &Movement{
		body:     d.Body,
		geometry: d.Geometry,
		animator: d.Animator,
		input:    d.Input,
		capsule:  d.Capsule,
		layers:   d.Layers,
		cfg:      d.Config,
		heading:  heading,
		ctx:      component.NewLocomotionContext(),
		states:   orderedmap.NewOrderedMap[StateID, MovementState](),
		log:      log.WithField("component", "locomotion"),
	}
	m.ctx.UseRotationData(m.cfg.Grounded.BaseRotationData)

	m.register(newIdleState(m))
	m.register(newWalkState(m))
	m.register(newRunState(m))
	m.register(newLightLandState(m))
	m.register(newRollState(m))
	m.register(newHardLandState(m))
	m.register(newJumpState(m))
	m.register(newFallState(m))

	m.StateMachine.OnSwitch = m.transitioned
	return m, nil
}

func (m *Movement) register(s MovementState) {
	m.states.Set(s.ID(), s)
}

// Start enters the initial state.
func (m *Movement) Start() {
	if m == nil {
		return
	}
	m.log.WithField("states", m.states.Len()).Debug("starting movement")
	m.switchTo(StateIdle)
}

// Restart exits the active state, clears per-run context and enters Idle
// again. Input actions a state disabled are enabled.
func (m *Movement) Restart() {
	if m == nil {
		return
	}
	m.StateMachine.Stop()
	m.ctx.ShouldRun = false
	m.ctx.JumpEnable.Cancel()
	m.ctx.UseRotationData(m.cfg.Grounded.BaseRotationData)
	for _, a := range m.input.Actions() {
		a.Enable()
	}
	m.log.Debug("movement restarted")
	m.switchTo(StateIdle)
}

// Stop exits the active state so the movement releases its input bindings.
// A jump re-enable still pending fires now, since the input map may outlive
// this movement.
func (m *Movement) Stop() {
	if m == nil {
		return
	}
	m.StateMachine.Stop()
	if m.ctx.JumpEnable.Pending {
		m.ctx.JumpEnable.Cancel()
		m.input.Jump.Enable()
	}
}

// switchTo is the transition target resolver every state uses.
func (m *Movement) switchTo(id StateID) {
	s, ok := m.states.Get(id)
	if !ok {
		m.log.WithField("to", id).Warn("unknown movement state")
		return
	}
	m.SwitchState(s)
}

func (m *Movement) transitioned(from, to MovementState) {
	fromID := StateID(-1)
	if from != nil {
		fromID = from.ID()
	}
	m.log.WithFields(logrus.Fields{"from": fromID, "to": to.ID()}).Debug("state transition")
	if m.OnTransition != nil {
		m.OnTransition(fromID, to.ID())
	}
}

// Update advances the frame clock, fires the pending jump re-enable and then
// updates the active state.
func (m *Movement) Update(dt float64) {
	if m == nil {
		return
	}
	m.ctx.Time += dt
	if m.ctx.JumpEnable.Due(m.ctx.Time) {
		m.input.Jump.Enable()
	}
	m.StateMachine.Update(dt)
}

// Frame is HandleInput followed by Update, in the order a host frame runs them.
func (m *Movement) Frame(dt float64) {
	if m == nil {
		return
	}
	m.HandleInput()
	m.Update(dt)
}

// Context returns the shared locomotion context.
func (m *Movement) Context() *component.LocomotionContext {
	if m == nil {
		return nil
	}
	return m.ctx
}

// CurrentID returns the active state, or -1 before Start.
func (m *Movement) CurrentID() StateID {
	if m == nil || m.Current() == nil {
		return -1
	}
	return m.Current().ID()
}

// State returns the instance registered for id.
func (m *Movement) State(id StateID) (MovementState, bool) {
	if m == nil {
		return nil, false
	}
	return m.states.Get(id)
}

// StateIDs lists the registered states in construction order.
func (m *Movement) StateIDs() []StateID {
	if m == nil {
		return nil
	}
	return m.states.Keys()
}

// Config returns the movement configuration.
func (m *Movement) Config() *component.MovementConfig {
	if m == nil {
		return nil
	}
	return m.cfg
}
