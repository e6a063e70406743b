package component

import "github.com/go-gl/mathgl/mgl64"

// InputPhase is the lifecycle step an action callback is fired for.
type InputPhase int

const (
	InputStarted InputPhase = iota
	InputPerformed
	InputCanceled
)

func (p InputPhase) String() string {
	switch p {
	case InputStarted:
		return "started"
	case InputPerformed:
		return "performed"
	case InputCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// buttonPressPoint is the magnitude at which a value reads as a pressed button.
const buttonPressPoint = 0.5

// InputEvent is passed to action callbacks.
type InputEvent struct {
	Action *InputAction
	Phase  InputPhase
	Value  mgl64.Vec2
}

// ReadValueAsButton reports whether the event value is past the press point.
func (e InputEvent) ReadValueAsButton() bool {
	return e.Value.Len() >= buttonPressPoint
}

// InputCallback handles one phase of an action.
type InputCallback func(e InputEvent)

// Subscription identifies a registered callback.
type Subscription uint64

type inputHandler struct {
	id    Subscription
	phase InputPhase
	fn    InputCallback
	alive bool
}

// InputAction is a value-carrying action fed by a device binding. Buttons use
// the X component of the value.
type InputAction struct {
	Name string

	enabled  bool
	value    mgl64.Vec2
	handlers []*inputHandler
	nextID   Subscription
}

// NewInputAction creates an enabled action.
func NewInputAction(name string) *InputAction {
	return &InputAction{Name: name, enabled: true}
}

// Subscribe registers fn for phase and returns a handle for Unsubscribe.
func (a *InputAction) Subscribe(phase InputPhase, fn InputCallback) Subscription {
	if a == nil || fn == nil {
		return 0
	}
	a.nextID++
	a.handlers = append(a.handlers, &inputHandler{id: a.nextID, phase: phase, fn: fn, alive: true})
	return a.nextID
}

// Unsubscribe removes a callback. Unknown handles are ignored.
func (a *InputAction) Unsubscribe(sub Subscription) {
	if a == nil || sub == 0 {
		return
	}
	for i, h := range a.handlers {
		if h.id != sub {
			continue
		}
		h.alive = false
		a.handlers = append(a.handlers[:i:i], a.handlers[i+1:]...)
		return
	}
}

// HandlerCount returns the number of registered callbacks.
func (a *InputAction) HandlerCount() int {
	if a == nil {
		return 0
	}
	return len(a.handlers)
}

// Enabled reports whether the action reads and emits values.
func (a *InputAction) Enabled() bool {
	return a != nil && a.enabled
}

// Enable turns the action on. If its control is already actuated the action
// starts immediately.
func (a *InputAction) Enable() {
	if a == nil || a.enabled {
		return
	}
	a.enabled = true
	if a.actuated() {
		a.trigger(InputStarted, a.value)
		a.trigger(InputPerformed, a.value)
	}
}

// Disable turns the action off, canceling it if it is in progress.
func (a *InputAction) Disable() {
	if a == nil || !a.enabled {
		return
	}
	wasActive := a.actuated()
	a.enabled = false
	if wasActive {
		a.trigger(InputCanceled, mgl64.Vec2{})
	}
}

// ReadValue returns the current value, or zero while disabled.
func (a *InputAction) ReadValue() mgl64.Vec2 {
	if a == nil || !a.enabled {
		return mgl64.Vec2{}
	}
	return a.value
}

// IsPressed reports whether the action reads as a pressed button.
func (a *InputAction) IsPressed() bool {
	return a.ReadValue().Len() >= buttonPressPoint
}

// SetValue updates the bound control and fires the matching phases when
// the action is enabled. Disabled actions track the control silently.
func (a *InputAction) SetValue(v mgl64.Vec2) {
	if a == nil {
		return
	}
	was := a.actuated()
	prev := a.value
	a.value = v
	if !a.enabled {
		return
	}
	now := a.actuated()
	switch {
	case !was && now:
		a.trigger(InputStarted, v)
		a.trigger(InputPerformed, v)
	case was && now && prev != v:
		a.trigger(InputPerformed, v)
	case was && !now:
		a.trigger(InputCanceled, v)
	}
}

// Press sets a button action to fully pressed.
func (a *InputAction) Press() { a.SetValue(mgl64.Vec2{1, 0}) }

// Release sets a button action to released.
func (a *InputAction) Release() { a.SetValue(mgl64.Vec2{}) }

func (a *InputAction) actuated() bool {
	return a.value != (mgl64.Vec2{})
}

func (a *InputAction) trigger(phase InputPhase, v mgl64.Vec2) {
	if len(a.handlers) == 0 {
		return
	}
	// callbacks may switch state and (un)subscribe; dispatch over a snapshot
	// and skip handlers removed meanwhile
	snapshot := make([]*inputHandler, len(a.handlers))
	copy(snapshot, a.handlers)
	evt := InputEvent{Action: a, Phase: phase, Value: v}
	for _, h := range snapshot {
		if !h.alive || h.phase != phase {
			continue
		}
		h.fn(evt)
	}
}

// InputActions is the action map the movement states bind to.
type InputActions struct {
	Move *InputAction
	Run  *InputAction
	Jump *InputAction
	Look *InputAction
}

// NewInputActions creates an enabled action map.
func NewInputActions() *InputActions {
	return &InputActions{
		Move: NewInputAction("move"),
		Run:  NewInputAction("run"),
		Jump: NewInputAction("jump"),
		Look: NewInputAction("look"),
	}
}

// Actions lists every action in a fixed order.
func (m *InputActions) Actions() []*InputAction {
	if m == nil {
		return nil
	}
	return []*InputAction{m.Move, m.Run, m.Jump, m.Look}
}
