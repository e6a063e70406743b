package system

import (
	"fmt"

	"github.com/milk9111/locomotion/component"
)

// StateID names a movement state.
type StateID int

const (
	StateIdle StateID = iota
	StateWalk
	StateRun
	StateLightLand
	StateRoll
	StateHardLand
	StateJump
	StateFall

	stateCount
)

var stateNames = [...]string{
	StateIdle:      "idle",
	StateWalk:      "walk",
	StateRun:       "run",
	StateLightLand: "light_land",
	StateRoll:      "roll",
	StateHardLand:  "hard_land",
	StateJump:      "jump",
	StateFall:      "fall",
}

func (id StateID) String() string {
	if id < 0 || id >= stateCount {
		return fmt.Sprintf("state(%d)", int(id))
	}
	return stateNames[id]
}

// Grounded reports whether the state keeps the character on the ground.
func (id StateID) Grounded() bool {
	return id >= StateIdle && id <= StateHardLand
}

// MovementState is one locomotion state. Implementations are constructed once
// and reused across transitions.
type MovementState interface {
	ID() StateID
	Enter()
	Exit()
	HandleInput()
	Update(dt float64)
	PhysicsUpdate(dt float64)
	OnGroundContactEnter(c component.Collider)
	OnGroundContactExit(c component.Collider)
	OnAnimationEnterEvent()
	OnAnimationExitEvent()
	OnAnimationTransitionEvent()
}

// StateMachine holds the active state and forwards every callback to it.
// Forwarding with no active state does nothing.
type StateMachine struct {
	current MovementState

	// OnSwitch observes transitions after the new state has entered.
	OnSwitch func(from, to MovementState)
}

// SwitchState exits the current state, if any, and enters next.
func (sm *StateMachine) SwitchState(next MovementState) {
	if sm == nil || next == nil {
		return
	}
	prev := sm.current
	if prev != nil {
		prev.Exit()
	}
	sm.current = next
	next.Enter()
	if sm.OnSwitch != nil {
		sm.OnSwitch(prev, next)
	}
}

// Stop exits the current state and leaves the machine without one.
func (sm *StateMachine) Stop() {
	if sm == nil || sm.current == nil {
		return
	}
	prev := sm.current
	sm.current = nil
	prev.Exit()
}

// Current returns the active state or nil before the first switch.
func (sm *StateMachine) Current() MovementState {
	if sm == nil {
		return nil
	}
	return sm.current
}

func (sm *StateMachine) HandleInput() {
	if sm == nil || sm.current == nil {
		return
	}
	sm.current.HandleInput()
}

func (sm *StateMachine) Update(dt float64) {
	if sm == nil || sm.current == nil {
		return
	}
	sm.current.Update(dt)
}

func (sm *StateMachine) PhysicsUpdate(dt float64) {
	if sm == nil || sm.current == nil {
		return
	}
	sm.current.PhysicsUpdate(dt)
}

func (sm *StateMachine) OnGroundContactEnter(c component.Collider) {
	if sm == nil || sm.current == nil {
		return
	}
	sm.current.OnGroundContactEnter(c)
}

func (sm *StateMachine) OnGroundContactExit(c component.Collider) {
	if sm == nil || sm.current == nil {
		return
	}
	sm.current.OnGroundContactExit(c)
}

func (sm *StateMachine) OnAnimationEnterEvent() {
	if sm == nil || sm.current == nil {
		return
	}
	sm.current.OnAnimationEnterEvent()
}

func (sm *StateMachine) OnAnimationExitEvent() {
	if sm == nil || sm.current == nil {
		return
	}
	sm.current.OnAnimationExitEvent()
}

func (sm *StateMachine) OnAnimationTransitionEvent() {
	if sm == nil || sm.current == nil {
		return
	}
	sm.current.OnAnimationTransitionEvent()
}
