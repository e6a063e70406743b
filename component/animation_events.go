package component

// AnimationEventHandler receives clip events for the movement states.
type AnimationEventHandler interface {
	OnAnimationEnterEvent()
	OnAnimationExitEvent()
	OnAnimationTransitionEvent()
}

// AnimationEventRelay forwards clip events to a handler, dropping them while
// the animator is blending between clips on Layer.
type AnimationEventRelay struct {
	Animator Animator
	Handler  AnimationEventHandler
	Layer    int

	// Dropped counts events discarded during transitions.
	Dropped int
}

// NewAnimationEventRelay creates a relay on layer 0.
func NewAnimationEventRelay(animator Animator, handler AnimationEventHandler) *AnimationEventRelay {
	return &AnimationEventRelay{Animator: animator, Handler: handler}
}

// Emit forwards one event. It reports whether the event reached the handler.
func (r *AnimationEventRelay) Emit(kind AnimationEventKind) bool {
	if r == nil || r.Handler == nil {
		return false
	}
	if r.Animator != nil && r.Animator.IsInTransition(r.Layer) {
		r.Dropped++
		return false
	}
	switch kind {
	case AnimationEventEnter:
		r.Handler.OnAnimationEnterEvent()
	case AnimationEventExit:
		r.Handler.OnAnimationExitEvent()
	case AnimationEventTransition:
		r.Handler.OnAnimationTransitionEvent()
	default:
		return false
	}
	return true
}

// EmitAll forwards events in order.
func (r *AnimationEventRelay) EmitAll(kinds []AnimationEventKind) {
	for _, k := range kinds {
		r.Emit(k)
	}
}
