package component

import "testing"

type eventCounter struct {
	enter, exit, transition int
}

func (c *eventCounter) OnAnimationEnterEvent()      { c.enter++ }
func (c *eventCounter) OnAnimationExitEvent()       { c.exit++ }
func (c *eventCounter) OnAnimationTransitionEvent() { c.transition++ }

func TestParameterAnimatorClipEvents(t *testing.T) {
	a := NewParameterAnimator(0.1, ClipSpec{Signal: AnimationHardLanding, EnterAt: 0.15, ExitAt: 0.4, TransitionAt: 0.6})
	var counter eventCounter
	relay := NewAnimationEventRelay(a, &counter)

	a.SetBool(AnimationHardLanding, true)
	if !a.IsInTransition(0) {
		t.Fatal("expected cross-fade after clip start")
	}
	if a.IsInTransition(1) {
		t.Fatal("only layer 0 blends")
	}

	for i := 0; i < 40; i++ {
		relay.EmitAll(a.Advance(0.02))
	}
	if counter.enter != 1 || counter.exit != 1 || counter.transition != 1 {
		t.Fatalf("unexpected events %+v", counter)
	}
	if _, ok := a.Playing(); ok {
		t.Fatal("clip should have finished")
	}
}

func TestAnimationEventRelayDropsDuringTransition(t *testing.T) {
	a := NewParameterAnimator(0.5, ClipSpec{Signal: AnimationRolling, EnterAt: 0, ExitAt: -1, TransitionAt: -1})
	var counter eventCounter
	relay := NewAnimationEventRelay(a, &counter)

	a.SetBool(AnimationRolling, true)
	relay.EmitAll(a.Advance(0.1))
	if counter.enter != 0 || relay.Dropped != 1 {
		t.Fatalf("expected the enter event to be dropped, got %+v dropped=%d", counter, relay.Dropped)
	}

	for i := 0; i < 10; i++ {
		a.Advance(0.1)
	}
	if !relay.Emit(AnimationEventTransition) || counter.transition != 1 {
		t.Fatal("expected event to pass once blending finished")
	}
}

func TestParameterAnimatorParameters(t *testing.T) {
	a := NewParameterAnimator(0)
	changed := 0
	a.OnChanged = func(AnimationSignal) { changed++ }

	a.SetBool(AnimationGrounded, true)
	a.SetBool(AnimationGrounded, true)
	a.SetFloat(AnimationSpeed, 0.5)
	if !a.Bool(AnimationGrounded) || a.Float(AnimationSpeed) != 0.5 {
		t.Fatal("parameters not stored")
	}
	if changed != 1 {
		t.Fatalf("expected one change, got %d", changed)
	}
	if a.IsInTransition(0) {
		t.Fatal("no clip bound to grounded")
	}
}

func TestParseAnimationSignal(t *testing.T) {
	for s := AnimationGrounded; s < animationSignalCount; s++ {
		got, err := ParseAnimationSignal(s.String())
		if err != nil || got != s {
			t.Fatalf("round trip of %v failed: %v %v", s, got, err)
		}
	}
	if _, err := ParseAnimationSignal("bogus"); err == nil {
		t.Fatal("expected error")
	}
}
