package component

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type phaseLog struct {
	phases []InputPhase
}

func (l *phaseLog) record(e InputEvent) { l.phases = append(l.phases, e.Phase) }

func subscribeAll(a *InputAction, l *phaseLog) []Subscription {
	return []Subscription{
		a.Subscribe(InputStarted, l.record),
		a.Subscribe(InputPerformed, l.record),
		a.Subscribe(InputCanceled, l.record),
	}
}

func TestInputActionPhases(t *testing.T) {
	cases := []struct {
		name   string
		values []mgl64.Vec2
		want   []InputPhase
	}{
		{"press_release", []mgl64.Vec2{{1, 0}, {}}, []InputPhase{InputStarted, InputPerformed, InputCanceled}},
		{"vector_change", []mgl64.Vec2{{0, 1}, {1, 0}}, []InputPhase{InputStarted, InputPerformed, InputPerformed}},
		{"same_value_is_silent", []mgl64.Vec2{{0, 1}, {0, 1}}, []InputPhase{InputStarted, InputPerformed}},
		{"zero_is_silent", []mgl64.Vec2{{}, {}}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewInputAction("move")
			var l phaseLog
			subscribeAll(a, &l)
			for _, v := range c.values {
				a.SetValue(v)
			}
			if len(l.phases) != len(c.want) {
				t.Fatalf("expected %v, got %v", c.want, l.phases)
			}
			for i := range c.want {
				if l.phases[i] != c.want[i] {
					t.Fatalf("expected %v, got %v", c.want, l.phases)
				}
			}
		})
	}
}

func TestInputActionDisableEnable(t *testing.T) {
	a := NewInputAction("move")
	var l phaseLog
	subscribeAll(a, &l)

	a.SetValue(mgl64.Vec2{0, 1})
	a.Disable()
	if got := a.ReadValue(); got != (mgl64.Vec2{}) {
		t.Fatalf("disabled action should read zero, got %v", got)
	}
	if l.phases[len(l.phases)-1] != InputCanceled {
		t.Fatalf("disable should cancel, got %v", l.phases)
	}

	n := len(l.phases)
	a.SetValue(mgl64.Vec2{1, 0})
	if len(l.phases) != n {
		t.Fatalf("disabled action fired callbacks: %v", l.phases[n:])
	}

	a.Enable()
	if got := l.phases[n:]; len(got) != 2 || got[0] != InputStarted || got[1] != InputPerformed {
		t.Fatalf("enable while held should start, got %v", got)
	}
	if got := a.ReadValue(); got != (mgl64.Vec2{1, 0}) {
		t.Fatalf("expected tracked value, got %v", got)
	}
}

func TestInputActionUnsubscribeDuringDispatch(t *testing.T) {
	a := NewInputAction("jump")
	calls := 0
	var second Subscription
	a.Subscribe(InputStarted, func(InputEvent) {
		calls++
		a.Unsubscribe(second)
		a.Subscribe(InputStarted, func(InputEvent) { calls += 100 })
	})
	second = a.Subscribe(InputStarted, func(InputEvent) { calls += 10 })

	a.Press()
	if calls != 1 {
		t.Fatalf("expected only the first handler to run, got %d", calls)
	}
	if a.HandlerCount() != 2 {
		t.Fatalf("expected 2 handlers, got %d", a.HandlerCount())
	}
}

func TestInputActionSubscriptionSymmetry(t *testing.T) {
	a := NewInputAction("run")
	var l phaseLog
	for i := 0; i < 10; i++ {
		subs := subscribeAll(a, &l)
		for _, s := range subs {
			a.Unsubscribe(s)
		}
	}
	if a.HandlerCount() != 0 {
		t.Fatalf("leaked %d handlers", a.HandlerCount())
	}
	a.Unsubscribe(12345)
}
