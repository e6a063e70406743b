package component

import "fmt"

// AnimationSignal names an animator parameter.
type AnimationSignal int

const (
	AnimationGrounded AnimationSignal = iota
	AnimationAirborne
	AnimationSpeed
	AnimationRolling
	AnimationHardLanding
	AnimationFalling

	animationSignalCount
)

var animationSignalNames = [...]string{
	AnimationGrounded:    "grounded",
	AnimationAirborne:    "airborne",
	AnimationSpeed:       "speed",
	AnimationRolling:     "rolling",
	AnimationHardLanding: "hard_landing",
	AnimationFalling:     "falling",
}

func (s AnimationSignal) String() string {
	if s < 0 || s >= animationSignalCount {
		return fmt.Sprintf("signal(%d)", int(s))
	}
	return animationSignalNames[s]
}

// ParseAnimationSignal maps a config name back to its signal.
func ParseAnimationSignal(name string) (AnimationSignal, error) {
	for i, n := range animationSignalNames {
		if n == name {
			return AnimationSignal(i), nil
		}
	}
	return 0, fmt.Errorf("component: unknown animation signal %q", name)
}

// UnmarshalText lets signals be written by name in YAML.
func (s *AnimationSignal) UnmarshalText(text []byte) error {
	parsed, err := ParseAnimationSignal(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Animator is the parameter surface the movement states drive.
type Animator interface {
	SetBool(signal AnimationSignal, value bool)
	SetFloat(signal AnimationSignal, value float64)
	IsInTransition(layer int) bool
}

// AnimationEventKind is the kind of clip event fed back to the movement states.
type AnimationEventKind int

const (
	AnimationEventEnter AnimationEventKind = iota
	AnimationEventExit
	AnimationEventTransition
)

func (k AnimationEventKind) String() string {
	switch k {
	case AnimationEventEnter:
		return "enter"
	case AnimationEventExit:
		return "exit"
	case AnimationEventTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// ClipSpec describes a one-shot clip started by a rising edge of Signal.
// Event times are seconds from the clip start; a negative time disables the event.
type ClipSpec struct {
	Signal       AnimationSignal `yaml:"signal"`
	EnterAt      float64         `yaml:"enter_at"`
	ExitAt       float64         `yaml:"exit_at"`
	TransitionAt float64         `yaml:"transition_at"`
}

type playingClip struct {
	spec    ClipSpec
	elapsed float64
	fired   [3]bool
}

// ParameterAnimator is a minimal animator: a parameter table plus a single
// layer that plays one-shot clips and cross-fades between them.
type ParameterAnimator struct {
	// CrossFade is how long layer 0 reports a transition after a clip starts.
	CrossFade float64

	bools  [animationSignalCount]bool
	floats [animationSignalCount]float64
	clips  map[AnimationSignal]ClipSpec

	playing   *playingClip
	fadeLeft  float64
	fired     []AnimationEventKind
	OnChanged func(signal AnimationSignal)
}

// NewParameterAnimator creates an animator with the given clips.
func NewParameterAnimator(crossFade float64, clips ...ClipSpec) *ParameterAnimator {
	a := &ParameterAnimator{CrossFade: crossFade, clips: make(map[AnimationSignal]ClipSpec, len(clips))}
	for _, c := range clips {
		a.clips[c.Signal] = c
	}
	return a
}

// SetBool sets a boolean parameter. A false to true edge on a signal with a
// clip restarts the layer on that clip.
func (a *ParameterAnimator) SetBool(signal AnimationSignal, value bool) {
	if a == nil || signal < 0 || signal >= animationSignalCount {
		return
	}
	prev := a.bools[signal]
	a.bools[signal] = value
	if prev == value {
		return
	}
	if a.OnChanged != nil {
		a.OnChanged(signal)
	}
	if !value {
		return
	}
	if spec, ok := a.clips[signal]; ok {
		a.playing = &playingClip{spec: spec}
		a.fadeLeft = a.CrossFade
	}
}

// SetFloat sets a float parameter.
func (a *ParameterAnimator) SetFloat(signal AnimationSignal, value float64) {
	if a == nil || signal < 0 || signal >= animationSignalCount {
		return
	}
	a.floats[signal] = value
}

// Bool returns a boolean parameter.
func (a *ParameterAnimator) Bool(signal AnimationSignal) bool {
	if a == nil || signal < 0 || signal >= animationSignalCount {
		return false
	}
	return a.bools[signal]
}

// Float returns a float parameter.
func (a *ParameterAnimator) Float(signal AnimationSignal) float64 {
	if a == nil || signal < 0 || signal >= animationSignalCount {
		return 0
	}
	return a.floats[signal]
}

// IsInTransition reports whether layer is cross-fading. Only layer 0 exists.
func (a *ParameterAnimator) IsInTransition(layer int) bool {
	if a == nil || layer != 0 {
		return false
	}
	return a.fadeLeft > 0
}

// Playing returns the signal of the clip on layer 0.
func (a *ParameterAnimator) Playing() (AnimationSignal, bool) {
	if a == nil || a.playing == nil {
		return 0, false
	}
	return a.playing.spec.Signal, true
}

// Advance moves the layer forward by dt and returns the clip events that
// became due, in order. The returned slice is reused by the next call.
func (a *ParameterAnimator) Advance(dt float64) []AnimationEventKind {
	if a == nil {
		return nil
	}
	a.fired = a.fired[:0]
	if a.fadeLeft > 0 {
		a.fadeLeft -= dt
		if a.fadeLeft < 0 {
			a.fadeLeft = 0
		}
	}
	p := a.playing
	if p == nil {
		return a.fired
	}
	p.elapsed += dt
	at := [3]float64{p.spec.EnterAt, p.spec.ExitAt, p.spec.TransitionAt}
	for i, t := range at {
		if p.fired[i] || t < 0 || p.elapsed < t {
			continue
		}
		p.fired[i] = true
		a.fired = append(a.fired, AnimationEventKind(i))
	}
	if p.fired[0] || at[0] < 0 {
		if (p.fired[1] || at[1] < 0) && (p.fired[2] || at[2] < 0) {
			a.playing = nil
		}
	}
	return a.fired
}
