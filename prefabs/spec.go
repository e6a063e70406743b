package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/component"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is wrapped by every validation failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// DefaultGroundLayer is the ground layer used when a character names none.
const DefaultGroundLayer component.Layer = 3

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CharacterSpec struct {
	Name      string                   `yaml:"name"`
	Movement  component.MovementConfig `yaml:"movement"`
	Collider  ColliderSpec             `yaml:"collider"`
	Body      BodySpec                 `yaml:"body"`
	Animation AnimationSpec            `yaml:"animation"`
	Color     *YAMLColor               `yaml:"color"`
}

type ColliderSpec struct {
	Default component.DefaultColliderData `yaml:"default"`
	Slope   component.SlopeData           `yaml:"slope"`
	Trigger component.TriggerColliderData `yaml:"trigger"`
}

type BodySpec struct {
	Mass         float64           `yaml:"mass"`
	Layer        component.Layer   `yaml:"layer"`
	GroundLayers []component.Layer `yaml:"ground_layers"`
}

type AnimationSpec struct {
	CrossFade float64              `yaml:"cross_fade"`
	Clips     []component.ClipSpec `yaml:"clips"`
}

// LoadCharacterSpec loads, defaults and validates a character prefab.
func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// ApplyDefaults fills fields the prefab left out and sorts curve keys.
func (s *CharacterSpec) ApplyDefaults() {
	if s == nil {
		return
	}
	g := &s.Movement.Grounded
	setDefault(&g.BaseSpeed, 5)
	setDefault(&g.GroundToFallRayDistance, 1)
	setDefault(&g.WalkData.SpeedModifier, 0.225)
	setDefault(&g.RunData.SpeedModifier, 1)
	setDefault(&g.RunData.RunToWalkTime, 0.5)
	setDefault(&g.RollData.SpeedModifier, 1)
	setDefault(&g.BaseRotationData.TargetRotationReachTime[1], 0.14)
	defaultCurve(&g.SlopeSpeedAngles)

	a := &s.Movement.Airborne
	setDefault(&a.JumpData.RotationData.TargetRotationReachTime[1], 1)
	setDefault(&a.JumpData.JumpToGroundRayDistance, 2)
	setDefault(&a.FallData.FallSpeedLimit, 10)
	setDefault(&a.FallData.MinimumDistanceToBeConsideredHardFall, 3)
	defaultCurve(&a.JumpData.JumpForceModifierOnSlopeUpwards)
	defaultCurve(&a.JumpData.JumpForceModifierOnSlopeDownwards)

	c := &s.Collider
	setDefault(&c.Default.Height, 1.8)
	setDefault(&c.Default.CenterY, 0.9)
	setDefault(&c.Default.Radius, 0.2)
	setDefault(&c.Slope.FloatRayDistance, 2)
	setDefault(&c.Slope.StepReachForce, 25)
	if c.Trigger.Size == (mgl64.Vec3{}) {
		c.Trigger.Size = mgl64.Vec3{0.3, 0.1, 0.3}
	}

	setDefault(&s.Body.Mass, 1)
	if len(s.Body.GroundLayers) == 0 {
		s.Body.GroundLayers = []component.Layer{DefaultGroundLayer}
	}
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func defaultCurve(c *common.Curve) {
	if len(c.Keys) == 0 {
		*c = common.ConstantCurve(1)
		return
	}
	c.Sort()
}

// Validate rejects values the movement states cannot run with.
func (s *CharacterSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil character", ErrInvalidSpec)
	}
	g := s.Movement.Grounded
	a := s.Movement.Airborne
	checks := []struct {
		ok    bool
		field string
	}{
		{g.BaseSpeed > 0, "movement.grounded.base_speed"},
		{g.GroundToFallRayDistance > 0, "movement.grounded.ground_to_fall_ray_distance"},
		{g.JumpDelay >= 0, "movement.grounded.jump_delay"},
		{g.IdleData.SpeedModifier >= 0, "movement.grounded.idle.speed_modifier"},
		{g.WalkData.SpeedModifier >= 0, "movement.grounded.walk.speed_modifier"},
		{g.RunData.SpeedModifier >= 0, "movement.grounded.run.speed_modifier"},
		{g.RunData.RunToWalkTime >= 0, "movement.grounded.run.run_to_walk_time"},
		{g.RollData.SpeedModifier >= 0, "movement.grounded.roll.speed_modifier"},
		{g.BaseRotationData.TargetRotationReachTime.Y() >= 0, "movement.grounded.base_rotation"},
		{a.JumpData.RotationData.TargetRotationReachTime.Y() >= 0, "movement.airborne.jump.rotation"},
		{a.JumpData.JumpToGroundRayDistance > 0, "movement.airborne.jump.jump_to_ground_ray_distance"},
		{a.JumpData.DecelerationForce >= 0, "movement.airborne.jump.deceleration_force"},
		{a.FallData.FallSpeedLimit > 0, "movement.airborne.fall.fall_speed_limit"},
		{a.FallData.MinimumDistanceToBeConsideredHardFall >= 0, "movement.airborne.fall.hard_fall_distance"},
		{s.Collider.Default.Height > 0, "collider.default.height"},
		{s.Collider.Default.Radius > 0, "collider.default.radius"},
		{s.Collider.Slope.StepHeightPercentage >= 0 && s.Collider.Slope.StepHeightPercentage < 1, "collider.slope.step_height_percentage"},
		{s.Collider.Slope.FloatRayDistance > 0, "collider.slope.float_ray_distance"},
		{s.Collider.Slope.StepReachForce >= 0, "collider.slope.step_reach_force"},
		{s.Body.Mass > 0, "body.mass"},
		{s.Animation.CrossFade >= 0, "animation.cross_fade"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidSpec, c.field)
		}
	}
	for _, l := range append([]component.Layer{s.Body.Layer}, s.Body.GroundLayers...) {
		if l < 0 || l > 31 {
			return fmt.Errorf("%w: layer %d out of range", ErrInvalidSpec, l)
		}
	}
	for _, l := range s.Body.GroundLayers {
		if l == s.Body.Layer {
			return fmt.Errorf("%w: body layer %d is also a ground layer", ErrInvalidSpec, l)
		}
	}
	return nil
}

// Capsule builds the sized capsule for the character.
func (s *CharacterSpec) Capsule() *component.ResizableCapsule {
	return component.NewResizableCapsule(s.Collider.Default, s.Collider.Slope, s.Collider.Trigger)
}

// Layers returns the ground layer mask.
func (s *CharacterSpec) Layers() component.LayerData {
	return component.LayerData{GroundLayer: component.MaskOf(s.Body.GroundLayers...)}
}

// Animator builds a parameter animator with the authored clips.
func (s *CharacterSpec) Animator() *component.ParameterAnimator {
	return component.NewParameterAnimator(s.Animation.CrossFade, s.Animation.Clips...)
}

// MovementConfig returns a copy the character owns.
func (s *CharacterSpec) MovementConfig() *component.MovementConfig {
	cfg := s.Movement
	return &cfg
}

type LevelSpec struct {
	Name     string        `yaml:"name"`
	Gravity  float64       `yaml:"gravity"`
	Spawn    mgl64.Vec2    `yaml:"spawn"`
	KillY    float64       `yaml:"kill_y"`
	Segments []SegmentSpec `yaml:"segments"`
	Boxes    []BoxSpec     `yaml:"boxes"`
}

type SegmentSpec struct {
	Name   string          `yaml:"name"`
	From   mgl64.Vec2      `yaml:"from"`
	To     mgl64.Vec2      `yaml:"to"`
	Radius float64         `yaml:"radius"`
	Layer  component.Layer `yaml:"layer"`
	Color  *YAMLColor      `yaml:"color"`
}

type BoxSpec struct {
	Name    string          `yaml:"name"`
	Min     mgl64.Vec2      `yaml:"min"`
	Max     mgl64.Vec2      `yaml:"max"`
	Layer   component.Layer `yaml:"layer"`
	Trigger bool            `yaml:"trigger"`
	Color   *YAMLColor      `yaml:"color"`
}

// LoadLevelSpec loads and validates a level prefab.
func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Gravity == 0 {
		spec.Gravity = -9.81
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (l *LevelSpec) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: nil level", ErrInvalidSpec)
	}
	if len(l.Segments) == 0 && len(l.Boxes) == 0 {
		return fmt.Errorf("%w: level %q has no geometry", ErrInvalidSpec, l.Name)
	}
	if l.KillY >= l.Spawn.Y() {
		return fmt.Errorf("%w: kill_y must be below the spawn", ErrInvalidSpec)
	}
	for i, s := range l.Segments {
		if s.From == s.To {
			return fmt.Errorf("%w: segment %d is degenerate", ErrInvalidSpec, i)
		}
	}
	for i, b := range l.Boxes {
		if b.Max.X() <= b.Min.X() || b.Max.Y() <= b.Min.Y() {
			return fmt.Errorf("%w: box %d has no area", ErrInvalidSpec, i)
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when none was authored.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
