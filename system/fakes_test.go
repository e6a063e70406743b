package system

import (
	"io"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/component"
	"github.com/sirupsen/logrus"
)

const groundLayer component.Layer = 3

var groundCollider = component.Collider{Name: "ground", Layer: groundLayer}

type appliedForce struct {
	force mgl64.Vec3
	mode  component.ForceMode
}

// fakeBody applies forces on Step, like the engine does.
type fakeBody struct {
	pos   mgl64.Vec3
	vel   mgl64.Vec3
	rot   mgl64.Quat
	scale float64

	pendingChange mgl64.Vec3
	pendingAccel  mgl64.Vec3
	forces        []appliedForce
}

func newFakeBody() *fakeBody {
	return &fakeBody{rot: mgl64.QuatIdent(), scale: 1}
}

func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) { b.vel = v }
func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Rotation() mgl64.Quat { return b.rot }
func (b *fakeBody) MoveRotation(q mgl64.Quat) { b.rot = q }
func (b *fakeBody) Scale() float64 { return b.scale }
func (b *fakeBody) yaw() float64 { return common.YawOf(b.rot) }
func (b *fakeBody) resetForces() { b.forces = b.forces[:0] }

func (b *fakeBody) AddForce(f mgl64.Vec3, mode component.ForceMode) {
	b.forces = append(b.forces, appliedForce{force: f, mode: mode})
	switch mode {
	case component.ForceModeVelocityChange:
		b.pendingChange = b.pendingChange.Add(f)
	case component.ForceModeAcceleration:
		b.pendingAccel = b.pendingAccel.Add(f)
	}
}

func (b *fakeBody) Step(dt float64) {
	b.vel = b.vel.Add(b.pendingChange).Add(b.pendingAccel.Mul(dt))
	b.pendingChange = mgl64.Vec3{}
	b.pendingAccel = mgl64.Vec3{}
	b.pos = b.pos.Add(b.vel.Mul(dt))
}

func (b *fakeBody) horizontalForces() []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, f := range b.forces {
		if h := common.Horizontal(f.force); h.Len() > 0 {
			out = append(out, h)
		}
	}
	return out
}

// fakeGeometry is an infinite ground plane at groundY with a fixed normal.
type fakeGeometry struct {
	hasGround bool
	groundY   float64
	normal    mgl64.Vec3
	overlap   bool

	rays     int
	overlaps int
}

func (g *fakeGeometry) Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask component.LayerMask) (component.RaycastHit, bool) {
	g.rays++
	if !g.hasGround || mask == 0 || direction.Y() >= 0 {
		return component.RaycastHit{}, false
	}
	d := origin.Y() - g.groundY
	if d < 0 || d > maxDistance {
		return component.RaycastHit{}, false
	}
	return component.RaycastHit{
		Point:    mgl64.Vec3{origin.X(), g.groundY, origin.Z()},
		Normal:   g.normal,
		Distance: d,
		Collider: groundCollider,
	}, true
}

func (g *fakeGeometry) OverlapBox(center, half mgl64.Vec3, rot mgl64.Quat, mask component.LayerMask) []component.Collider {
	g.overlaps++
	if !g.overlap {
		return nil
	}
	return []component.Collider{groundCollider}
}

type fakeAnimator struct {
	bools        map[component.AnimationSignal]bool
	floats       map[component.AnimationSignal]float64
	inTransition bool
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{
		bools:  make(map[component.AnimationSignal]bool),
		floats: make(map[component.AnimationSignal]float64),
	}
}

func (a *fakeAnimator) SetBool(s component.AnimationSignal, v bool) { a.bools[s] = v }
func (a *fakeAnimator) SetFloat(s component.AnimationSignal, v float64) { a.floats[s] = v }
func (a *fakeAnimator) IsInTransition(layer int) bool { return a.inTransition }

func testConfig() *component.MovementConfig {
	return &component.MovementConfig{
		Grounded: component.GroundedData{
			BaseSpeed:               5,
			GroundToFallRayDistance: 1,
			SlopeSpeedAngles: common.Curve{Linear: true, Keys: []common.Keyframe{
				{Time: 0, Value: 1},
				{Time: 30, Value: 1},
				{Time: 45, Value: 0.5},
			}},
			BaseRotationData: component.RotationData{TargetRotationReachTime: mgl64.Vec3{0, 0.5, 0}},
			JumpDelay:        0.25,
			IdleData:         component.IdleData{SpeedModifier: 0},
			WalkData:         component.WalkData{SpeedModifier: 0.225},
			RunData:          component.RunData{SpeedModifier: 1, RunToWalkTime: 0.5},
			RollData:         component.RollData{SpeedModifier: 1},
		},
		Airborne: component.AirborneData{
			JumpData: component.JumpData{
				RotationData:                      component.RotationData{TargetRotationReachTime: mgl64.Vec3{0, 1, 0}},
				JumpToGroundRayDistance:           2,
				JumpForceModifierOnSlopeUpwards:   common.Curve{Linear: true, ClampEnds: true, Keys: []common.Keyframe{{Time: 0, Value: 1}, {Time: 45, Value: 0.5}}},
				JumpForceModifierOnSlopeDownwards: common.Curve{Linear: true, ClampEnds: true, Keys: []common.Keyframe{{Time: 0, Value: 1}, {Time: 45, Value: 0.25}}},
				StationaryForce:                   mgl64.Vec3{0, 5, 0},
				WeakForce:                         mgl64.Vec3{1, 5, 1},
				MediumForce:                       mgl64.Vec3{3.5, 5, 3.5},
				DecelerationForce:                 1.5,
			},
			FallData: component.FallData{FallSpeedLimit: 10, MinimumDistanceToBeConsideredHardFall: 3},
		},
	}
}

type harness struct {
	m     *Movement
	body  *fakeBody
	geo   *fakeGeometry
	anim  *fakeAnimator
	input *component.InputActions
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		body:  newFakeBody(),
		geo:   &fakeGeometry{normal: common.Up},
		anim:  newFakeAnimator(),
		input: component.NewInputActions(),
	}
	h.m = h.newMovement(t)
	h.m.Start()
	return h
}

// newMovement builds a movement on the harness collaborators, sharing its
// input map the way a rebuilt character does.
func (h *harness) newMovement(t *testing.T) *Movement {
	t.Helper()
	capsule := component.NewResizableCapsule(
		component.DefaultColliderData{Height: 1.8, CenterY: 0.9, Radius: 0.2},
		component.SlopeData{StepHeightPercentage: 0.25, FloatRayDistance: 2, StepReachForce: 25},
		component.TriggerColliderData{Size: mgl64.Vec3{0.3, 0.1, 0.3}},
	)
	m, err := NewMovement(Deps{
		Body:     h.body,
		Geometry: h.geo,
		Animator: h.anim,
		Input:    h.input,
		Capsule:  capsule,
		Layers:   component.LayerData{GroundLayer: component.MaskOf(groundLayer)},
		Config:   testConfig(),
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewMovement: %v", err)
	}
	return m
}

// physicsStep runs one fixed step: the state applies forces, then the body integrates them.
func (h *harness) physicsStep(dt float64) {
	h.m.PhysicsUpdate(dt)
	h.body.Step(dt)
}

func (h *harness) expectState(t *testing.T, want StateID) {
	t.Helper()
	if got := h.m.CurrentID(); got != want {
		t.Fatalf("expected state %s, got %s", want, got)
	}
}

func totalHandlers(in *component.InputActions) int {
	n := 0
	for _, a := range in.Actions() {
		n += a.HandlerCount()
	}
	return n
}
