package component

import "github.com/go-gl/mathgl/mgl64"

// ForceMode selects how AddForce changes a body's velocity.
type ForceMode int

const (
	// ForceModeVelocityChange adds the vector straight to the velocity at the
	// next physics step, ignoring mass.
	ForceModeVelocityChange ForceMode = iota
	// ForceModeAcceleration integrates the vector over the step, ignoring mass.
	ForceModeAcceleration
)

func (m ForceMode) String() string {
	switch m {
	case ForceModeVelocityChange:
		return "velocity_change"
	case ForceModeAcceleration:
		return "acceleration"
	default:
		return "unknown"
	}
}

// Layer is a collision layer index in [0, 31].
type Layer int

// LayerMask is a bit set of layers.
type LayerMask uint32

// MaskOf builds a mask containing the given layers.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l < 0 || l > 31 {
			continue
		}
		m |= 1 << uint(l)
	}
	return m
}

// LayerData tells the controller which layers count as ground.
type LayerData struct {
	GroundLayer LayerMask `yaml:"ground_layer"`
}

// ContainsLayer reports whether layer is part of mask.
func (LayerData) ContainsLayer(mask LayerMask, layer Layer) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return mask&(1<<uint(layer)) != 0
}

// IsGroundLayer reports whether layer is a ground layer.
func (d LayerData) IsGroundLayer(layer Layer) bool {
	return d.ContainsLayer(d.GroundLayer, layer)
}

// Collider identifies the other party of a trigger or query result.
type Collider struct {
	Name  string
	Layer Layer
}

// RaycastHit describes the first surface a ray hit.
type RaycastHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Collider Collider
}

// Rigidbody is the dynamic body driven by the movement states.
//
// Velocity reports the velocity at the start of the current physics step.
// Forces added during the step are applied when the step runs.
type Rigidbody interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddForce(force mgl64.Vec3, mode ForceMode)
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	// MoveRotation sets the rotation so that it is interpolated consistently
	// by the integrator.
	MoveRotation(q mgl64.Quat)
	// Scale is the uniform scale of the body transform.
	Scale() float64
}

// GeometryQuery answers ray and volume queries against the physics scene.
// Trigger volumes are never reported.
type GeometryQuery interface {
	Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask LayerMask) (RaycastHit, bool)
	OverlapBox(center, halfExtents mgl64.Vec3, rotation mgl64.Quat, mask LayerMask) []Collider
}

// Heading supplies the reference yaw (normally the camera) that movement
// input is relative to.
type Heading interface {
	Yaw() float64
}

// FixedHeading is a Heading that never turns.
type FixedHeading float64

func (h FixedHeading) Yaw() float64 { return float64(h) }
