package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultColliderData is the authored capsule size before step resizing.
type DefaultColliderData struct {
	Height  float64 `yaml:"height"`
	CenterY float64 `yaml:"center_y"`
	Radius  float64 `yaml:"radius"`
}

// SlopeData controls how the capsule floats over steps and slopes.
type SlopeData struct {
	StepHeightPercentage float64 `yaml:"step_height_percentage"`
	FloatRayDistance     float64 `yaml:"float_ray_distance"`
	StepReachForce       float64 `yaml:"step_reach_force"`
}

// CapsuleColliderData holds the current capsule dimensions in body-local space.
type CapsuleColliderData struct {
	Height float64
	Radius float64

	ColliderCenterInLocalSpace mgl64.Vec3
	// ColliderVerticalExtents is half the capsule height along the up axis.
	ColliderVerticalExtents mgl64.Vec3
}

// TriggerColliderData describes the ground-check box attached to the body.
type TriggerColliderData struct {
	Center mgl64.Vec3 `yaml:"center"`
	Size   mgl64.Vec3 `yaml:"size"`

	GroundCheckColliderVerticalExtents mgl64.Vec3 `yaml:"-"`
}

// Init derives the box half extents from its size.
func (t *TriggerColliderData) Init() {
	if t == nil {
		return
	}
	t.GroundCheckColliderVerticalExtents = t.Size.Mul(0.5)
}

// ResizableCapsule shortens the capsule by the step height so the float force
// carries the character over steps, and exposes the world-space values the
// grounded states probe with.
type ResizableCapsule struct {
	Default DefaultColliderData
	Slope   SlopeData
	Trigger TriggerColliderData

	Capsule CapsuleColliderData
}

// NewResizableCapsule builds and sizes a capsule.
func NewResizableCapsule(def DefaultColliderData, slope SlopeData, trigger TriggerColliderData) *ResizableCapsule {
	c := &ResizableCapsule{Default: def, Slope: slope, Trigger: trigger}
	c.Resize()
	return c
}

// Resize recomputes the capsule from the default and slope data.
func (c *ResizableCapsule) Resize() {
	if c == nil {
		return
	}
	c.Capsule.Radius = c.Default.Radius
	c.Capsule.Height = c.Default.Height * (1 - c.Slope.StepHeightPercentage)

	heightDifference := c.Default.Height - c.Capsule.Height
	c.Capsule.ColliderCenterInLocalSpace = mgl64.Vec3{0, c.Default.CenterY + heightDifference/2, 0}

	if half := c.Capsule.Height / 2; half < c.Capsule.Radius {
		c.Capsule.Radius = half
	}
	c.Capsule.ColliderVerticalExtents = mgl64.Vec3{0, c.Capsule.Height / 2, 0}
	c.Trigger.Init()
}

// SetStepHeightPercentage changes the step height and resizes.
func (c *ResizableCapsule) SetStepHeightPercentage(p float64) {
	if c == nil {
		return
	}
	c.Slope.StepHeightPercentage = math.Max(0, math.Min(1, p))
	c.Resize()
}

// WorldCenter is the capsule center for a body transform.
func (c *ResizableCapsule) WorldCenter(position mgl64.Vec3, rotation mgl64.Quat, scale float64) mgl64.Vec3 {
	if c == nil {
		return position
	}
	return position.Add(rotation.Rotate(c.Capsule.ColliderCenterInLocalSpace.Mul(scale)))
}

// WorldVerticalExtents is the scaled half height along the up axis.
func (c *ResizableCapsule) WorldVerticalExtents(scale float64) mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return c.Capsule.ColliderVerticalExtents.Mul(scale)
}

// WorldBottom is the lowest point of the capsule for a body transform.
func (c *ResizableCapsule) WorldBottom(position mgl64.Vec3, rotation mgl64.Quat, scale float64) mgl64.Vec3 {
	return c.WorldCenter(position, rotation, scale).Sub(c.WorldVerticalExtents(scale))
}

// GroundCheckCenter is the ground-check box center for a body transform.
func (c *ResizableCapsule) GroundCheckCenter(position mgl64.Vec3, rotation mgl64.Quat, scale float64) mgl64.Vec3 {
	if c == nil {
		return position
	}
	return position.Add(rotation.Rotate(c.Trigger.Center.Mul(scale)))
}

// GroundCheckHalfExtents is the scaled half size of the ground-check box.
func (c *ResizableCapsule) GroundCheckHalfExtents(scale float64) mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return c.Trigger.GroundCheckColliderVerticalExtents.Mul(scale)
}
