package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FullRotation is the number of degrees in a full turn.
const FullRotation = 360.0

// Up is the world up axis. Rays cast "down" travel along -Up.
var Up = mgl64.Vec3{0, 1, 0}

// Forward is the body-local forward axis (yaw 0).
var Forward = mgl64.Vec3{0, 0, 1}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	return mgl64.Clamp(t, 0, 1)
}

// Approximately reports whether a and b are equal within a relative tolerance
// scaled to their magnitude.
func Approximately(a, b float64) bool {
	return math.Abs(b-a) < math.Max(1e-6*math.Max(math.Abs(a), math.Abs(b)), 1e-12)
}

// Repeat loops t so that it is never larger than length and never smaller than 0.
func Repeat(t, length float64) float64 {
	return mgl64.Clamp(t-math.Floor(t/length)*length, 0, length)
}

// NormalizeAngle wraps a degree angle into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, FullRotation)
	if deg < 0 {
		deg += FullRotation
	}
	if deg >= FullRotation {
		deg -= FullRotation
	}
	return deg
}

// DeltaAngle returns the shortest signed difference between two degree angles.
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, FullRotation)
	if delta > 180 {
		delta -= FullRotation
	}
	return delta
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity is carried between calls. The result never overshoots target.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTo := target
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		*velocity = (output - originalTo) / dt
	}
	return output
}

// SmoothDampAngle is SmoothDamp over degrees, taking the short way around.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, dt)
}

// YawToDirection converts a yaw in degrees to a horizontal unit vector.
// Yaw 0 faces +Z and yaw 90 faces +X.
func YawToDirection(deg float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(deg)
	return mgl64.Vec3{math.Sin(rad), 0, math.Cos(rad)}
}

// DirectionToYaw is the inverse of YawToDirection, normalized to [0, 360).
func DirectionToYaw(dir mgl64.Vec3) float64 {
	return NormalizeAngle(mgl64.RadToDeg(math.Atan2(dir.X(), dir.Z())))
}

// YawRotation builds a rotation of deg degrees about the up axis.
func YawRotation(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), Up)
}

// YawOf extracts the heading of a rotation in degrees, normalized to [0, 360).
func YawOf(q mgl64.Quat) float64 {
	return DirectionToYaw(q.Rotate(Forward))
}

// AngleBetween returns the unsigned angle between a and b in degrees.
func AngleBetween(a, b mgl64.Vec3) float64 {
	denom := a.Len() * b.Len()
	if denom < 1e-15 {
		return 0
	}
	cos := mgl64.Clamp(a.Dot(b)/denom, -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// Horizontal drops the vertical component of v.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// Vertical keeps only the vertical component of v.
func Vertical(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{0, v.Y(), 0}
}
