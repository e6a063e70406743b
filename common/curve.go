package common

import "sort"

// Keyframe is a single point on a Curve. Tangents are slopes (dValue/dTime)
// and are ignored when the curve is linear.
type Keyframe struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value"`
	InTangent  float64 `yaml:"in_tangent"`
	OutTangent float64 `yaml:"out_tangent"`
}

// Curve maps a scalar (usually an angle in degrees) to a modifier.
//
// Outside the authored key range the curve evaluates to 0 unless ClampEnds is
// set, in which case the first/last key value is held.
type Curve struct {
	Keys      []Keyframe `yaml:"keys"`
	Linear    bool       `yaml:"linear"`
	ClampEnds bool       `yaml:"clamp_ends"`
}

// ConstantCurve returns a clamped curve that evaluates to v everywhere.
func ConstantCurve(v float64) Curve {
	return Curve{Keys: []Keyframe{{Time: 0, Value: v}}, ClampEnds: true}
}

// Sort orders keys by time. Loaders call it once after decoding.
func (c *Curve) Sort() {
	if c == nil {
		return
	}
	sort.SliceStable(c.Keys, func(i, j int) bool { return c.Keys[i].Time < c.Keys[j].Time })
}

// Domain returns the first and last key times.
func (c Curve) Domain() (lo, hi float64, ok bool) {
	if len(c.Keys) == 0 {
		return 0, 0, false
	}
	return c.Keys[0].Time, c.Keys[len(c.Keys)-1].Time, true
}

// Evaluate samples the curve at t. Keys must be sorted by time.
func (c Curve) Evaluate(t float64) float64 {
	n := len(c.Keys)
	if n == 0 {
		return 0
	}
	first, last := c.Keys[0], c.Keys[n-1]
	if t < first.Time {
		if c.ClampEnds {
			return first.Value
		}
		return 0
	}
	if t > last.Time {
		if c.ClampEnds {
			return last.Value
		}
		return 0
	}
	if n == 1 {
		return first.Value
	}

	i := sort.Search(n, func(i int) bool { return c.Keys[i].Time >= t })
	if i == 0 {
		return first.Value
	}
	k0, k1 := c.Keys[i-1], c.Keys[i]
	span := k1.Time - k0.Time
	if span <= 0 {
		return k1.Value
	}
	u := (t - k0.Time) / span
	if c.Linear {
		return Lerp(k0.Value, k1.Value, u)
	}

	// cubic hermite
	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	return h00*k0.Value + h10*span*k0.OutTangent + h01*k1.Value + h11*span*k1.InTangent
}
