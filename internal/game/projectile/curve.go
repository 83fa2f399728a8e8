package projectile

import "sort"

// Curve maps normalized progress t ∈ [0, 1] to a height factor.
type Curve interface {
	Evaluate(t float64) float64
}

// CurveFunc adapts a function to Curve.
type CurveFunc func(t float64) float64

func (f CurveFunc) Evaluate(t float64) float64 {
	return f(t)
}

// Parabola peaks at 1 in the middle and is 0 at both ends.
var Parabola = CurveFunc(func(t float64) float64 {
	return 4 * t * (1 - t)
})

// Constant returns a curve with a fixed value.
func Constant(v float64) Curve {
	return CurveFunc(func(float64) float64 { return v })
}

// Keyframe is one control point of a KeyframeCurve.
type Keyframe struct {
	T     float64 `yaml:"t"`
	Value float64 `yaml:"value"`
}

// KeyframeCurve interpolates linearly between keys sorted by T.
// Values outside the key range hold the first/last key value.
type KeyframeCurve struct {
	keys []Keyframe
}

// NewKeyframeCurve creates a curve from keys in any order.
func NewKeyframeCurve(keys []Keyframe) *KeyframeCurve {
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })
	return &KeyframeCurve{keys: sorted}
}

func (c *KeyframeCurve) Evaluate(t float64) float64 {
	n := len(c.keys)
	switch {
	case n == 0:
		return 0
	case t <= c.keys[0].T:
		return c.keys[0].Value
	case t >= c.keys[n-1].T:
		return c.keys[n-1].Value
	}

	i := sort.Search(n, func(i int) bool { return c.keys[i].T >= t })
	a, b := c.keys[i-1], c.keys[i]
	span := b.T - a.T
	if span <= 0 {
		return b.Value
	}
	return a.Value + (b.Value-a.Value)*(t-a.T)/span
}
