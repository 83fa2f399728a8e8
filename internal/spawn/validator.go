package spawn

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/jakecoffman/cp"
)

// Validator checks candidate spawn points against the arena geometry.
//
// A point is rejected when a circle of the spawning radius around it
// leaves the arena bounds, comes within Clearance of an obstacle, or lies
// closer than MinDistance to any avoided position.
type Validator struct {
	Bounds      cp.BB
	Obstacles   []cp.BB
	Clearance   float64
	MinDistance float64

	// Shuffle randomizes candidate order. Injected for deterministic tests;
	// nil keeps the given order.
	Shuffle func(n int, swap func(i, j int))
}

// NewValidator creates a validator that picks candidates in random order.
func NewValidator(bounds cp.BB, obstacles []cp.BB, clearance, minDistance float64) *Validator {
	return &Validator{
		Bounds:      bounds,
		Obstacles:   obstacles,
		Clearance:   clearance,
		MinDistance: minDistance,
		Shuffle:     rand.Shuffle,
	}
}

// IsValid reports whether a body of radius can spawn at p.
func (v *Validator) IsValid(p cp.Vector, radius float64, avoid []cp.Vector) bool {
	inner := cp.BB{
		L: v.Bounds.L + radius,
		B: v.Bounds.B + radius,
		R: v.Bounds.R - radius,
		T: v.Bounds.T - radius,
	}
	if !inner.ContainsVect(p) {
		return false
	}

	pad := radius + v.Clearance
	for _, o := range v.Obstacles {
		grown := cp.BB{L: o.L - pad, B: o.B - pad, R: o.R + pad, T: o.T + pad}
		if grown.ContainsVect(p) {
			return false
		}
	}

	minSq := v.MinDistance * v.MinDistance
	for _, a := range avoid {
		if p.DistanceSq(a) < minSq {
			return false
		}
	}
	return true
}

// PickSpawnPoint returns the first valid candidate after shuffling.
// Candidates are not modified. Returns false when none is valid.
func (v *Validator) PickSpawnPoint(candidates []cp.Vector, radius float64, avoid []cp.Vector) (cp.Vector, bool) {
	order := slices.Clone(candidates)
	if v.Shuffle != nil {
		v.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	for _, p := range order {
		if v.IsValid(p, radius, avoid) {
			return p, true
		}
	}
	return cp.Vector{}, false
}

// RingPoints returns count points evenly spaced on a circle around center,
// starting at angle offset.
func RingPoints(center cp.Vector, radius float64, count int, offset float64) []cp.Vector {
	if count <= 0 {
		return nil
	}
	pts := make([]cp.Vector, count)
	step := 2 * math.Pi / float64(count)
	for i := range count {
		pts[i] = center.Add(cp.ForAngle(offset + step*float64(i)).Mult(radius))
	}
	return pts
}
