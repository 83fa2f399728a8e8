// Package projectile implements projectile trajectories and the runtime
// that moves projectiles and resolves their hits.
package projectile

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/model"
)

// DefaultArcDistance is the travel distance assumed by Arc when start and
// target coincide.
const DefaultArcDistance = 1.0

// nearEpsilon is the distance under which two points are treated as equal.
const nearEpsilon = 1e-3

// Transform is the kinematic state a movement strategy drives.
// Forward is kept normalized.
type Transform struct {
	Position cp.Vector
	Forward  cp.Vector
}

// MovementStrategy moves a projectile transform.
type MovementStrategy interface {
	Initialize(t *Transform)
	Update(dt float64)
	IsDone() bool
}

// Kind is the trajectory type of a projectile.
type Kind int8

const (
	KindLinear Kind = iota
	KindArc
	KindHoming
)

// String returns the YAML name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindArc:
		return "arc"
	case KindHoming:
		return "homing"
	default:
		return "unknown"
	}
}

// Linear travels at constant velocity along Forward. Never done: the
// caller relies on lifetime and collisions.
type Linear struct {
	Speed float64

	t *Transform
}

// NewLinear creates a linear strategy.
func NewLinear(speed float64) *Linear {
	return &Linear{Speed: speed}
}

func (l *Linear) Initialize(t *Transform) {
	l.t = t
	t.Forward = SafeNormalize(t.Forward)
}

func (l *Linear) Update(dt float64) {
	if l.t == nil {
		return
	}
	l.t.Position = l.t.Position.Add(l.t.Forward.Mult(l.Speed * dt))
}

func (l *Linear) IsDone() bool {
	return false
}

// Arc interpolates from the start position to Target over
// distance/speed seconds, offset vertically by Curve(t) * MaxHeight.
type Arc struct {
	Target    cp.Vector
	Speed     float64
	MaxHeight float64
	Curve     Curve

	t        *Transform
	start    cp.Vector
	duration float64
	elapsed  float64
}

// NewArc creates an arc strategy. A nil curve means Parabola.
func NewArc(target cp.Vector, speed, maxHeight float64, curve Curve) *Arc {
	if curve == nil {
		curve = Parabola
	}
	return &Arc{Target: target, Speed: speed, MaxHeight: maxHeight, Curve: curve}
}

func (a *Arc) Initialize(t *Transform) {
	a.t = t
	a.start = t.Position
	a.elapsed = 0

	dist := a.start.Distance(a.Target)
	if dist < nearEpsilon {
		dist = DefaultArcDistance
	}
	if a.Speed > 0 {
		a.duration = dist / a.Speed
	}
	t.Forward = SafeNormalize(a.Target.Sub(a.start))
}

// Duration returns the precomputed travel time.
func (a *Arc) Duration() float64 {
	return a.duration
}

// Progress returns elapsed/duration in [0, 1].
func (a *Arc) Progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	return cp.Clamp01(a.elapsed / a.duration)
}

func (a *Arc) Update(dt float64) {
	if a.t == nil {
		return
	}
	a.elapsed += dt
	a.t.Position = a.PositionAt(a.Progress())
}

// PositionAt evaluates the trajectory at progress p.
func (a *Arc) PositionAt(p float64) cp.Vector {
	ground := a.start.Lerp(a.Target, p)
	return ground.Add(cp.Vector{Y: a.Curve.Evaluate(p) * a.MaxHeight})
}

func (a *Arc) IsDone() bool {
	return model.TimerReached(a.elapsed, a.duration)
}

// Homing steers toward the nearest valid target at a bounded turn rate
// and advances at constant speed. Never done on its own.
//
// Retargeting happens only when the current target is lost or invalid.
// Among candidates at equal squared distance the lowest ObjectID wins.
type Homing struct {
	Speed        float64
	TurnRate     float64 // radians per second
	SearchRadius float64
	Finder       TargetFinder

	t      *Transform
	target Target
}

// Target is something a homing projectile can chase.
type Target interface {
	ObjectID() uint32
	Position() cp.Vector
	IsValidTarget() bool
}

// TargetFinder returns targeting candidates around center.
type TargetFinder func(center cp.Vector, radius float64) []Target

// NewHoming creates a homing strategy.
func NewHoming(speed, turnRate, searchRadius float64, finder TargetFinder) *Homing {
	return &Homing{Speed: speed, TurnRate: turnRate, SearchRadius: searchRadius, Finder: finder}
}

func (h *Homing) Initialize(t *Transform) {
	h.t = t
	t.Forward = SafeNormalize(t.Forward)
}

// Target returns the current target, nil if none.
func (h *Homing) Target() Target {
	return h.target
}

// SetTarget locks onto a target explicitly.
func (h *Homing) SetTarget(target Target) {
	h.target = target
}

func (h *Homing) Update(dt float64) {
	if h.t == nil {
		return
	}

	if h.target == nil || !h.target.IsValidTarget() {
		h.target = h.findNearest()
	}

	if h.target != nil {
		desired := h.target.Position().Sub(h.t.Position)
		if desired.LengthSq() > nearEpsilon*nearEpsilon {
			h.t.Forward = RotateToward(h.t.Forward, desired, h.TurnRate*dt)
		}
	}

	h.t.Position = h.t.Position.Add(h.t.Forward.Mult(h.Speed * dt))
}

func (h *Homing) IsDone() bool {
	return false
}

func (h *Homing) findNearest() Target {
	if h.Finder == nil {
		return nil
	}

	var best Target
	bestDistSq := math.Inf(1)
	for _, c := range h.Finder(h.t.Position, h.SearchRadius) {
		if c == nil || !c.IsValidTarget() {
			continue
		}
		d := h.t.Position.DistanceSq(c.Position())
		if d < bestDistSq || (d == bestDistSq && best != nil && c.ObjectID() < best.ObjectID()) {
			best = c
			bestDistSq = d
		}
	}
	return best
}

// RotateToward turns the unit vector from toward desired by at most
// maxAngle radians and returns the new unit vector.
func RotateToward(from, desired cp.Vector, maxAngle float64) cp.Vector {
	cur := from.ToAngle()
	want := desired.ToAngle()
	diff := NormalizeAngle(want - cur)

	if math.Abs(diff) <= maxAngle {
		return cp.ForAngle(want)
	}
	return cp.ForAngle(cur + math.Copysign(maxAngle, diff))
}

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// SafeNormalize returns v scaled to unit length, or +X for a zero vector.
func SafeNormalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l < 1e-9 {
		return cp.Vector{X: 1}
	}
	return v.Mult(1 / l)
}
