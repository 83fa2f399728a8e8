package projectile

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear(t *testing.T) {
	tr := &Transform{Position: cp.Vector{X: 0, Y: 0}, Forward: cp.Vector{X: 0, Y: 2}}
	l := NewLinear(100)
	l.Initialize(tr)

	for range 10 {
		l.Update(0.1)
	}

	assert.InDelta(t, 0.0, tr.Position.X, 1e-9)
	assert.InDelta(t, 100.0, tr.Position.Y, 1e-9)
	assert.False(t, l.IsDone())
}

func TestArc_Endpoints(t *testing.T) {
	start := cp.Vector{X: 0, Y: 0}
	target := cp.Vector{X: 200, Y: 0}

	tests := []struct {
		name  string
		curve Curve
	}{
		{name: "parabola", curve: Parabola},
		{name: "constant", curve: Constant(0.5)},
		{name: "keyframes", curve: NewKeyframeCurve([]Keyframe{{T: 0, Value: 0}, {T: 1, Value: 0.25}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Transform{Position: start}
			a := NewArc(target, 100, 40, tt.curve)
			a.Initialize(tr)

			require.InDelta(t, 2.0, a.Duration(), 1e-9)
			assert.Equal(t, start.Add(cp.Vector{Y: tt.curve.Evaluate(0) * 40}), a.PositionAt(0))

			for range 19 {
				a.Update(0.1)
			}
			assert.False(t, a.IsDone(), "before duration")

			a.Update(0.2)
			assert.True(t, a.IsDone())
			want := target.Add(cp.Vector{Y: tt.curve.Evaluate(1) * 40})
			assert.InDelta(t, want.X, tr.Position.X, 1e-9)
			assert.InDelta(t, want.Y, tr.Position.Y, 1e-9)
		})
	}
}

func TestArc_PeakAndFallbackDistance(t *testing.T) {
	tr := &Transform{Position: cp.Vector{X: 10, Y: 10}}
	a := NewArc(cp.Vector{X: 110, Y: 10}, 50, 30, nil)
	a.Initialize(tr)

	mid := a.PositionAt(0.5)
	assert.InDelta(t, 60.0, mid.X, 1e-9)
	assert.InDelta(t, 40.0, mid.Y, 1e-9, "parabola peaks at max height")

	same := NewArc(cp.Vector{X: 10, Y: 10}, 2, 30, nil)
	same.Initialize(&Transform{Position: cp.Vector{X: 10, Y: 10}})
	assert.InDelta(t, DefaultArcDistance/2, same.Duration(), 1e-9)
}

type fakeTarget struct {
	id    uint32
	pos   cp.Vector
	valid bool
}

func (f *fakeTarget) ObjectID() uint32 { return f.id }
func (f *fakeTarget) Position() cp.Vector { return f.pos }
func (f *fakeTarget) IsValidTarget() bool { return f.valid }

func finderOf(targets ...*fakeTarget) TargetFinder {
	return func(center cp.Vector, radius float64) []Target {
		var out []Target
		for _, tg := range targets {
			if center.DistanceSq(tg.pos) <= radius*radius {
				out = append(out, tg)
			}
		}
		return out
	}
}

func TestHoming_TieBreakLowestID(t *testing.T) {
	a := &fakeTarget{id: 7, pos: cp.Vector{X: 0, Y: 50}, valid: true}
	b := &fakeTarget{id: 3, pos: cp.Vector{X: 0, Y: -50}, valid: true}
	far := &fakeTarget{id: 1, pos: cp.Vector{X: 90, Y: 0}, valid: true}

	tr := &Transform{Forward: cp.Vector{X: 1}}
	h := NewHoming(0, math.Pi, 100, finderOf(a, far, b))
	h.Initialize(tr)
	h.Update(0.01)

	require.NotNil(t, h.Target())
	assert.Equal(t, uint32(3), h.Target().ObjectID())
}

func TestHoming_RetargetsOnlyWhenLost(t *testing.T) {
	first := &fakeTarget{id: 1, pos: cp.Vector{X: 50}, valid: true}
	closer := &fakeTarget{id: 2, pos: cp.Vector{X: 10}, valid: true}

	tr := &Transform{Forward: cp.Vector{X: 1}}
	h := NewHoming(10, math.Pi, 100, finderOf(first, closer))
	h.Initialize(tr)
	h.SetTarget(first)

	h.Update(0.1)
	assert.Same(t, first, h.Target(), "valid target kept even if another is closer")

	first.valid = false
	h.Update(0.1)
	assert.Same(t, closer, h.Target())
}

func TestHoming_BoundedTurnRate(t *testing.T) {
	target := &fakeTarget{id: 1, pos: cp.Vector{X: 0, Y: 100}, valid: true}
	tr := &Transform{Forward: cp.Vector{X: 1}}
	h := NewHoming(100, math.Pi/2, 500, finderOf(target))
	h.Initialize(tr)

	h.Update(0.5) // may turn at most π/4

	assert.InDelta(t, math.Pi/4, tr.Forward.ToAngle(), 1e-9)
	assert.InDelta(t, 1.0, tr.Forward.Length(), 1e-9)
	assert.InDelta(t, 50.0, tr.Position.Length(), 1e-9, "constant speed")

	h.Update(0.5)
	assert.InDelta(t, math.Pi/2, tr.Forward.ToAngle(), 1e-6, "reaches the desired heading")
	assert.False(t, h.IsDone())
}

func TestRotateToward_ShortestWay(t *testing.T) {
	from := cp.ForAngle(math.Pi - 0.1)
	to := cp.ForAngle(-math.Pi + 0.1)

	got := RotateToward(from, to, 0.05)

	assert.InDelta(t, NormalizeAngle(math.Pi-0.05), NormalizeAngle(got.ToAngle()), 1e-9, "turns across ±π")
}

func TestKeyframeCurve(t *testing.T) {
	c := NewKeyframeCurve([]Keyframe{{T: 1, Value: 0}, {T: 0, Value: 0}, {T: 0.5, Value: 1}})

	assert.InDelta(t, 0.0, c.Evaluate(-1), 1e-9)
	assert.InDelta(t, 0.5, c.Evaluate(0.25), 1e-9)
	assert.InDelta(t, 1.0, c.Evaluate(0.5), 1e-9)
	assert.InDelta(t, 0.5, c.Evaluate(0.75), 1e-9)
	assert.InDelta(t, 0.0, c.Evaluate(2), 1e-9)
	assert.Zero(t, NewKeyframeCurve(nil).Evaluate(0.3))
}

func TestSafeNormalize(t *testing.T) {
	assert.Equal(t, cp.Vector{X: 1}, SafeNormalize(cp.Vector{}))
	assert.InDelta(t, 1.0, SafeNormalize(cp.Vector{X: 3, Y: 4}).Length(), 1e-12)
}
