package model

// Resource is a consumable pool (mana, energy) clamped to [0, max].
//
// Consume keeps a permissive contract: callers are expected to check
// HasEnough first, and Consume never fails loudly. It clamps at 0 and
// reports whether the pool covered the whole cost.
type Resource struct {
	current float64
	max     float64
}

// NewResource creates a full pool.
func NewResource(max float64) *Resource {
	if max < 0 {
		max = 0
	}
	return &Resource{current: max, max: max}
}

// Current returns the current amount.
func (r *Resource) Current() float64 {
	return r.current
}

// Max returns the pool capacity.
func (r *Resource) Max() float64 {
	return r.max
}

// Percent returns current/max, 0 for an empty pool.
func (r *Resource) Percent() float64 {
	if r.max <= 0 {
		return 0
	}
	return r.current / r.max
}

// SetMax changes the capacity and clamps the current amount.
func (r *Resource) SetMax(max float64) {
	if max < 0 {
		max = 0
	}
	r.max = max
	if r.current > max {
		r.current = max
	}
}

// HasEnough reports whether cost can be paid in full.
func (r *Resource) HasEnough(cost float64) bool {
	return cost <= 0 || r.current >= cost
}

// Consume subtracts cost, clamping at 0. Returns false if the pool did not
// cover the full cost.
func (r *Resource) Consume(cost float64) bool {
	if cost <= 0 {
		return true
	}
	covered := r.current >= cost
	r.current = clamp(r.current-cost, 0, r.max)
	return covered
}

// Restore adds amount, clamping at max.
func (r *Resource) Restore(amount float64) {
	if amount <= 0 {
		return
	}
	r.current = clamp(r.current+amount, 0, r.max)
}

// Regenerate restores ratePerSecond * dt.
func (r *Resource) Regenerate(dt, ratePerSecond float64) {
	r.Restore(ratePerSecond * dt)
}

// Fill sets the pool to max.
func (r *Resource) Fill() {
	r.current = r.max
}
