package model

// Health is a damageable pool whose maximum follows the Health stat.
//
// Invariants:
//   - current is clamped to [0, max] on every max change and every hit;
//   - once current reaches 0 exactly one death notification fires and
//     further damage is ignored until Reset.
type Health struct {
	current float64
	max     float64

	dead         bool
	invulnerable bool

	onDamaged []func(data DamageData, applied float64)
	onDeath   []func(data DamageData)
}

// NewHealth creates a full pool.
func NewHealth(max float64) *Health {
	if max < 0 {
		max = 0
	}
	return &Health{current: max, max: max}
}

// Current returns current health.
func (h *Health) Current() float64 {
	return h.current
}

// Max returns maximum health.
func (h *Health) Max() float64 {
	return h.max
}

// Percent returns current/max in [0, 1]. Returns 0 for an empty pool.
func (h *Health) Percent() float64 {
	if h.max <= 0 {
		return 0
	}
	return h.current / h.max
}

// IsDead reports whether the death notification has fired.
func (h *Health) IsDead() bool {
	return h.dead
}

// IsInvulnerable reports whether damage is currently ignored.
func (h *Health) IsInvulnerable() bool {
	return h.invulnerable
}

// SetInvulnerable toggles damage immunity (used during phase transitions).
func (h *Health) SetInvulnerable(v bool) {
	h.invulnerable = v
}

// SetMax changes maximum health, preserving the current percentage.
func (h *Health) SetMax(newMax float64) {
	if newMax < 0 {
		newMax = 0
	}
	pct := 1.0
	if h.max > 0 {
		pct = h.current / h.max
	}
	h.max = newMax
	if h.dead {
		h.current = 0
		return
	}
	h.current = clamp(pct*newMax, 0, newMax)
}

// SetCurrent sets current health directly (clamped). Does not fire death;
// lethal values must go through TakeDamage.
func (h *Health) SetCurrent(v float64) {
	if h.dead {
		return
	}
	h.current = clamp(v, 0, h.max)
}

// OnDamaged registers a hook invoked after each applied hit.
func (h *Health) OnDamaged(fn func(data DamageData, applied float64)) {
	if fn != nil {
		h.onDamaged = append(h.onDamaged, fn)
	}
}

// OnDeath registers a hook invoked once per life.
func (h *Health) OnDeath(fn func(data DamageData)) {
	if fn != nil {
		h.onDeath = append(h.onDeath, fn)
	}
}

// TakeDamage applies data.Amount and returns the health actually removed.
// No-op while dead or invulnerable.
func (h *Health) TakeDamage(data DamageData) float64 {
	if h.dead || h.invulnerable || data.Amount <= 0 {
		return 0
	}

	before := h.current
	h.current = clamp(h.current-data.Amount, 0, h.max)
	applied := before - h.current

	for _, fn := range h.onDamaged {
		fn(data, applied)
	}

	if h.current <= 0 && !h.dead {
		h.dead = true
		for _, fn := range h.onDeath {
			fn(data)
		}
	}
	return applied
}

// Heal restores health up to max. Ignored while dead.
func (h *Health) Heal(amount float64) {
	if h.dead || amount <= 0 {
		return
	}
	h.current = clamp(h.current+amount, 0, h.max)
}

// Reset revives the pool at full health.
func (h *Health) Reset() {
	h.dead = false
	h.invulnerable = false
	h.current = h.max
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
