package model

import "log/slog"

// StatsProvider owns the named stats of one entity.
// All mutation paths recompute synchronously before returning, so an
// ability resolving right after a buff reads the buffed value.
//
// Not safe for concurrent use: stats are owned by a single entity and
// mutated only from the simulation tick.
type StatsProvider struct {
	stats map[*StatDefinition]*Stat
	order []*StatDefinition // insertion order, keeps UpdateModifiers deterministic

	warned map[*StatDefinition]struct{}
}

// NewStatsProvider creates an empty provider.
func NewStatsProvider() *StatsProvider {
	return &StatsProvider{
		stats:  make(map[*StatDefinition]*Stat, 12),
		order:  make([]*StatDefinition, 0, 12),
		warned: make(map[*StatDefinition]struct{}),
	}
}

// NewStatsProviderFrom creates a provider pre-populated with base values.
// Definitions are registered in the order of the standard stat list first,
// then any remaining keys, so iteration order does not depend on map order.
func NewStatsProviderFrom(base map[*StatDefinition]float64) *StatsProvider {
	p := NewStatsProvider()
	for _, def := range standardOrder {
		if v, ok := base[def]; ok {
			p.Define(def, v)
		}
	}
	for def, v := range base {
		if _, ok := p.stats[def]; !ok {
			p.Define(def, v)
		}
	}
	return p
}

var standardOrder = []*StatDefinition{
	StatHealth, StatMana, StatManaRegen, StatDamage, StatAbilityPower,
	StatMoveSpeed, StatAttackSpeed, StatArmor, StatDefense,
	StatCritChance, StatCritMultiplier, StatRange,
}

// Define registers a stat with a base value, or resets the base value of
// an existing one. Returns the stat.
func (p *StatsProvider) Define(def *StatDefinition, base float64) *Stat {
	if s, ok := p.stats[def]; ok {
		s.SetBaseValue(base)
		return s
	}
	s := NewStat(def, base)
	p.stats[def] = s
	p.order = append(p.order, def)
	return s
}

// Stat returns the stat for def.
func (p *StatsProvider) Stat(def *StatDefinition) (*Stat, bool) {
	s, ok := p.stats[def]
	return s, ok
}

// Has reports whether def is tracked.
func (p *StatsProvider) Has(def *StatDefinition) bool {
	_, ok := p.stats[def]
	return ok
}

// Definitions returns tracked definitions in registration order.
func (p *StatsProvider) Definitions() []*StatDefinition {
	out := make([]*StatDefinition, len(p.order))
	copy(out, p.order)
	return out
}

// GetBaseValue returns the base value of def, or 0 if not tracked.
func (p *StatsProvider) GetBaseValue(def *StatDefinition) float64 {
	if s, ok := p.stats[def]; ok {
		return s.BaseValue()
	}
	return 0
}

// SetBaseValue sets the base value, registering the stat if needed.
func (p *StatsProvider) SetBaseValue(def *StatDefinition, v float64) {
	p.Define(def, v)
}

// AddModifier attaches mod to def. An unknown stat is created with base 0.
func (p *StatsProvider) AddModifier(def *StatDefinition, mod *StatModifier) {
	if def == nil || mod == nil {
		return
	}
	s, ok := p.stats[def]
	if !ok {
		slog.Debug("modifier added to undefined stat, defining with base 0",
			"stat", def.Name(),
			"source", mod.Source)
		s = p.Define(def, 0)
	}
	s.AddModifier(mod)
}

// RemoveModifier detaches mod from def by reference.
func (p *StatsProvider) RemoveModifier(def *StatDefinition, mod *StatModifier) bool {
	s, ok := p.stats[def]
	if !ok {
		return false
	}
	return s.RemoveModifier(mod)
}

// RemoveAllModifiersFromSource strips every modifier tagged source from def.
func (p *StatsProvider) RemoveAllModifiersFromSource(def *StatDefinition, source string) int {
	s, ok := p.stats[def]
	if !ok {
		return 0
	}
	return s.RemoveAllFromSource(source)
}

// RemoveAllFromSource strips modifiers tagged source from every stat.
func (p *StatsProvider) RemoveAllFromSource(source string) int {
	removed := 0
	for _, def := range p.order {
		removed += p.stats[def].RemoveAllFromSource(source)
	}
	return removed
}

// GetFinalStatValue returns the final value of def.
// A missing definition is a configuration error: it is logged once and 0
// is returned.
func (p *StatsProvider) GetFinalStatValue(def *StatDefinition) float64 {
	return p.GetFinalStatValueOr(def, 0)
}

// GetFinalStatValueOr returns the final value of def, or fallback when the
// stat is not tracked.
func (p *StatsProvider) GetFinalStatValueOr(def *StatDefinition, fallback float64) float64 {
	if s, ok := p.stats[def]; ok {
		return s.Value()
	}
	if _, seen := p.warned[def]; !seen {
		p.warned[def] = struct{}{}
		slog.Warn("stat not defined, using fallback",
			"stat", def.Name(),
			"fallback", fallback)
	}
	return fallback
}

// OnChanged subscribes to recomputes of def. The stat is created with
// base 0 if it does not exist yet.
func (p *StatsProvider) OnChanged(def *StatDefinition, fn func(final float64)) {
	s, ok := p.stats[def]
	if !ok {
		s = p.Define(def, 0)
	}
	s.OnChanged(fn)
}

// UpdateModifiers advances timed modifiers on every tracked stat. Each
// stat recomputes at most once per call.
func (p *StatsProvider) UpdateModifiers(dt float64) {
	for _, def := range p.order {
		p.stats[def].Update(dt)
	}
}
