package model

// StatDefinition identifies a kind of stat (Damage, Health, MoveSpeed...).
// Definitions are compared by identity: two definitions created with the
// same name are different keys.
type StatDefinition struct {
	name string
}

// NewStatDefinition creates a new stat key.
func NewStatDefinition(name string) *StatDefinition {
	return &StatDefinition{name: name}
}

// Name returns the display name of the stat.
func (d *StatDefinition) Name() string {
	if d == nil {
		return "<nil>"
	}
	return d.name
}

// String implements fmt.Stringer (used by slog).
func (d *StatDefinition) String() string {
	return d.Name()
}

// Standard stat definitions shared by characters, abilities and bosses.
var (
	StatHealth         = NewStatDefinition("health")
	StatMana           = NewStatDefinition("mana")
	StatManaRegen      = NewStatDefinition("mana_regen")
	StatDamage         = NewStatDefinition("damage")
	StatAbilityPower   = NewStatDefinition("ability_power")
	StatMoveSpeed      = NewStatDefinition("move_speed")
	StatAttackSpeed    = NewStatDefinition("attack_speed")
	StatArmor          = NewStatDefinition("armor")
	StatDefense        = NewStatDefinition("defense")
	StatCritChance     = NewStatDefinition("crit_chance")
	StatCritMultiplier = NewStatDefinition("crit_multiplier")
	StatRange          = NewStatDefinition("range")
)

var standardStats = map[string]*StatDefinition{
	StatHealth.name:         StatHealth,
	StatMana.name:           StatMana,
	StatManaRegen.name:      StatManaRegen,
	StatDamage.name:         StatDamage,
	StatAbilityPower.name:   StatAbilityPower,
	StatMoveSpeed.name:      StatMoveSpeed,
	StatAttackSpeed.name:    StatAttackSpeed,
	StatArmor.name:          StatArmor,
	StatDefense.name:        StatDefense,
	StatCritChance.name:     StatCritChance,
	StatCritMultiplier.name: StatCritMultiplier,
	StatRange.name:          StatRange,
}

// StatByName resolves one of the standard definitions by name.
// Used by the YAML definition loader.
func StatByName(name string) (*StatDefinition, bool) {
	def, ok := standardStats[name]
	return def, ok
}

// Stat is a single numeric attribute: base value plus modifiers.
// The final value is cached and recomputed synchronously on every
// structural change, so readers never observe a stale value.
type Stat struct {
	def       *StatDefinition
	baseValue float64
	modifiers []*StatModifier
	final     float64

	onChanged []func(final float64)
}

// NewStat creates a stat with the given base value and no modifiers.
func NewStat(def *StatDefinition, base float64) *Stat {
	return &Stat{
		def:       def,
		baseValue: base,
		final:     base,
		modifiers: make([]*StatModifier, 0, 4),
	}
}

// Definition returns the stat key.
func (s *Stat) Definition() *StatDefinition {
	return s.def
}

// BaseValue returns the unmodified value.
func (s *Stat) BaseValue() float64 {
	return s.baseValue
}

// SetBaseValue replaces the base value and recomputes the final value.
func (s *Stat) SetBaseValue(v float64) {
	s.baseValue = v
	s.recalculate()
}

// Value returns the cached final value.
func (s *Stat) Value() float64 {
	return s.final
}

// Modifiers returns a copy of the current modifier list.
func (s *Stat) Modifiers() []*StatModifier {
	out := make([]*StatModifier, len(s.modifiers))
	copy(out, s.modifiers)
	return out
}

// ModifierCount returns the number of attached modifiers.
func (s *Stat) ModifierCount() int {
	return len(s.modifiers)
}

// OnChanged registers a callback invoked after every recompute.
func (s *Stat) OnChanged(fn func(final float64)) {
	if fn == nil {
		return
	}
	s.onChanged = append(s.onChanged, fn)
}

// AddModifier appends a modifier. Modifiers with no numeric effect are
// still stored so they can be removed later by reference or source.
func (s *Stat) AddModifier(mod *StatModifier) {
	if mod == nil {
		return
	}
	s.modifiers = append(s.modifiers, mod)
	s.recalculate()
}

// RemoveModifier removes the given modifier by reference.
// Returns false if the modifier is not attached to this stat.
func (s *Stat) RemoveModifier(mod *StatModifier) bool {
	for i, m := range s.modifiers {
		if m == mod {
			s.modifiers = append(s.modifiers[:i], s.modifiers[i+1:]...)
			s.recalculate()
			return true
		}
	}
	return false
}

// RemoveAllFromSource removes every modifier tagged with source and
// returns how many were removed. Recomputes once.
func (s *Stat) RemoveAllFromSource(source string) int {
	kept := s.modifiers[:0]
	removed := 0
	for _, m := range s.modifiers {
		if m.Source == source {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	clearTail(s.modifiers, len(kept))
	s.modifiers = kept

	if removed > 0 {
		s.recalculate()
	}
	return removed
}

// Update advances timed modifiers by dt seconds. Every modifier whose
// duration elapses in this pass is removed, then the final value is
// recomputed once. Returns true if anything expired.
func (s *Stat) Update(dt float64) bool {
	if len(s.modifiers) == 0 {
		return false
	}

	kept := s.modifiers[:0]
	expired := false
	for _, m := range s.modifiers {
		if !m.IsPermanent() {
			m.Duration -= dt
			if TimerElapsed(m.Duration) {
				expired = true
				continue
			}
		}
		kept = append(kept, m)
	}
	clearTail(s.modifiers, len(kept))
	s.modifiers = kept

	if expired {
		s.recalculate()
	}
	return expired
}

// recalculate applies: (base + flat) * (1 + Σ percentAdd) * Π percentMult.
func (s *Stat) recalculate() {
	s.final = CalculateFinalValue(s.baseValue, s.modifiers)
	for _, fn := range s.onChanged {
		fn(s.final)
	}
}

// CalculateFinalValue evaluates the stat formula over a modifier set.
// The order is fixed: flat sum, then additive percent, then each
// multiplicative percent.
func CalculateFinalValue(base float64, mods []*StatModifier) float64 {
	flatSum := 0.0
	percentAddSum := 0.0
	percentMult := 1.0

	for _, m := range mods {
		switch m.Type {
		case ModifierFlat:
			flatSum += m.Value
		case ModifierPercentAdd:
			percentAddSum += m.Value
		case ModifierPercentMult:
			percentMult *= m.Value
		}
	}

	afterAdd := (base + flatSum) * (1 + percentAddSum)
	return afterAdd * percentMult
}

// clearTail nils out dropped pointers so removed modifiers can be collected.
func clearTail(mods []*StatModifier, from int) {
	for i := from; i < len(mods); i++ {
		mods[i] = nil
	}
}
