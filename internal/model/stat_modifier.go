package model

import "fmt"

// ModifierType defines how a stat modifier is applied.
type ModifierType int8

const (
	ModifierFlat        ModifierType = iota // added to base (e.g. +10 damage)
	ModifierPercentAdd                      // summed, then applied as (1 + Σ)
	ModifierPercentMult                     // multiplied one by one (e.g. ×1.2)
)

// String returns the YAML name of the modifier type.
func (t ModifierType) String() string {
	switch t {
	case ModifierFlat:
		return "flat"
	case ModifierPercentAdd:
		return "percent_add"
	case ModifierPercentMult:
		return "percent_mult"
	default:
		return fmt.Sprintf("ModifierType(%d)", int8(t))
	}
}

// PermanentDuration marks a modifier that never expires.
const PermanentDuration = -1.0

// StatModifier is a tagged, typed adjustment to a Stat.
// Duration < 0 means permanent; otherwise it is the remaining lifetime in
// seconds and is decremented by Stat.Update.
type StatModifier struct {
	Value    float64
	Type     ModifierType
	Source   string
	Duration float64
}

// NewModifier creates a permanent modifier.
func NewModifier(value float64, typ ModifierType, source string) *StatModifier {
	return &StatModifier{
		Value:    value,
		Type:     typ,
		Source:   source,
		Duration: PermanentDuration,
	}
}

// NewTimedModifier creates a modifier that expires after duration seconds.
func NewTimedModifier(value float64, typ ModifierType, source string, duration float64) *StatModifier {
	return &StatModifier{
		Value:    value,
		Type:     typ,
		Source:   source,
		Duration: duration,
	}
}

// IsPermanent reports whether the modifier never expires.
func (m *StatModifier) IsPermanent() bool {
	return m.Duration < 0
}
