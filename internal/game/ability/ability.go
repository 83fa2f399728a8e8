// Package ability implements ability definitions, usage conditions and
// the caster that sequences a cast: condition checks, windup, release.
package ability

import (
	"fmt"

	"github.com/udisondev/encounter/internal/game/cooldown"
	"github.com/udisondev/encounter/internal/model"
)

// Kind is the effect family of an ability.
type Kind int8

const (
	KindMelee Kind = iota
	KindProjectile
	KindArea
)

// String returns the YAML name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMelee:
		return "melee"
	case KindProjectile:
		return "projectile"
	case KindArea:
		return "area"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Effect is what an ability does when released.
type Effect interface {
	Kind() Kind
	Execute(ctx *Context)
}

// SelfModifier is a timed buff applied to the caster on execute.
type SelfModifier struct {
	Stat     *model.StatDefinition
	Value    float64
	Type     model.ModifierType
	Duration float64
}

// Ability is an immutable definition shared by every caster that slots it.
type Ability struct {
	ID        string
	Name      string
	Animation AnimationID

	Cooldown float64
	Cost     float64
	CastTime float64 // windup before release when no animation drives it
	Range    float64

	BaseDamage  float64
	DamageScale float64               // multiplier on ScaleStat
	ScaleStat   *model.StatDefinition // defaults to Damage

	Effect        Effect
	SelfModifiers []SelfModifier

	Conditions []UsageCondition
}

// New creates an ability with the standard condition set: alive,
// cooldown (if any), resource (if any), range (if any).
func New(a Ability) *Ability {
	out := a
	if out.ScaleStat == nil {
		out.ScaleStat = model.StatDamage
	}
	if out.Animation == AnimNone {
		out.Animation = AnimAttack
	}

	conds := []UsageCondition{AliveCondition{}}
	if out.Cooldown > 0 {
		conds = append(conds, CooldownCondition{Action: out.ActionID(), Duration: out.Cooldown})
	}
	if out.Cost > 0 {
		conds = append(conds, ResourceCondition{Cost: out.Cost})
	}
	if out.Range > 0 {
		conds = append(conds, RangeCondition{Range: out.Range})
	}
	out.Conditions = append(conds, a.Conditions...)
	return &out
}

// ActionID returns the cooldown bucket of the ability.
func (a *Ability) ActionID() cooldown.ActionID {
	return cooldown.ActionID(a.ID)
}

// ModifierSource is the source tag of modifiers applied by this ability.
func (a *Ability) ModifierSource() string {
	return "ability:" + a.ID
}

// Damage computes the pre-crit base damage for caster.
func (a *Ability) Damage(caster *model.Character) float64 {
	base := a.BaseDamage
	if a.DamageScale != 0 && caster.Stats().Has(a.ScaleStat) {
		base += a.DamageScale * caster.Stats().GetFinalStatValue(a.ScaleStat)
	}
	return max(base, 0)
}

// Execute applies self modifiers then the effect.
func (a *Ability) Execute(ctx *Context) {
	for _, m := range a.SelfModifiers {
		ctx.Caster.Stats().AddModifier(m.Stat,
			model.NewTimedModifier(m.Value, m.Type, a.ModifierSource(), m.Duration))
	}
	if a.Effect != nil {
		a.Effect.Execute(ctx)
	}
}

// CanBeUsed evaluates every condition without side effects.
func (a *Ability) CanBeUsed(ctx *Context) bool {
	for _, c := range a.Conditions {
		if !c.CanBeUsed(ctx) {
			return false
		}
	}
	return true
}

// commit pays every condition cost.
func (a *Ability) commit(ctx *Context) {
	for _, c := range a.Conditions {
		c.OnUse(ctx)
	}
}
