package combat

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/model"
)

const (
	// DefaultMinDamagePercent is the damage floor as a share of raw damage.
	DefaultMinDamagePercent = 0.2

	// DefaultCritMultiplier is used when the attacker has no CritMultiplier stat.
	DefaultCritMultiplier = 2.0

	// armorConstant shapes the armor curve: reduction = armor / (armor + armorConstant).
	armorConstant = 100.0
)

// AttackInput is everything needed to resolve one hit before mitigation.
type AttackInput struct {
	BaseDamage     float64
	CritChance     float64 // [0, 1]
	CritMultiplier float64
	Instigator     uint32
	SourcePosition cp.Vector
}

// Mitigation is the defensive model of a target. A nil *Mitigation means
// the target has no armor model and takes raw damage.
type Mitigation struct {
	Armor       float64
	FlatDefense float64
}

// HitResult содержит результат одной атаки для наблюдения в тестах и логах.
type HitResult struct {
	TargetID uint32
	Data     model.DamageData
	Applied  float64
	Killed   bool
}

// Pipeline resolves attacks: crit roll, mitigation, floor, rounding.
//
// Resolution order:
//  1. isCrit = rand() <= critChance
//  2. raw = isCrit ? base*critMultiplier : base
//  3. afterArmor = raw * (1 - armor/(armor+100)); afterDefense = afterArmor - flatDefense
//  4. final = max(afterDefense, raw*MinDamagePercent)
//  5. round to nearest integer
type Pipeline struct {
	// Rand returns a value in [0, 1). Injected for deterministic tests.
	Rand func() float64

	MinDamagePercent float64

	// hitObserver: callback для наблюдения за результатами атак (nil в production).
	hitObserver func(HitResult)
}

// NewPipeline creates a pipeline backed by math/rand/v2.
func NewPipeline(minDamagePercent float64) *Pipeline {
	if minDamagePercent < 0 {
		minDamagePercent = 0
	}
	return &Pipeline{
		Rand:             rand.Float64,
		MinDamagePercent: minDamagePercent,
	}
}

// SetHitObserver installs a callback invoked after each delivered hit.
func (p *Pipeline) SetHitObserver(fn func(HitResult)) {
	p.hitObserver = fn
}

// RollCrit rolls a critical hit. A non-positive chance never crits.
func (p *Pipeline) RollCrit(critChance float64) bool {
	if critChance <= 0 {
		return false
	}
	return p.Rand() <= critChance
}

// Resolve computes the final damage of one hit against mit.
func (p *Pipeline) Resolve(in AttackInput, mit *Mitigation) model.DamageData {
	isCrit := p.RollCrit(in.CritChance)

	raw := in.BaseDamage
	if isCrit {
		raw *= in.CritMultiplier
	}

	final := raw
	if mit != nil {
		final = Mitigate(raw, *mit, p.MinDamagePercent)
	}

	return model.DamageData{
		Amount:         math.Round(final),
		IsCritical:     isCrit,
		Instigator:     in.Instigator,
		SourcePosition: in.SourcePosition,
	}
}

// Mitigate applies the armor curve, flat defense and the damage floor.
// Negative armor is treated as 0.
func Mitigate(raw float64, mit Mitigation, minDamagePercent float64) float64 {
	armor := mit.Armor
	if armor < 0 {
		armor = 0
	}

	reduction := armor / (armor + armorConstant)
	afterArmor := raw * (1 - reduction)
	afterDefense := afterArmor - mit.FlatDefense

	floor := raw * minDamagePercent
	return max(afterDefense, floor)
}

// Deliver hands resolved damage to target and reports the result.
// Returns the amount actually removed.
func (p *Pipeline) Deliver(targetID uint32, target model.Damageable, data model.DamageData) float64 {
	applied := target.TakeDamage(data)

	killed := false
	if c, ok := target.(*model.Character); ok {
		killed = applied > 0 && c.IsDead()
	}

	if applied > 0 {
		slog.Debug("damage applied",
			"target", targetID,
			"instigator", data.Instigator,
			"amount", applied,
			"crit", data.IsCritical,
			"killed", killed)
	}

	if p.hitObserver != nil {
		p.hitObserver(HitResult{
			TargetID: targetID,
			Data:     data,
			Applied:  applied,
			Killed:   killed,
		})
	}
	return applied
}

// Strike resolves a stats-driven attack from attacker against target and
// delivers it in one call.
func (p *Pipeline) Strike(attacker *model.Character, base float64, target *model.Character) model.DamageData {
	in := AttackFromStats(attacker.Stats(), base)
	in.Instigator = attacker.ObjectID()
	in.SourcePosition = attacker.Position()

	data := p.Resolve(in, MitigationFromStats(target.Stats()))
	p.Deliver(target.ObjectID(), target, data)
	return data
}

// AttackFromStats reads crit stats from attacker. Missing stats mean no
// crit chance and the default multiplier.
func AttackFromStats(attacker *model.StatsProvider, base float64) AttackInput {
	in := AttackInput{
		BaseDamage:     base,
		CritMultiplier: DefaultCritMultiplier,
	}
	if attacker == nil {
		return in
	}
	if attacker.Has(model.StatCritChance) {
		in.CritChance = attacker.GetFinalStatValue(model.StatCritChance)
	}
	if attacker.Has(model.StatCritMultiplier) {
		in.CritMultiplier = attacker.GetFinalStatValue(model.StatCritMultiplier)
	}
	return in
}

// MitigationFromStats builds the defensive model of target. Returns nil
// when target tracks neither Armor nor Defense.
func MitigationFromStats(target *model.StatsProvider) *Mitigation {
	if target == nil {
		return nil
	}
	hasArmor := target.Has(model.StatArmor)
	hasDefense := target.Has(model.StatDefense)
	if !hasArmor && !hasDefense {
		return nil
	}

	m := &Mitigation{}
	if hasArmor {
		m.Armor = target.GetFinalStatValue(model.StatArmor)
	}
	if hasDefense {
		m.FlatDefense = target.GetFinalStatValue(model.StatDefense)
	}
	return m
}
