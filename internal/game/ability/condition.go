package ability

import (
	"github.com/udisondev/encounter/internal/game/cooldown"
)

// UsageCondition gates an ability. CanBeUsed must not have side effects;
// OnUse pays the cost and runs only after the ability actually executed.
type UsageCondition interface {
	CanBeUsed(ctx *Context) bool
	OnUse(ctx *Context)
}

// CooldownCondition blocks the ability while its action is on cooldown
// and starts the cooldown on use.
type CooldownCondition struct {
	Action   cooldown.ActionID
	Duration float64
}

func (c CooldownCondition) CanBeUsed(ctx *Context) bool {
	return !ctx.Env.Cooldowns.IsOnCooldown(ctx.Caster.ObjectID(), c.Action)
}

func (c CooldownCondition) OnUse(ctx *Context) {
	ctx.Env.Cooldowns.StartCooldown(ctx.Caster.ObjectID(), c.Action, c.Duration)
}

// ResourceCondition requires Cost mana and consumes it on use.
type ResourceCondition struct {
	Cost float64
}

func (c ResourceCondition) CanBeUsed(ctx *Context) bool {
	return ctx.Caster.Mana().HasEnough(c.Cost)
}

func (c ResourceCondition) OnUse(ctx *Context) {
	ctx.Caster.Mana().Consume(c.Cost)
}

// AliveCondition blocks casts from dead characters.
type AliveCondition struct{}

func (AliveCondition) CanBeUsed(ctx *Context) bool {
	return !ctx.Caster.IsDead()
}

func (AliveCondition) OnUse(*Context) {}

// RangeCondition requires a live target within Range of the caster
// (edge to edge). Casts without a target pass.
type RangeCondition struct {
	Range float64
}

func (c RangeCondition) CanBeUsed(ctx *Context) bool {
	if ctx.Target == nil {
		return true
	}
	if !ctx.Target.IsValidTarget() {
		return false
	}
	reach := c.Range + ctx.Caster.Radius() + ctx.Target.Radius()
	return ctx.Caster.DistanceSquared(ctx.Target.WorldObject) <= reach*reach
}

func (RangeCondition) OnUse(*Context) {}
