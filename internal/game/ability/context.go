package ability

import (
	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/combat"
	"github.com/udisondev/encounter/internal/game/cooldown"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

// Env is the set of arena services abilities act on. One Env is shared
// by every caster of a simulation.
type Env struct {
	World       *world.World
	Pipeline    *combat.Pipeline
	Cooldowns   *cooldown.Provider
	Projectiles *projectile.Manager
	Hitboxes    *HitboxManager
	Events      event.Publisher
}

// Context is passed to conditions and effects for one cast.
type Context struct {
	Env       *Env
	Caster    *model.Character
	Ability   *Ability
	Direction cp.Vector // unit vector
	Target    *model.Character
}

// Origin returns the caster position.
func (c *Context) Origin() cp.Vector {
	return c.Caster.Position()
}

// AimPoint returns origin + direction × range.
func (c *Context) AimPoint(rng float64) cp.Vector {
	return c.Origin().Add(c.Direction.Mult(rng))
}

// Strike resolves base damage from the caster against target.
func (c *Context) Strike(base float64, target *model.Character) model.DamageData {
	return c.Env.Pipeline.Strike(c.Caster, base, target)
}

// hostilesInRadius returns live characters hostile to the caster.
func (c *Context) hostilesInRadius(center cp.Vector, radius float64) []*model.Character {
	var out []*model.Character
	for _, t := range c.Env.World.CharactersInRadius(center, radius) {
		if c.Caster.Team().IsHostileTo(t.Team()) {
			out = append(out, t)
		}
	}
	return out
}
