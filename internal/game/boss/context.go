package boss

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

// MinionSpawner places minions around a boss. Implemented by the spawn
// manager; returns the number actually spawned.
type MinionSpawner interface {
	SummonMinions(boss *model.Character, templateID string, count int, radius float64) int
}

// Context is the state shared by every phase and sub-state of one boss.
// It is owned by the Controller and never shared between bosses.
type Context struct {
	Boss *model.Character
	Env  *ability.Env

	// target is a back-reference; the boss never owns its target.
	target   *model.Character
	acquirer *ai.TargetAcquirer
	spawner  MinionSpawner
	minionID string

	phase              int
	facing             cp.Vector
	attacksSinceSummon int
	summons            int
	elapsed            float64
}

func newContext(boss *model.Character, env *ability.Env, cfg Config, spawner MinionSpawner) *Context {
	return &Context{
		Boss:     boss,
		Env:      env,
		acquirer: ai.NewTargetAcquirer(boss, env.World, cfg.AcquireRange, cfg.ReacquireCooldown),
		spawner:  spawner,
		minionID: cfg.MinionID,
		phase:    1,
		facing:   cp.Vector{X: 1},
	}
}

// Target returns the current target, nil if none.
func (c *Context) Target() *model.Character {
	return c.target
}

// SetTarget overrides the acquired target until the next re-acquire.
func (c *Context) SetTarget(t *model.Character) {
	c.target = t
	c.acquirer.SetTarget(t)
}

// HasTarget reports whether the target is set and still valid.
func (c *Context) HasTarget() bool {
	return c.target != nil && c.target.IsValidTarget()
}

// DistanceToTarget returns the center distance to the target, +Inf
// without one.
func (c *Context) DistanceToTarget() float64 {
	if !c.HasTarget() {
		return math.Inf(1)
	}
	return c.Boss.Position().Distance(c.target.Position())
}

// HealthPercent returns boss health in [0, 1].
func (c *Context) HealthPercent() float64 {
	return c.Boss.Health().Percent()
}

// Phase returns the current phase number, starting at 1.
func (c *Context) Phase() int {
	return c.phase
}

// setPhase only moves forward; Reset is the only way back.
func (c *Context) setPhase(p int) {
	if p > c.phase {
		c.phase = p
	}
}

// Facing returns the last aim direction of the boss.
func (c *Context) Facing() cp.Vector {
	return c.facing
}

// faceTarget turns the boss toward its target if it has one.
func (c *Context) faceTarget() cp.Vector {
	if c.HasTarget() {
		d := c.target.Position().Sub(c.Boss.Position())
		if d.LengthSq() > 1e-12 {
			c.facing = projectile.SafeNormalize(d)
		}
	}
	return c.facing
}

// AttacksSinceSummon returns the number of melee attacks landed or
// swung since the last summon.
func (c *Context) AttacksSinceSummon() int {
	return c.attacksSinceSummon
}

// Summons returns the total number of minions summoned.
func (c *Context) Summons() int {
	return c.summons
}

// Elapsed returns the fight time in seconds.
func (c *Context) Elapsed() float64 {
	return c.elapsed
}

func (c *Context) tick(dt float64) {
	c.elapsed += dt
	c.target = c.acquirer.Tick(dt)
}

// Reset returns the context to its spawn state.
func (c *Context) Reset() {
	c.target = nil
	c.acquirer.Reset()
	c.phase = 1
	c.facing = cp.Vector{X: 1}
	c.attacksSinceSummon = 0
	c.summons = 0
	c.elapsed = 0
}
