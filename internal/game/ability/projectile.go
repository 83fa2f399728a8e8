package ability

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

// Projectile launches one projectile toward origin + direction × range.
// In-flight collisions are handled by the projectile itself.
type Projectile struct {
	Movement  projectile.Kind
	Speed     float64
	Lifetime  float64 // 0 means travel time to the aim point
	Pierce    int
	Radius    float64
	MaxHeight float64
	Curve     projectile.Curve

	TurnRate     float64
	SearchRadius float64
}

func (p *Projectile) Kind() Kind { return KindProjectile }

func (p *Projectile) Execute(ctx *Context) {
	p.Launch(ctx, ctx.Origin(), ctx.Direction, ctx.Ability.Range, ctx.Ability.Damage(ctx.Caster))
}

// TravelTime returns distance / speed, 0 for a non-positive speed.
func (p *Projectile) TravelTime(distance float64) float64 {
	if p.Speed <= 0 {
		return 0
	}
	return distance / p.Speed
}

// Launch spawns a projectile from origin along dir. Used by the ability
// itself and by boss attacks (ring attack) that fire several at once.
func (p *Projectile) Launch(ctx *Context, origin, dir cp.Vector, rng, damage float64) *projectile.Projectile {
	dir = projectile.SafeNormalize(dir)
	target := origin.Add(dir.Mult(rng))
	travel := p.TravelTime(origin.Distance(target))

	lifetime := p.Lifetime
	if lifetime <= 0 {
		lifetime = travel
	}

	caster := ctx.Caster
	proj := projectile.New(projectile.Config{
		ID:        ctx.Env.World.IDs().NextProjectileID(),
		Name:      ctx.Ability.ID,
		OwnerID:   caster.ObjectID(),
		Team:      caster.Team(),
		Origin:    origin,
		Direction: dir,
		Radius:    p.Radius,
		Lifetime:  lifetime,
		Pierce:    p.Pierce,
		Movement:  p.movement(ctx, target),
		OnHit: func(_ *projectile.Projectile, hit *model.Character) {
			ctx.Strike(damage, hit)
		},
	})

	if err := ctx.Env.Projectiles.Spawn(proj); err != nil {
		slog.Warn("projectile spawn failed",
			"ability", ctx.Ability.ID,
			"caster", caster.ObjectID(),
			"error", err)
		return nil
	}
	return proj
}

func (p *Projectile) movement(ctx *Context, target cp.Vector) projectile.MovementStrategy {
	switch p.Movement {
	case projectile.KindArc:
		return projectile.NewArc(target, p.Speed, p.MaxHeight, p.Curve)
	case projectile.KindHoming:
		h := projectile.NewHoming(p.Speed, p.TurnRate, p.SearchRadius,
			ctx.Env.Projectiles.HostileFinder(ctx.Caster.Team()))
		if ctx.Target != nil && ctx.Target.IsValidTarget() {
			h.SetTarget(ctx.Target)
		}
		return h
	default:
		return projectile.NewLinear(p.Speed)
	}
}
