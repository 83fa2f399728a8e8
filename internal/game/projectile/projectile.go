package projectile

import (
	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/model"
)

// DestroyReason tells why a projectile left the arena.
type DestroyReason int8

const (
	ReasonNone     DestroyReason = iota
	ReasonExpired                // lifetime elapsed
	ReasonArrived                // movement strategy reported done
	ReasonSpent                  // hits exceeded pierce allowance
	ReasonCleared                // removed by the manager
)

func (r DestroyReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonArrived:
		return "arrived"
	case ReasonSpent:
		return "spent"
	case ReasonCleared:
		return "cleared"
	default:
		return "none"
	}
}

// HitFunc resolves the effect of a projectile touching a target.
type HitFunc func(p *Projectile, target *model.Character)

// Projectile is an in-flight object. Collision bookkeeping lives here:
// each target is hit at most once, and the projectile is destroyed once
// hits exceed Pierce.
type Projectile struct {
	*model.WorldObject

	OwnerID  uint32
	Movement MovementStrategy
	Lifetime float64
	Pierce   int
	OnHit    HitFunc

	transform Transform
	elapsed   float64
	hits      int
	hitSet    map[uint32]struct{}
	destroyed DestroyReason
}

// Config describes a projectile to spawn.
type Config struct {
	ID        uint32
	Name      string
	OwnerID   uint32
	Team      model.Team
	Origin    cp.Vector
	Direction cp.Vector
	Radius    float64
	Lifetime  float64 // non-positive expires on the first tick
	Pierce    int
	Movement  MovementStrategy
	OnHit     HitFunc
}

// New builds a projectile and initializes its movement strategy.
func New(cfg Config) *Projectile {
	p := &Projectile{
		WorldObject: model.NewWorldObject(cfg.ID, cfg.Name, cfg.Origin, cfg.Radius, cfg.Team),
		OwnerID:     cfg.OwnerID,
		Movement:    cfg.Movement,
		Lifetime:    cfg.Lifetime,
		Pierce:      max(cfg.Pierce, 0),
		OnHit:       cfg.OnHit,
		transform:   Transform{Position: cfg.Origin, Forward: SafeNormalize(cfg.Direction)},
		hitSet:      make(map[uint32]struct{}, 2),
	}
	p.Data = p
	if p.Movement != nil {
		p.Movement.Initialize(&p.transform)
	}
	return p
}

// Transform returns the current kinematic state.
func (p *Projectile) Transform() Transform {
	return p.transform
}

// Elapsed returns seconds since spawn.
func (p *Projectile) Elapsed() float64 {
	return p.elapsed
}

// Hits returns the number of unique targets hit.
func (p *Projectile) Hits() int {
	return p.hits
}

// HasHit reports whether target was already hit.
func (p *Projectile) HasHit(targetID uint32) bool {
	_, ok := p.hitSet[targetID]
	return ok
}

// IsDestroyed reports whether the projectile is done.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed != ReasonNone
}

// DestroyReason returns why the projectile was destroyed.
func (p *Projectile) DestroyReason() DestroyReason {
	return p.destroyed
}

// Destroy marks the projectile for removal. The first reason wins.
func (p *Projectile) Destroy(reason DestroyReason) {
	if p.destroyed != ReasonNone {
		return
	}
	p.destroyed = reason
	p.SetActive(false)
}

// Advance runs the movement strategy and returns the new position.
// Velocity is updated from the displacement so threat detection can read it.
func (p *Projectile) Advance(dt float64) cp.Vector {
	if p.IsDestroyed() {
		return p.transform.Position
	}
	before := p.transform.Position
	p.elapsed += dt
	if p.Movement != nil {
		p.Movement.Update(dt)
	}
	if dt > 0 {
		p.SetVelocity(p.transform.Position.Sub(before).Mult(1 / dt))
	}
	return p.transform.Position
}

// TryHit applies the hit callback to target if it is a new, hostile,
// live target. Returns true if the hit counted.
func (p *Projectile) TryHit(target *model.Character) bool {
	if p.IsDestroyed() || target == nil || target.IsDead() {
		return false
	}
	if target.ObjectID() == p.OwnerID || !p.Team().IsHostileTo(target.Team()) {
		return false
	}
	if _, seen := p.hitSet[target.ObjectID()]; seen {
		return false
	}

	p.hitSet[target.ObjectID()] = struct{}{}
	p.hits++
	if p.OnHit != nil {
		p.OnHit(p, target)
	}
	if p.hits > p.Pierce {
		p.Destroy(ReasonSpent)
	}
	return true
}

// checkLifetime destroys the projectile when its lifetime elapsed or its
// movement reported completion. Every projectile has a finite lifetime.
func (p *Projectile) checkLifetime() {
	if p.IsDestroyed() {
		return
	}
	if model.TimerReached(p.elapsed, p.Lifetime) {
		p.Destroy(ReasonExpired)
		return
	}
	if p.Movement != nil && p.Movement.IsDone() {
		p.Destroy(ReasonArrived)
	}
}
