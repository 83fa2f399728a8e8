package ability

import (
	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

// Melee spawns Count hitboxes fanned over SpreadAngle radians around the
// aim direction, each one Interval seconds after the previous.
type Melee struct {
	Count       int
	SpreadAngle float64
	Interval    float64
	Radius      float64
	Offset      float64 // hitbox center distance in front of the caster
	Lifetime    float64
}

func (m *Melee) Kind() Kind { return KindMelee }

func (m *Melee) Execute(ctx *Context) {
	count := max(m.Count, 1)
	base := ctx.Ability.Damage(ctx.Caster)
	aim := ctx.Direction.ToAngle()

	for i := range count {
		angle := aim
		if count > 1 {
			angle += -m.SpreadAngle/2 + m.SpreadAngle*float64(i)/float64(count-1)
		}
		ctx.Env.Hitboxes.Add(&Hitbox{
			Owner:     ctx.Caster,
			Direction: cp.ForAngle(angle),
			Offset:    m.Offset,
			Radius:    m.Radius,
			Delay:     m.Interval * float64(i),
			Lifetime:  m.Lifetime,
			Damage:    base,
			ctx:       ctx,
		})
	}
}

// Hitbox is a short-lived damage circle attached to its owner. Each
// target is hit at most once per hitbox.
type Hitbox struct {
	Owner     *model.Character
	Direction cp.Vector
	Offset    float64
	Radius    float64
	Delay     float64 // seconds before the hitbox activates
	Lifetime  float64 // active seconds; 0 means a single tick
	Damage    float64

	ctx    *Context
	hitSet map[uint32]struct{}
	done   bool
}

// Center returns the hitbox center in front of its owner.
func (h *Hitbox) Center() cp.Vector {
	return h.Owner.Position().Add(projectile.SafeNormalize(h.Direction).Mult(h.Offset))
}

// HasHit reports whether target was already hit by this hitbox.
func (h *Hitbox) HasHit(targetID uint32) bool {
	_, ok := h.hitSet[targetID]
	return ok
}

// IsDone reports whether the hitbox expired.
func (h *Hitbox) IsDone() bool {
	return h.done
}

func (h *Hitbox) tick(dt float64) {
	if h.done {
		return
	}
	if h.Delay > 0 {
		h.Delay -= dt
		if !model.TimerElapsed(h.Delay) {
			return
		}
	}
	if h.Owner.IsDead() {
		h.done = true
		return
	}

	if h.hitSet == nil {
		h.hitSet = make(map[uint32]struct{}, 2)
	}
	for _, target := range h.ctx.hostilesInRadius(h.Center(), h.Radius) {
		if _, seen := h.hitSet[target.ObjectID()]; seen {
			continue
		}
		h.hitSet[target.ObjectID()] = struct{}{}
		h.ctx.Strike(h.Damage, target)
	}

	h.Lifetime -= dt
	if model.TimerElapsed(h.Lifetime) {
		h.done = true
	}
}

// HitboxManager ticks every live hitbox of an arena.
type HitboxManager struct {
	hitboxes []*Hitbox
}

// NewHitboxManager creates an empty manager.
func NewHitboxManager() *HitboxManager {
	return &HitboxManager{}
}

// Add starts tracking h.
func (m *HitboxManager) Add(h *Hitbox) {
	m.hitboxes = append(m.hitboxes, h)
}

// Len returns the number of live hitboxes.
func (m *HitboxManager) Len() int {
	return len(m.hitboxes)
}

// Tick advances every hitbox and drops the expired ones.
func (m *HitboxManager) Tick(dt float64) {
	kept := m.hitboxes[:0]
	for _, h := range m.hitboxes {
		h.tick(dt)
		if !h.done {
			kept = append(kept, h)
		}
	}
	clear(m.hitboxes[len(kept):])
	m.hitboxes = kept
}

// Clear drops every hitbox.
func (m *HitboxManager) Clear() {
	clear(m.hitboxes)
	m.hitboxes = m.hitboxes[:0]
}
