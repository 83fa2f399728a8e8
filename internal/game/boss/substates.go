package boss

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/cooldown"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

// Sub-state names.
const (
	SubIdle   = "idle"
	SubChase  = "chase"
	SubRing   = "ring_attack"
	SubSummon = "summon"
)

// Cooldown buckets of the boss repertoire.
const (
	ActionRing   cooldown.ActionID = "boss:ring"
	ActionSummon cooldown.ActionID = "boss:summon"
)

// subState is embedded by every sub-state. complete hands control back to
// the owning phase.
type subState struct {
	name     string
	ctx      *Context
	complete func()
	elapsed  float64
}

func (s *subState) Name() string { return s.name }

func (s *subState) Exit() {}

func (s *subState) finish() {
	if s.complete != nil {
		s.complete()
	}
}

// Idle waits for duration seconds.
type Idle struct {
	subState
	duration float64
}

func (s *Idle) Enter() { s.elapsed = 0 }

func (s *Idle) Tick(dt float64) {
	s.elapsed += dt
	if model.TimerReached(s.elapsed, s.duration) {
		s.finish()
	}
}

// Chase moves toward the target until it is within attack range. A
// missing target completes the state at once, as if it had arrived.
type Chase struct {
	subState
	speedMultiplier float64
	attackRange     float64
}

func (s *Chase) Enter() { s.elapsed = 0 }

func (s *Chase) Exit() {
	s.ctx.Boss.SetVelocity(cp.Vector{})
}

func (s *Chase) Tick(dt float64) {
	if !s.ctx.HasTarget() {
		s.finish()
		return
	}
	s.elapsed += dt

	boss := s.ctx.Boss
	target := s.ctx.Target()
	stop := s.attackRange + boss.Radius() + target.Radius()
	speed := boss.MoveSpeed() * s.speedMultiplier

	s.ctx.faceTarget()
	if ai.MoveToward(s.ctx.Env.World, boss, target.Position(), stop, speed, dt) {
		s.finish()
	}
}

// timedAttack is the two-beat timing shared by every attack: a warning at
// enter, the effect exactly once when elapsed crosses damageDelay and the
// exit at totalDuration.
type timedAttack struct {
	subState
	damageDelay   float64
	totalDuration float64
	fired         bool
	fire          func()
}

func (s *timedAttack) Enter() {
	s.elapsed = 0
	s.fired = false
}

func (s *timedAttack) Tick(dt float64) {
	s.elapsed += dt
	if !s.fired && model.TimerReached(s.elapsed, s.damageDelay) {
		s.fired = true
		s.fire()
	}
	if model.TimerReached(s.elapsed, s.totalDuration) {
		s.finish()
	}
}

// HasFired reports whether the effect of the current run fired.
func (s *timedAttack) HasFired() bool {
	return s.fired
}

func (s *timedAttack) warn(pos cp.Vector, radius float64) {
	s.ctx.Env.Events.Publish(event.Event{
		Type:  event.BossWarning,
		Actor: s.ctx.Boss.ObjectID(),
		Payload: event.Warning{
			Attack:   s.name,
			Position: pos,
			Radius:   radius,
			Delay:    s.damageDelay,
		},
	})
}

// Attack is a telegraphed melee swing hitting every hostile in a circle in
// front of the boss.
type Attack struct {
	timedAttack
	spec   AttackSpec
	impact cp.Vector
}

func newAttack(ctx *Context, spec AttackSpec, complete func()) *Attack {
	a := &Attack{spec: spec}
	a.subState = subState{name: spec.Name, ctx: ctx, complete: complete}
	a.damageDelay = spec.DamageDelay
	a.totalDuration = spec.TotalDuration
	a.fire = a.strike
	return a
}

func (a *Attack) Enter() {
	a.timedAttack.Enter()
	dir := a.ctx.faceTarget()
	a.impact = a.ctx.Boss.Position().Add(dir.Mult(a.spec.Reach))
	a.warn(a.impact, a.spec.Radius)
}

func (a *Attack) strike() {
	boss := a.ctx.Boss
	damage := a.spec.Damage
	if a.spec.DamageScale != 0 {
		damage += a.spec.DamageScale * boss.Stats().GetFinalStatValueOr(model.StatDamage, 0)
	}

	hits := 0
	for _, t := range a.ctx.Env.World.CharactersInRadius(a.impact, a.spec.Radius) {
		if !boss.Team().IsHostileTo(t.Team()) {
			continue
		}
		a.ctx.Env.Pipeline.Strike(boss, damage, t)
		hits++
	}
	a.ctx.attacksSinceSummon++

	slog.Debug("boss attack fired",
		"boss", boss.ObjectID(),
		"attack", a.spec.Name,
		"hits", hits)
}

// RingAttack fires projectiles evenly around the boss. The cooldown starts
// on enter.
type RingAttack struct {
	timedAttack
	spec    RingSpec
	ability *ability.Ability
	shot    *ability.Projectile
}

func newRingAttack(ctx *Context, spec RingSpec, complete func()) *RingAttack {
	r := &RingAttack{
		spec:    spec,
		ability: &ability.Ability{ID: SubRing, Name: "Ring", Range: spec.Range},
		shot: &ability.Projectile{
			Movement: projectile.KindLinear,
			Speed:    spec.Speed,
			Radius:   spec.Radius,
		},
	}
	r.subState = subState{name: SubRing, ctx: ctx, complete: complete}
	r.damageDelay = spec.DamageDelay
	r.totalDuration = spec.TotalDuration
	r.fire = r.launch
	return r
}

// Ready reports whether the ring is configured and off cooldown.
func (r *RingAttack) Ready() bool {
	if r.spec.Projectiles <= 0 {
		return false
	}
	return !r.ctx.Env.Cooldowns.IsOnCooldown(r.ctx.Boss.ObjectID(), ActionRing)
}

func (r *RingAttack) Enter() {
	r.timedAttack.Enter()
	r.ctx.Env.Cooldowns.StartCooldown(r.ctx.Boss.ObjectID(), ActionRing, r.spec.Cooldown)
	r.warn(r.ctx.Boss.Position(), r.spec.Range)
}

func (r *RingAttack) launch() {
	cast := &ability.Context{
		Env:       r.ctx.Env,
		Caster:    r.ctx.Boss,
		Ability:   r.ability,
		Direction: r.ctx.Facing(),
	}
	origin := r.ctx.Boss.Position()
	step := 2 * math.Pi / float64(r.spec.Projectiles)
	base := r.ctx.Facing().ToAngle()

	launched := 0
	for i := range r.spec.Projectiles {
		dir := cp.ForAngle(base + step*float64(i))
		if r.shot.Launch(cast, origin, dir, r.spec.Range, r.spec.Damage) != nil {
			launched++
		}
	}

	slog.Debug("boss ring fired",
		"boss", r.ctx.Boss.ObjectID(),
		"projectiles", launched)
}

// Summon calls minions around the boss. The cooldown starts and the attack
// counter resets on enter.
type Summon struct {
	timedAttack
	spec SummonSpec
}

func newSummon(ctx *Context, spec SummonSpec, complete func()) *Summon {
	s := &Summon{spec: spec}
	s.subState = subState{name: SubSummon, ctx: ctx, complete: complete}
	s.damageDelay = spec.DamageDelay
	s.totalDuration = spec.TotalDuration
	s.fire = s.summon
	return s
}

// Ready reports whether summoning is configured, off cooldown and enough
// attacks happened since the last summon.
func (s *Summon) Ready() bool {
	if s.spec.Count <= 0 || s.ctx.spawner == nil || s.ctx.minionID == "" {
		return false
	}
	if s.ctx.Env.Cooldowns.IsOnCooldown(s.ctx.Boss.ObjectID(), ActionSummon) {
		return false
	}
	return s.ctx.attacksSinceSummon >= s.spec.MinAttacksBeforeSummon
}

func (s *Summon) Enter() {
	s.timedAttack.Enter()
	s.ctx.Env.Cooldowns.StartCooldown(s.ctx.Boss.ObjectID(), ActionSummon, s.spec.Cooldown)
	s.ctx.attacksSinceSummon = 0
	s.warn(s.ctx.Boss.Position(), s.spec.Radius)
}

func (s *Summon) summon() {
	n := s.ctx.spawner.SummonMinions(s.ctx.Boss, s.ctx.minionID, s.spec.Count, s.spec.Radius)
	s.ctx.summons += n

	slog.Debug("boss summoned minions",
		"boss", s.ctx.Boss.ObjectID(),
		"minion", s.ctx.minionID,
		"requested", s.spec.Count,
		"spawned", n)
}
