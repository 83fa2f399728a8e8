package boss

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/fsm"
	"github.com/udisondev/encounter/internal/model"
)

// Phase state names.
const (
	StatePhase1     = "phase1"
	StatePhase2     = "phase2"
	StateTransition = "phase_transition"
)

// PhaseState is one phase of the fight. It owns a nested machine of
// sub-states and picks the next sub-state whenever one completes:
//
//	idle → ring attack (off cooldown)
//	     → summon (off cooldown and enough attacks since the last one)
//	     → chase → attack1 / attack2 (alternating when attack2 is set)
//	→ idle
type PhaseState struct {
	name   string
	number int
	ctx    *Context
	tuning Tuning
	sub    *fsm.StateMachine

	idle    *Idle
	chase   *Chase
	attack1 *Attack
	attack2 *Attack
	ring    *RingAttack
	summon  *Summon

	nextIsAttack2 bool

	script     *ScriptTrigger
	onComplete func()
}

func newPhaseState(name string, number int, ctx *Context, tuning Tuning) *PhaseState {
	p := &PhaseState{
		name:   name,
		number: number,
		ctx:    ctx,
		tuning: tuning,
		sub:    fsm.New(name),
	}

	p.idle = &Idle{duration: tuning.IdleDuration}
	p.idle.subState = subState{name: SubIdle, ctx: ctx, complete: p.afterIdle}

	speed := tuning.ChaseSpeedMultiplier
	if speed <= 0 {
		speed = 1
	}
	p.chase = &Chase{speedMultiplier: speed, attackRange: tuning.AttackRange}
	p.chase.subState = subState{name: SubChase, ctx: ctx, complete: p.afterChase}

	p.attack1 = newAttack(ctx, withName(tuning.Attack1, "attack1"), p.backToIdle)
	if tuning.Attack2 != nil {
		p.attack2 = newAttack(ctx, withName(*tuning.Attack2, "attack2"), p.backToIdle)
	}
	p.ring = newRingAttack(ctx, tuning.Ring, p.backToIdle)
	p.summon = newSummon(ctx, tuning.Summon, p.backToIdle)

	return p
}

func withName(spec AttackSpec, fallback string) AttackSpec {
	if spec.Name == "" {
		spec.Name = fallback
	}
	return spec
}

func (p *PhaseState) Name() string { return p.name }

// Number returns the phase number.
func (p *PhaseState) Number() int { return p.number }

// SubMachine implements fsm.HierarchicalState.
func (p *PhaseState) SubMachine() *fsm.StateMachine { return p.sub }

// Tuning returns the repertoire of the phase.
func (p *PhaseState) Tuning() Tuning { return p.tuning }

func (p *PhaseState) Enter() {
	p.ctx.setPhase(p.number)
	p.nextIsAttack2 = false
	p.sub.ChangeState(p.idle)
}

// Tick evaluates the phase-complete trigger. The sub-machine is ticked by
// the outer machine afterwards.
func (p *PhaseState) Tick(float64) {
	if p.onComplete == nil || !p.script.Evaluate(p.ctx) {
		return
	}
	slog.Debug("boss phase complete signalled",
		"boss", p.ctx.Boss.ObjectID(),
		"phase", p.number)
	p.onComplete()
}

func (p *PhaseState) Exit() {}

func (p *PhaseState) afterIdle() {
	p.sub.ChangeState(p.selectNext())
}

// selectNext applies the priority list. Without a target the boss keeps
// idling.
func (p *PhaseState) selectNext() fsm.State {
	if !p.ctx.HasTarget() {
		return p.idle
	}
	if p.ring.Ready() {
		return p.ring
	}
	if p.summon.Ready() {
		return p.summon
	}
	if p.ctx.DistanceToTarget() > p.engageDistance() {
		return p.chase
	}
	return p.nextAttack()
}

func (p *PhaseState) engageDistance() float64 {
	return p.tuning.AttackRange + p.ctx.Boss.Radius() + p.ctx.Target().Radius()
}

func (p *PhaseState) afterChase() {
	p.sub.ChangeState(p.nextAttack())
}

func (p *PhaseState) nextAttack() fsm.State {
	if p.attack2 == nil {
		return p.attack1
	}
	next := p.attack1
	if p.nextIsAttack2 {
		next = p.attack2
	}
	p.nextIsAttack2 = !p.nextIsAttack2
	return next
}

func (p *PhaseState) backToIdle() {
	p.sub.ChangeState(p.idle)
}

// intentionOf maps a sub-state to the coarse AI intention.
func intentionOf(s fsm.State) ai.Intention {
	switch s.(type) {
	case *Idle:
		return ai.IntentionIdle
	case *Chase:
		return ai.IntentionChase
	case *Attack, *RingAttack, *Summon:
		return ai.IntentionAttack
	default:
		return ai.IntentionActive
	}
}

// PhaseTransitionState holds the boss invulnerable for duration seconds
// and then calls done.
type PhaseTransitionState struct {
	ctx      *Context
	duration float64
	elapsed  float64
	done     func()
}

func (t *PhaseTransitionState) Name() string { return StateTransition }

func (t *PhaseTransitionState) Enter() {
	t.elapsed = 0
	t.ctx.Boss.SetVelocity(cp.Vector{})
}

func (t *PhaseTransitionState) Tick(dt float64) {
	t.elapsed += dt
	if model.TimerReached(t.elapsed, t.duration) {
		t.done()
	}
}

func (t *PhaseTransitionState) Exit() {}

// Elapsed returns seconds spent in the transition.
func (t *PhaseTransitionState) Elapsed() float64 {
	return t.elapsed
}
