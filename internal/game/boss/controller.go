// Package boss implements the hierarchical boss controller: an outer machine
// of phases, each owning a nested machine of behavior sub-states.
package boss

import (
	"log/slog"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/fsm"
	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/model"
)

// Controller drives one boss. It implements ai.Controller and is ticked by
// the AI tick manager.
//
//	phase1 --health <= threshold or script--> phase_transition --duration--> phase2
//
// Death is handled outside the machine: HandleDeath clears it.
type Controller struct {
	cfg    Config
	ctx    *Context
	hfsm   *fsm.HierarchicalStateMachine
	events event.Publisher

	phase1     *PhaseState
	phase2     *PhaseState
	transition *PhaseTransitionState

	isTransitioning         bool
	hasTransitionedToPhase2 bool
	dead                    bool
	running                 bool
	intention               ai.Intention

	onPhaseChanged []func(phase int)
}

// NewController builds the machine for boss. spawner may be nil for a boss
// that never summons. The machine enters phase 1 on Start.
func NewController(boss *model.Character, env *ability.Env, cfg Config, spawner MinionSpawner) *Controller {
	events := env.Events
	if events == nil {
		events = event.Nop()
	}

	c := &Controller{
		cfg:    cfg,
		ctx:    newContext(boss, env, cfg, spawner),
		hfsm:   fsm.NewHierarchical(cfg.ID),
		events: events,
	}

	c.phase1 = newPhaseState(StatePhase1, 1, c.ctx, cfg.Phase1)
	c.phase1.script = NewScriptTrigger(cfg.PhaseCompleteScript)
	c.phase1.onComplete = func() { c.StartPhaseTransition() }
	c.phase2 = newPhaseState(StatePhase2, 2, c.ctx, cfg.Phase2)
	c.transition = &PhaseTransitionState{
		ctx:      c.ctx,
		duration: cfg.PhaseTransitionDuration,
		done:     c.completeTransition,
	}

	for _, p := range []*PhaseState{c.phase1, c.phase2} {
		p.sub.OnChange(func(_, to fsm.State) { c.SetIntention(intentionOf(to)) })
	}
	c.hfsm.OnChange(func(from, to fsm.State) {
		slog.Debug("boss state changed",
			"boss", boss.ObjectID(),
			"from", stateName(from),
			"to", stateName(to))
	})

	boss.Health().OnDeath(func(d model.DamageData) {
		c.HandleDeath(d.Instigator)
	})
	return c
}

func stateName(s fsm.State) string {
	if s == nil {
		return ""
	}
	return s.Name()
}

// Config returns the boss configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Context returns the shared boss context.
func (c *Controller) Context() *Context {
	return c.ctx
}

// Boss returns the controlled character.
func (c *Controller) Boss() *model.Character {
	return c.ctx.Boss
}

// Machine returns the outer machine.
func (c *Controller) Machine() *fsm.HierarchicalStateMachine {
	return c.hfsm
}

// CurrentState returns the name of the outer state, "" when cleared.
func (c *Controller) CurrentState() string {
	return stateName(c.hfsm.Current())
}

// CurrentSubState returns the name of the nested state, "" when none.
func (c *Controller) CurrentSubState() string {
	return stateName(c.hfsm.CurrentSubState())
}

// Phase returns the current phase number.
func (c *Controller) Phase() int {
	return c.ctx.Phase()
}

// IsTransitioning reports whether a phase transition is in progress.
func (c *Controller) IsTransitioning() bool {
	return c.isTransitioning
}

// IsDead reports whether HandleDeath ran.
func (c *Controller) IsDead() bool {
	return c.dead
}

// OnPhaseChanged registers fn to be called with the new phase number.
func (c *Controller) OnPhaseChanged(fn func(phase int)) {
	if fn != nil {
		c.onPhaseChanged = append(c.onPhaseChanged, fn)
	}
}

// Start implements ai.Controller.
func (c *Controller) Start() {
	c.running = true
	if c.hfsm.Current() == nil && !c.dead {
		c.hfsm.ChangeState(c.phase1)
	}

	if ai.IsDebugEnabled() {
		slog.Debug("boss controller started",
			"boss", c.cfg.ID,
			"objectID", c.ctx.Boss.ObjectID())
	}
}

// Stop implements ai.Controller.
func (c *Controller) Stop() {
	c.running = false
}

// SetIntention implements ai.Controller.
func (c *Controller) SetIntention(intention ai.Intention) {
	old := c.intention
	c.intention = intention

	if old != intention && ai.IsDebugEnabled() {
		slog.Debug("boss intention changed",
			"boss", c.cfg.ID,
			"objectID", c.ctx.Boss.ObjectID(),
			"from", old,
			"to", intention)
	}
}

// CurrentIntention implements ai.Controller.
func (c *Controller) CurrentIntention() ai.Intention {
	return c.intention
}

// Tick advances the fight. The health threshold is checked before the
// machine ticks.
func (c *Controller) Tick(dt float64) {
	if !c.running || c.dead {
		return
	}
	c.ctx.tick(dt)

	// The transition window starts counting on the tick after entry.
	if !c.isTransitioning && !c.hasTransitionedToPhase2 &&
		c.ctx.HealthPercent() <= c.cfg.Phase2HealthThreshold {
		if c.StartPhaseTransition() {
			return
		}
	}

	c.hfsm.Tick(dt)
}

// StartPhaseTransition enters the transition state and makes the boss
// invulnerable. Returns false if a transition already started or phase 2
// was already reached.
func (c *Controller) StartPhaseTransition() bool {
	if c.isTransitioning || c.hasTransitionedToPhase2 || c.dead {
		return false
	}
	c.isTransitioning = true
	c.ctx.Boss.Health().SetInvulnerable(true)
	c.hfsm.ChangeState(c.transition)
	c.SetIntention(ai.IntentionActive)

	slog.Info("boss phase transition started",
		"boss", c.cfg.ID,
		"objectID", c.ctx.Boss.ObjectID(),
		"health", c.ctx.HealthPercent())
	return true
}

func (c *Controller) completeTransition() {
	if !c.isTransitioning {
		return
	}
	c.isTransitioning = false
	c.hasTransitionedToPhase2 = true
	c.ctx.Boss.Health().SetInvulnerable(false)
	c.hfsm.ChangeState(c.phase2)

	phase := c.ctx.Phase()
	slog.Info("boss phase changed",
		"boss", c.cfg.ID,
		"objectID", c.ctx.Boss.ObjectID(),
		"phase", phase)

	c.events.Publish(event.Event{
		Type:    event.BossPhaseChanged,
		Actor:   c.ctx.Boss.ObjectID(),
		Payload: event.PhaseChange{Boss: c.cfg.ID, Phase: phase},
	})
	for _, fn := range c.onPhaseChanged {
		fn(phase)
	}
}

// HandleDeath stops the machine and announces the death. Runs once per
// life; killer is the instigator of the lethal hit.
func (c *Controller) HandleDeath(killer uint32) {
	if c.dead {
		return
	}
	c.dead = true
	c.isTransitioning = false
	c.hfsm.Clear()
	c.SetIntention(ai.IntentionDead)

	slog.Info("boss died",
		"boss", c.cfg.ID,
		"objectID", c.ctx.Boss.ObjectID(),
		"killer", killer,
		"phase", c.ctx.Phase(),
		"duration", c.ctx.Elapsed())

	c.events.Publish(event.Event{
		Type:   event.BossDied,
		Actor:  c.ctx.Boss.ObjectID(),
		Target: killer,
		Payload: event.BossDeath{
			Boss:     c.cfg.ID,
			Phase:    c.ctx.Phase(),
			Duration: c.ctx.Elapsed(),
		},
	})
}

// Reset brings a respawned boss back to phase 1.
func (c *Controller) Reset() {
	c.hfsm.Clear()
	c.dead = false
	c.isTransitioning = false
	c.hasTransitionedToPhase2 = false
	c.ctx.Reset()
	c.ctx.Boss.Health().SetInvulnerable(false)
	c.ctx.Env.Cooldowns.Reset(c.ctx.Boss.ObjectID())
	if c.running {
		c.hfsm.ChangeState(c.phase1)
	}
}
