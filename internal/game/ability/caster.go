package ability

import (
	"context"
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/looplab/fsm"

	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

// Cast states.
const (
	StateIdle    = "idle"
	StateWindup  = "windup"
	StateResolve = "resolve"
)

// Cast events.
const (
	eventCast      = "cast"
	eventRelease   = "release"
	eventFinish    = "finish"
	eventInterrupt = "interrupt"
)

// Caster sequences the casts of one character:
//
//	idle --cast--> windup --release--> resolve --finish--> idle
//	                  \----interrupt----------------------/
//
// Conditions are checked when the cast is requested; the effect runs and
// costs are paid only at release. A release without a pending cast is a
// no-op, so an interrupted cast can never commit.
type Caster struct {
	owner    *model.Character
	env      *Env
	animator Animator
	slots    []*Ability

	machine *fsm.FSM
	pending *Context
	windup  float64

	onCast []func(ctx *Context)
}

// NewCaster creates a caster for owner. A nil animator means NopAnimator.
func NewCaster(owner *model.Character, env *Env, animator Animator, slots []*Ability) *Caster {
	if animator == nil {
		animator = NopAnimator{}
	}
	c := &Caster{
		owner:    owner,
		env:      env,
		animator: animator,
		slots:    slots,
	}

	c.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventCast, Src: []string{StateIdle}, Dst: StateWindup},
			{Name: eventRelease, Src: []string{StateWindup}, Dst: StateResolve},
			{Name: eventFinish, Src: []string{StateResolve}, Dst: StateIdle},
			{Name: eventInterrupt, Src: []string{StateWindup}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_" + StateWindup: func(context.Context, *fsm.Event) {
				c.animator.Play(c.pending.Ability.Animation)
			},
			"enter_" + StateResolve: func(context.Context, *fsm.Event) {
				c.resolve()
			},
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("cast state changed",
					"caster", c.owner.ObjectID(),
					"event", e.Event,
					"from", e.Src,
					"to", e.Dst)
			},
		},
	)
	return c
}

// Owner returns the casting character.
func (c *Caster) Owner() *model.Character {
	return c.owner
}

// Slots returns the slotted abilities.
func (c *Caster) Slots() []*Ability {
	return c.slots
}

// Slot returns the ability in slot i.
func (c *Caster) Slot(i int) (*Ability, bool) {
	if i < 0 || i >= len(c.slots) {
		return nil, false
	}
	return c.slots[i], true
}

// SetAnimator attaches a presentation collaborator.
func (c *Caster) SetAnimator(a Animator) {
	if a == nil {
		a = NopAnimator{}
	}
	c.animator = a
}

// State returns the cast state name.
func (c *Caster) State() string {
	return c.machine.Current()
}

// IsCasting reports whether a cast is in progress.
func (c *Caster) IsCasting() bool {
	return !c.machine.Is(StateIdle)
}

// Pending returns the ability waiting for release, nil if none.
func (c *Caster) Pending() *Ability {
	if c.pending == nil {
		return nil
	}
	return c.pending.Ability
}

// OnCast registers a hook called after an ability executed.
func (c *Caster) OnCast(fn func(ctx *Context)) {
	if fn != nil {
		c.onCast = append(c.onCast, fn)
	}
}

// RequestAbility asks to cast slot toward direction. Returns false when
// the request was dropped: an action animation is playing, a cast is in
// progress, or a condition failed. A dropped request has no side effects.
func (c *Caster) RequestAbility(slot int, direction cp.Vector) bool {
	return c.request(slot, direction, nil)
}

// RequestAbilityOn asks to cast slot at target.
func (c *Caster) RequestAbilityOn(slot int, target *model.Character) bool {
	if target == nil {
		return false
	}
	dir := target.Position().Sub(c.owner.Position())
	return c.request(slot, dir, target)
}

// CanUse evaluates the conditions of slot against target without casting.
func (c *Caster) CanUse(slot int, target *model.Character) bool {
	a, ok := c.Slot(slot)
	if !ok || c.IsCasting() {
		return false
	}
	ctx := c.newContext(a, cp.Vector{X: 1}, target)
	if target != nil {
		ctx.Direction = projectile.SafeNormalize(target.Position().Sub(c.owner.Position()))
	}
	return a.CanBeUsed(ctx)
}

func (c *Caster) request(slot int, direction cp.Vector, target *model.Character) bool {
	if c.animator.IsPlayingAction() || c.IsCasting() {
		return false
	}
	a, ok := c.Slot(slot)
	if !ok {
		return false
	}

	ctx := c.newContext(a, projectile.SafeNormalize(direction), target)
	if !a.CanBeUsed(ctx) {
		slog.Debug("ability request blocked",
			"caster", c.owner.ObjectID(),
			"ability", a.ID)
		return false
	}

	c.pending = ctx
	c.windup = a.CastTime
	if err := c.machine.Event(context.Background(), eventCast); err != nil {
		c.pending = nil
		slog.Error("cast transition failed", "caster", c.owner.ObjectID(), "error", err)
		return false
	}
	return true
}

func (c *Caster) newContext(a *Ability, dir cp.Vector, target *model.Character) *Context {
	return &Context{
		Env:       c.env,
		Caster:    c.owner,
		Ability:   a,
		Direction: dir,
		Target:    target,
	}
}

// Release is the animation release point: the pending ability executes
// and its conditions are paid. No-op without a pending cast.
func (c *Caster) Release() bool {
	if c.pending == nil || !c.machine.Is(StateWindup) {
		return false
	}
	if err := c.machine.Event(context.Background(), eventRelease); err != nil {
		slog.Error("release transition failed", "caster", c.owner.ObjectID(), "error", err)
		return false
	}
	if err := c.machine.Event(context.Background(), eventFinish); err != nil {
		slog.Error("finish transition failed", "caster", c.owner.ObjectID(), "error", err)
	}
	return true
}

// resolve runs inside the resolve state: effect, then costs, then hooks.
func (c *Caster) resolve() {
	ctx := c.pending
	c.pending = nil
	if ctx == nil {
		return
	}

	ctx.Ability.Execute(ctx)
	ctx.Ability.commit(ctx)

	if c.env != nil && c.env.Events != nil {
		c.env.Events.Publish(event.Event{
			Type:    event.AbilityCast,
			Actor:   c.owner.ObjectID(),
			Target:  targetID(ctx.Target),
			Payload: event.Cast{Ability: ctx.Ability.ID, Direction: ctx.Direction},
		})
	}
	for _, fn := range c.onCast {
		fn(ctx)
	}
}

// Interrupt cancels a cast in windup. Nothing is paid.
func (c *Caster) Interrupt() {
	if !c.machine.Is(StateWindup) {
		return
	}
	c.pending = nil
	c.windup = 0
	if err := c.machine.Event(context.Background(), eventInterrupt); err != nil {
		slog.Error("interrupt transition failed", "caster", c.owner.ObjectID(), "error", err)
		return
	}
	c.animator.Play(AnimIdle)
}

// Tick advances the windup timer and releases the cast once CastTime
// elapsed. A caster whose owner died during windup is interrupted.
func (c *Caster) Tick(dt float64) {
	if !c.machine.Is(StateWindup) {
		return
	}
	if c.owner.IsDead() {
		c.Interrupt()
		return
	}
	c.windup -= dt
	if model.TimerElapsed(c.windup) {
		c.Release()
	}
}

func targetID(t *model.Character) uint32 {
	if t == nil {
		return 0
	}
	return t.ObjectID()
}
