package boss

import (
	"slices"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/model"
)

func TestController_PhaseTransitionEndToEnd(t *testing.T) {
	a := newTestArena(t)
	boss := a.spawnBoss(t, cp.Vector{})
	c := NewController(boss, a.env, quietConfig(), nil)

	var phases []int
	c.OnPhaseChanged(func(p int) { phases = append(phases, p) })
	c.Start()

	boss.TakeDamage(model.DamageData{Amount: 499})
	c.Tick(0.5)
	assert.Equal(t, StatePhase1, c.CurrentState(), "501 hp stays in phase 1")
	assert.False(t, c.IsTransitioning())

	boss.TakeDamage(model.DamageData{Amount: 1})
	c.Tick(0.5)
	assert.Equal(t, StateTransition, c.CurrentState(), "500 hp starts the transition")
	assert.True(t, c.IsTransitioning())
	assert.True(t, boss.Health().IsInvulnerable())
	assert.Zero(t, boss.TakeDamage(model.DamageData{Amount: 100}), "invulnerable while transitioning")
	assert.Equal(t, 1, c.Phase())

	for range 3 {
		c.Tick(0.5)
	}
	assert.Equal(t, StateTransition, c.CurrentState(), "entry tick does not count")

	c.Tick(0.5)
	assert.Equal(t, StatePhase2, c.CurrentState())
	assert.Equal(t, 2, c.Phase())
	assert.False(t, boss.Health().IsInvulnerable())
	assert.Equal(t, []int{2}, phases)

	changed := a.eventsOf(event.BossPhaseChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, event.PhaseChange{Boss: "summoner", Phase: 2}, changed[0].Payload)
}

func TestController_TransitionAtTickRate(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		duration float64
		ticks    int
	}{
		{name: "30 Hz", dt: 1.0 / 30, duration: 2.0, ticks: 60},
		{name: "60 Hz", dt: 1.0 / 60, duration: 2.0, ticks: 120},
		{name: "30 Hz short", dt: 1.0 / 30, duration: 0.7, ticks: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestArena(t)
			boss := a.spawnBoss(t, cp.Vector{})
			cfg := quietConfig()
			cfg.PhaseTransitionDuration = tt.duration
			c := NewController(boss, a.env, cfg, nil)
			c.Start()

			boss.TakeDamage(model.DamageData{Amount: 600})
			c.Tick(tt.dt)
			require.True(t, c.IsTransitioning())

			for range tt.ticks - 1 {
				c.Tick(tt.dt)
			}
			require.Equal(t, StateTransition, c.CurrentState(), "one tick short of the duration")
			assert.True(t, boss.Health().IsInvulnerable())

			c.Tick(tt.dt)
			assert.Equal(t, StatePhase2, c.CurrentState())
			assert.False(t, boss.Health().IsInvulnerable())
		})
	}
}

func TestController_NeverReturnsToPhase1(t *testing.T) {
	a := newTestArena(t)
	boss := a.spawnBoss(t, cp.Vector{})
	c := NewController(boss, a.env, quietConfig(), nil)

	var phases []int
	c.OnPhaseChanged(func(p int) { phases = append(phases, p) })
	c.Start()

	boss.TakeDamage(model.DamageData{Amount: 600})
	for range 6 {
		c.Tick(0.5)
	}
	require.Equal(t, StatePhase2, c.CurrentState())

	boss.Health().Heal(1000)
	c.Tick(0.5)
	boss.TakeDamage(model.DamageData{Amount: 700})
	c.Tick(0.5)

	assert.Equal(t, StatePhase2, c.CurrentState())
	assert.False(t, c.StartPhaseTransition())
	assert.Equal(t, []int{2}, phases)
}

func TestController_ScriptedPhaseComplete(t *testing.T) {
	a := newTestArena(t)
	boss := a.spawnBoss(t, cp.Vector{})
	cfg := quietConfig()
	cfg.Phase2HealthThreshold = 0
	cfg.PhaseCompleteScript = `complete = elapsed >= 1.0 && health_pct > 0.9`
	c := NewController(boss, a.env, cfg, nil)
	c.Start()

	c.Tick(0.5)
	assert.Equal(t, StatePhase1, c.CurrentState())

	c.Tick(0.5)
	assert.Equal(t, StateTransition, c.CurrentState())
	assert.Empty(t, c.CurrentSubState(), "transition has no sub-states")
}

func TestScriptTrigger_CompileErrorDisables(t *testing.T) {
	assert.Nil(t, NewScriptTrigger(""))
	assert.True(t, NewScriptTrigger("").Disabled())

	broken := NewScriptTrigger("complete = (")
	require.NotNil(t, broken)
	assert.True(t, broken.Disabled())

	a := newTestArena(t)
	ctx := newContext(a.spawnBoss(t, cp.Vector{}), a.env, quietConfig(), nil)
	assert.False(t, broken.Evaluate(ctx))

	ok := NewScriptTrigger("complete = phase == 1 && attacks == 0 && summons == 0")
	assert.False(t, ok.Disabled())
	assert.True(t, ok.Evaluate(ctx))
}

func TestScriptTrigger_BadVariableDisables(t *testing.T) {
	vars := append(slices.Clone(scriptDefaults), scriptVar{name: "spawner", value: make(chan int)})

	trigger := compileScript("complete = true", vars)
	require.NotNil(t, trigger)
	assert.True(t, trigger.Disabled())

	a := newTestArena(t)
	ctx := newContext(a.spawnBoss(t, cp.Vector{}), a.env, quietConfig(), nil)
	assert.False(t, trigger.Evaluate(ctx))

	assert.False(t, compileScript("complete = true", scriptDefaults).Disabled())
}

func TestController_HandleDeath(t *testing.T) {
	a := newTestArena(t)
	boss := a.spawnBoss(t, cp.Vector{})
	player := a.spawnPlayer(t, cp.Vector{X: 300})
	c := NewController(boss, a.env, quietConfig(), nil)
	c.Start()
	c.Tick(0.5)

	boss.TakeDamage(model.DamageData{Amount: 500, Instigator: player.ObjectID()})
	c.Tick(0.5)
	for range 4 {
		c.Tick(0.5)
	}
	require.Equal(t, StatePhase2, c.CurrentState())

	boss.TakeDamage(model.DamageData{Amount: 5000, Instigator: player.ObjectID()})
	boss.TakeDamage(model.DamageData{Amount: 5000, Instigator: player.ObjectID()})

	assert.True(t, c.IsDead())
	assert.Empty(t, c.CurrentState())

	died := a.eventsOf(event.BossDied)
	require.Len(t, died, 1)
	assert.Equal(t, player.ObjectID(), died[0].Target)
	payload, ok := died[0].Payload.(event.BossDeath)
	require.True(t, ok)
	assert.Equal(t, 2, payload.Phase)
	assert.InDelta(t, 3.0, payload.Duration, 1e-9)

	c.Tick(0.5)
	assert.Empty(t, c.CurrentState(), "dead boss does not tick")

	boss.Respawn(cp.Vector{})
	c.Reset()
	assert.False(t, c.IsDead())
	assert.Equal(t, StatePhase1, c.CurrentState())
	assert.Equal(t, 1, c.Phase())
}
