package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounter/internal/config"
	"github.com/udisondev/encounter/internal/data"
	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/boss"
	"github.com/udisondev/encounter/internal/game/raid"
	"github.com/udisondev/encounter/internal/model"
)

const testDefinitions = `
abilities:
  - id: claw
    kind: melee
    cooldown: 1
    range: 20
    base_damage: 5
    melee: { count: 1, radius: 10, offset: 10, lifetime: 0.1 }

characters:
  - id: hero
    kind: player
    radius: 10
    stats: { health: 100, mana: 50, mana_regen: 10, move_speed: 100 }
    abilities: [claw]
  - id: imp
    kind: enemy
    radius: 8
    stats: { health: 30, move_speed: 120 }
    abilities: [claw]
  - id: warlock_body
    kind: boss
    radius: 20
    stats: { health: 1000, move_speed: 80 }

bosses:
  - id: warlock
    character: warlock_body
    minion: imp
    respawn_delay: 2
    acquire_range: 1000
    reacquire_cooldown: 1
    phase2_health_threshold: 0.5
    phase_transition_duration: 1
    phase1:
      idle_duration: 0.5
      attack_range: 30
      attack1: { name: slam, damage: 10, radius: 30, reach: 20, damage_delay: 0.2, total_duration: 0.4 }
    phase2:
      idle_duration: 0.5
      attack_range: 30
      attack1: { name: slam, damage: 10, radius: 30, reach: 20, damage_delay: 0.2, total_duration: 0.4 }
`

func testConfig() config.Arena {
	cfg := config.DefaultArena()
	cfg.TickRate = 1000
	cfg.Bounds = config.Rect{L: -500, B: -500, R: 500, T: 500}
	cfg.RegionSize = 100
	cfg.Obstacles = nil
	cfg.Spawn = config.SpawnConfig{
		Clearance:   4,
		MinDistance: 100,
		PlayerStart: [2]float64{-300, 0},
		BossPoints:  [][2]float64{{300, 0}},
	}
	cfg.Player = "hero"
	cfg.Boss = "warlock"
	cfg.PlayerAuto = false
	return cfg
}

func testRegistry(t *testing.T) *data.Registry {
	t.Helper()
	reg, err := data.Parse([]byte(testDefinitions))
	require.NoError(t, err)
	return reg
}

func newTestSim(t *testing.T, cfg config.Arena, store raid.Store) (*Simulation, *[]event.Event) {
	t.Helper()
	s := New(cfg, testRegistry(t), store)
	var events []event.Event
	s.Bus().SubscribeAll(func(e event.Event) { events = append(events, e) })
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(s.Shutdown)
	return s, &events
}

func countOf(events []event.Event, typ event.Type) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestSimulation_Init(t *testing.T) {
	s, events := newTestSim(t, testConfig(), nil)

	require.NotNil(t, s.Player())
	assert.Equal(t, model.KindPlayer, s.Player().Character.Kind())

	b, ok := s.Boss()
	require.True(t, ok)
	assert.InDelta(t, 300.0, b.Character.Position().X, 1e-9)
	assert.Equal(t, boss.StatePhase1, b.Boss.CurrentState())

	assert.Equal(t, 1, s.AI().Count(), "manual player has no AI")
	assert.Equal(t, 2, s.World().ObjectCount())
	assert.Equal(t, 2, countOf(*events, event.CharacterSpawned))
	assert.False(t, s.Over())
}

func TestSimulation_AutoPlayer(t *testing.T) {
	cfg := testConfig()
	cfg.PlayerAuto = true
	s, _ := newTestSim(t, cfg, nil)

	assert.Equal(t, 2, s.AI().Count())
	assert.NotNil(t, s.Player().AI)
}

func TestSimulation_TickUpdatesStatsAndResources(t *testing.T) {
	s, _ := newTestSim(t, testConfig(), nil)
	hero := s.Player().Character

	hero.Stats().AddModifier(model.StatMoveSpeed, model.NewTimedModifier(1, model.ModifierPercentAdd, "haste", 0.5))
	hero.Mana().Consume(30)
	assert.InDelta(t, 200.0, hero.MoveSpeed(), 1e-9)

	for range 10 {
		s.Tick(0.1)
	}

	assert.Equal(t, 10, s.Ticks())
	assert.InDelta(t, 1.0, s.Elapsed(), 1e-9)
	assert.InDelta(t, 100.0, hero.MoveSpeed(), 1e-9, "timed modifier expired")
	assert.InDelta(t, 30.0, hero.Mana().Current(), 1e-9, "10 mana per second")
}

func TestSimulation_BossKillAndRespawn(t *testing.T) {
	store := raid.NewMemoryStore()
	s, events := newTestSim(t, testConfig(), store)
	hero := s.Player().Character
	b, _ := s.Boss()

	b.Character.TakeDamage(model.DamageData{Amount: 5000, Instigator: hero.ObjectID()})

	require.True(t, b.Boss.IsDead())
	assert.Equal(t, 1, countOf(*events, event.BossDied))
	assert.Equal(t, 1, countOf(*events, event.CharacterDied))
	require.Len(t, store.Outcomes(), 1)
	assert.Equal(t, int64(hero.ObjectID()), store.Outcomes()[0].KillerID)
	assert.True(t, s.Ledger().IsPending("warlock"))
	assert.False(t, s.Over(), "boss will respawn")

	for range 25 {
		s.Tick(0.1)
	}

	assert.False(t, b.Character.IsDead())
	assert.False(t, b.Boss.IsDead())
	assert.False(t, s.Ledger().IsPending("warlock"))
	assert.InDelta(t, 1000.0, b.Character.Health().Current(), 1e-9)

	respawns, err := store.LoadRespawns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, respawns)
}

func TestSimulation_PendingRespawnDelaysBoss(t *testing.T) {
	store := raid.NewMemoryStore()
	require.NoError(t, store.SaveRespawn(context.Background(), raid.RespawnRow{
		BossID:    "warlock",
		RespawnAt: time.Now().Add(time.Hour),
	}))

	s, _ := newTestSim(t, testConfig(), store)

	_, ok := s.Boss()
	assert.False(t, ok)
	assert.True(t, s.Ledger().IsPending("warlock"))
	assert.False(t, s.Over())
}

func TestSimulation_OverWhenPlayerDies(t *testing.T) {
	s, _ := newTestSim(t, testConfig(), nil)

	s.Player().Character.TakeDamage(model.DamageData{Amount: 5000})

	assert.True(t, s.Over())
}

func TestSimulation_RunStopsAtMaxTicks(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTicks = 5
	s, _ := newTestSim(t, cfg, nil)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 5, s.Ticks())
}

func TestSimulation_RunStopsWhenOver(t *testing.T) {
	s, _ := newTestSim(t, testConfig(), nil)
	s.Player().Character.TakeDamage(model.DamageData{Amount: 5000})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 1, s.Ticks())
}

func TestSimulation_RunCanceled(t *testing.T) {
	s, _ := newTestSim(t, testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSimulation_ReloadAppliedBetweenTicks(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTicks = 1
	s, _ := newTestSim(t, cfg, nil)

	first := testRegistry(t)
	second := testRegistry(t)
	s.RequestReload(first)
	s.RequestReload(second)

	require.NoError(t, s.Run(context.Background()))
	assert.Same(t, second, s.Spawns().Factory().Registry(), "latest request wins")
}

func TestSimulation_Shutdown(t *testing.T) {
	s := New(testConfig(), testRegistry(t), nil)
	require.NoError(t, s.Init(context.Background()))

	s.Shutdown()

	assert.Zero(t, s.World().ObjectCount())
	assert.Zero(t, s.AI().Count())
	assert.Zero(t, s.Spawns().Count())
}
