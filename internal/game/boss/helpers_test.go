package boss

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/combat"
	"github.com/udisondev/encounter/internal/game/cooldown"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

type testArena struct {
	env    *ability.Env
	events []event.Event
}

func newTestArena(t *testing.T) *testArena {
	t.Helper()
	w := world.New(cp.BB{L: -1000, B: -1000, R: 1000, T: 1000}, 100)
	pipeline := combat.NewPipeline(combat.DefaultMinDamagePercent)
	pipeline.Rand = func() float64 { return 0.99 }

	a := &testArena{}
	bus := event.NewBus()
	bus.SubscribeAll(func(e event.Event) { a.events = append(a.events, e) })
	a.env = &ability.Env{
		World:       w,
		Pipeline:    pipeline,
		Cooldowns:   cooldown.NewProvider(),
		Projectiles: projectile.NewManager(w),
		Hitboxes:    ability.NewHitboxManager(),
		Events:      bus,
	}
	return a
}

func (a *testArena) eventsOf(typ event.Type) []event.Event {
	var out []event.Event
	for _, e := range a.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func (a *testArena) spawnBoss(t *testing.T, pos cp.Vector) *model.Character {
	t.Helper()
	stats := model.NewStatsProviderFrom(map[*model.StatDefinition]float64{
		model.StatHealth:    1000,
		model.StatMoveSpeed: 100,
	})
	c := model.NewCharacter(a.env.World.IDs().NextEnemyID(), "summoner", "Summoner",
		model.KindBoss, model.TeamEnemy, pos, 20, stats)
	require.NoError(t, a.env.World.AddObject(c.WorldObject))
	return c
}

func (a *testArena) spawnPlayer(t *testing.T, pos cp.Vector) *model.Character {
	t.Helper()
	stats := model.NewStatsProviderFrom(map[*model.StatDefinition]float64{
		model.StatHealth: 500,
	})
	c := model.NewCharacter(a.env.World.IDs().NextPlayerID(), "knight", "Knight",
		model.KindPlayer, model.TeamPlayer, pos, 10, stats)
	require.NoError(t, a.env.World.AddObject(c.WorldObject))
	return c
}

// quietConfig has no ring and no summon so phase 1 only idles, chases and
// swings.
func quietConfig() Config {
	slam := AttackSpec{Name: "slam", Damage: 40, Radius: 30, Reach: 20, DamageDelay: 0.5, TotalDuration: 1.0}
	tuning := Tuning{
		IdleDuration:         0.5,
		ChaseSpeedMultiplier: 1,
		AttackRange:          40,
		Attack1:              slam,
	}
	return Config{
		ID:                      "summoner",
		Phase2HealthThreshold:   0.5,
		PhaseTransitionDuration: 2.0,
		MinionID:                "imp",
		AcquireRange:            500,
		ReacquireCooldown:       5,
		Phase1:                  tuning,
		Phase2:                  tuning,
	}
}

type fakeSpawner struct {
	calls []string
}

func (f *fakeSpawner) SummonMinions(_ *model.Character, templateID string, count int, _ float64) int {
	f.calls = append(f.calls, templateID)
	return count
}
