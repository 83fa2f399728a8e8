package ability

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/combat"
	"github.com/udisondev/encounter/internal/game/cooldown"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

type testEnv struct {
	*Env
	bus    *event.Bus
	events []event.Event
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	w := world.New(cp.BB{L: -500, B: -500, R: 500, T: 500}, 100)
	pipeline := combat.NewPipeline(combat.DefaultMinDamagePercent)
	pipeline.Rand = func() float64 { return 0.99 }

	te := &testEnv{bus: event.NewBus()}
	te.Env = &Env{
		World:       w,
		Pipeline:    pipeline,
		Cooldowns:   cooldown.NewProvider(),
		Projectiles: projectile.NewManager(w),
		Hitboxes:    NewHitboxManager(),
		Events:      te.bus,
	}
	te.bus.SubscribeAll(func(e event.Event) { te.events = append(te.events, e) })
	return te
}

func (te *testEnv) spawn(t *testing.T, team model.Team, pos cp.Vector, stats map[*model.StatDefinition]float64) *model.Character {
	t.Helper()
	var id uint32
	if team == model.TeamPlayer {
		id = te.World.IDs().NextPlayerID()
	} else {
		id = te.World.IDs().NextEnemyID()
	}
	if stats == nil {
		stats = map[*model.StatDefinition]float64{model.StatHealth: 100}
	}
	c := model.NewCharacter(id, "test", "Test", model.KindEnemy, team, pos, 10, model.NewStatsProviderFrom(stats))
	require.NoError(t, te.World.AddObject(c.WorldObject))
	return c
}

type recordingAnimator struct {
	played  []AnimationID
	playing bool
}

func (a *recordingAnimator) Play(anim AnimationID) {
	a.played = append(a.played, anim)
}

func (a *recordingAnimator) IsPlayingAction() bool {
	return a.playing
}

func heroStats() map[*model.StatDefinition]float64 {
	return map[*model.StatDefinition]float64{
		model.StatHealth: 500,
		model.StatMana:   100,
		model.StatDamage: 20,
	}
}
