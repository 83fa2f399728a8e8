package ai

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	return world.New(cp.BB{L: -1000, B: -1000, R: 1000, T: 1000}, 100)
}

func spawnAt(t *testing.T, w *world.World, team model.Team, pos cp.Vector) *model.Character {
	t.Helper()
	var id uint32
	if team == model.TeamPlayer {
		id = w.IDs().NextPlayerID()
	} else {
		id = w.IDs().NextEnemyID()
	}
	stats := model.NewStatsProviderFrom(map[*model.StatDefinition]float64{
		model.StatHealth:    100,
		model.StatMoveSpeed: 100,
		model.StatDamage:    10,
	})
	c := model.NewCharacter(id, "test", "Test", model.KindEnemy, team, pos, 10, stats)
	require.NoError(t, w.AddObject(c.WorldObject))
	return c
}

// spawnBolt adds a bare moving object, the way a projectile appears to the
// world.
func spawnBolt(t *testing.T, w *world.World, team model.Team, pos, vel cp.Vector) *model.WorldObject {
	t.Helper()
	obj := model.NewWorldObject(w.IDs().NextProjectileID(), "bolt", pos, 4, team)
	obj.SetVelocity(vel)
	require.NoError(t, w.AddObject(obj))
	return obj
}

type fakeController struct {
	ticks   []float64
	started bool
	stopped bool
	onTick  func()
	intent  Intention
}

func (f *fakeController) Start()                      { f.started = true; f.intent = IntentionActive }
func (f *fakeController) Stop()                       { f.stopped = true; f.intent = IntentionIdle }
func (f *fakeController) SetIntention(i Intention)    { f.intent = i }
func (f *fakeController) CurrentIntention() Intention { return f.intent }

func (f *fakeController) Tick(dt float64) {
	f.ticks = append(f.ticks, dt)
	if f.onTick != nil {
		f.onTick()
	}
}
