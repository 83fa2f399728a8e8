package spawn

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/data"
	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/combat"
	"github.com/udisondev/encounter/internal/game/cooldown"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/world"
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
    name: Hero
    kind: player
    radius: 10
    stats: { health: 100, move_speed: 100 }
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
    acquire_range: 600
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

var testBounds = cp.BB{L: -500, B: -500, R: 500, T: 500}

type testArena struct {
	env     *ability.Env
	ai      *ai.TickManager
	factory *Factory
	manager *Manager
	events  []event.Event
}

func newTestArena(t *testing.T) *testArena {
	t.Helper()
	reg, err := data.Parse([]byte(testDefinitions))
	require.NoError(t, err)

	w := world.New(testBounds, 100)
	pipeline := combat.NewPipeline(combat.DefaultMinDamagePercent)
	pipeline.Rand = func() float64 { return 0.99 }

	a := &testArena{ai: ai.NewTickManager()}
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

	a.factory = NewFactory(reg, a.env)
	v := NewValidator(testBounds, nil, 4, 100)
	v.Shuffle = nil
	a.manager = NewManager(a.factory, v, w, a.ai)
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
