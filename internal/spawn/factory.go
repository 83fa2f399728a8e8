package spawn

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/data"
	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/boss"
	"github.com/udisondev/encounter/internal/model"
)

// ErrUnknownDefinition is returned when a spawn names no known definition.
var ErrUnknownDefinition = errors.New("unknown definition")

// Entity is one spawned arena participant with its collaborators.
type Entity struct {
	Character *model.Character
	Caster    *ability.Caster

	// AI drives the character; nil for input-driven players.
	AI ai.Controller

	// Boss and BossID are set for boss encounters only.
	Boss   *boss.Controller
	BossID string
}

// Factory builds characters from encounter definitions and adds them to
// the world. It does not register AI; see Manager.
type Factory struct {
	registry    *data.Registry
	env         *ability.Env
	events      event.Publisher
	autoPlayers bool
}

// NewFactory creates a factory over reg. Abilities act on env.
func NewFactory(reg *data.Registry, env *ability.Env) *Factory {
	events := env.Events
	if events == nil {
		events = event.Nop()
	}
	return &Factory{
		registry: reg,
		env:      env,
		events:   events,
	}
}

// Registry returns the definitions in use.
func (f *Factory) Registry() *data.Registry {
	return f.registry
}

// SetRegistry swaps definitions. Already spawned entities keep theirs.
func (f *Factory) SetRegistry(reg *data.Registry) {
	f.registry = reg
}

// SetAutoPlayers makes spawned players AI-driven (headless runs).
func (f *Factory) SetAutoPlayers(v bool) {
	f.autoPlayers = v
}

// Spawn builds the character with definition id at pos and adds it to
// the world. Enemies get an EnemyAI; boss bodies get no behavior, use
// SpawnBoss for that.
func (f *Factory) Spawn(id string, pos cp.Vector) (*Entity, error) {
	def, ok := f.registry.Character(id)
	if !ok {
		return nil, fmt.Errorf("spawning character %q: %w", id, ErrUnknownDefinition)
	}
	kind, err := data.ParseCharacterKind(def.Kind)
	if err != nil {
		return nil, fmt.Errorf("spawning character %q: %w", id, err)
	}
	team, err := data.ParseTeam(def.Team, kind)
	if err != nil {
		return nil, fmt.Errorf("spawning character %q: %w", id, err)
	}

	w := f.env.World
	var objectID uint32
	if kind == model.KindPlayer {
		objectID = w.IDs().NextPlayerID()
	} else {
		objectID = w.IDs().NextEnemyID()
	}

	name := def.Name
	if name == "" {
		name = def.ID
	}
	c := model.NewCharacter(objectID, def.ID, name, kind, team, pos, def.Radius, data.NewStats(def))
	caster := ability.NewCaster(c, f.env, nil, f.registry.Abilities(def))

	if err := w.AddObject(c.WorldObject); err != nil {
		return nil, fmt.Errorf("spawning character %q: %w", id, err)
	}

	e := &Entity{Character: c, Caster: caster}
	if kind == model.KindEnemy || (kind == model.KindPlayer && f.autoPlayers) {
		e.AI = ai.NewEnemyAI(c, w, caster, data.EnemyConfig(def))
	}

	c.Health().OnDeath(func(d model.DamageData) {
		caster.Interrupt()
		f.events.Publish(event.Event{
			Type:    event.CharacterDied,
			Actor:   c.ObjectID(),
			Target:  d.Instigator,
			Payload: event.Death{Template: def.ID, Kind: kind.String()},
		})
	})

	f.events.Publish(event.Event{
		Type:    event.CharacterSpawned,
		Actor:   objectID,
		Payload: event.Spawn{Template: def.ID, Kind: kind.String(), Position: pos},
	})

	slog.Debug("character spawned",
		"objectID", objectID,
		"template", def.ID,
		"kind", kind.String(),
		"x", pos.X,
		"y", pos.Y)
	return e, nil
}

// SpawnBoss builds the boss encounter id at pos: its body plus the phase
// controller. spawner receives summon requests and may be nil.
func (f *Factory) SpawnBoss(id string, pos cp.Vector, spawner boss.MinionSpawner) (*Entity, error) {
	def, ok := f.registry.Boss(id)
	if !ok {
		return nil, fmt.Errorf("spawning boss %q: %w", id, ErrUnknownDefinition)
	}
	if _, err := data.ParseBossKind(def.Kind); err != nil {
		return nil, fmt.Errorf("spawning boss %q: %w", id, err)
	}

	e, err := f.Spawn(def.Character, pos)
	if err != nil {
		return nil, fmt.Errorf("spawning boss %q: %w", id, err)
	}

	cfg := def.Config
	cfg.ID = def.ID
	ctrl := boss.NewController(e.Character, f.env, cfg, spawner)
	e.AI = ctrl
	e.Boss = ctrl
	e.BossID = def.ID
	return e, nil
}
