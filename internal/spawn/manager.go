package spawn

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

// Manager owns every spawned entity of a simulation: it registers their
// AI, picks spawn points, summons boss minions and removes dead enemies.
// Owned by the simulation goroutine, no locks.
type Manager struct {
	factory   *Factory
	validator *Validator
	world     *world.World
	aiManager *ai.TickManager

	entities map[uint32]*Entity // objectID → entity
	order    []uint32
}

// NewManager creates new spawn manager
func NewManager(factory *Factory, validator *Validator, w *world.World, aiManager *ai.TickManager) *Manager {
	return &Manager{
		factory:   factory,
		validator: validator,
		world:     w,
		aiManager: aiManager,
		entities:  make(map[uint32]*Entity),
	}
}

// Factory returns the entity factory.
func (m *Manager) Factory() *Factory {
	return m.factory
}

// Validator returns the spawn-point validator.
func (m *Manager) Validator() *Validator {
	return m.validator
}

// Spawn spawns character id at pos without validating the point.
func (m *Manager) Spawn(id string, pos cp.Vector) (*Entity, error) {
	e, err := m.factory.Spawn(id, pos)
	if err != nil {
		return nil, err
	}
	m.track(e)
	return e, nil
}

// SpawnAt spawns character id at the first valid candidate. Candidates
// closer than MinDistance to a live player are rejected.
func (m *Manager) SpawnAt(id string, candidates []cp.Vector) (*Entity, error) {
	def, ok := m.factory.Registry().Character(id)
	if !ok {
		return nil, fmt.Errorf("spawning character %q: %w", id, ErrUnknownDefinition)
	}
	p, ok := m.validator.PickSpawnPoint(candidates, def.Radius, m.PlayerPositions())
	if !ok {
		return nil, fmt.Errorf("spawning character %q: no valid spawn point among %d candidates", id, len(candidates))
	}
	return m.Spawn(id, p)
}

// SpawnBoss spawns the boss encounter id at the first valid candidate.
// The manager itself summons the boss's minions.
func (m *Manager) SpawnBoss(id string, candidates []cp.Vector) (*Entity, error) {
	p, err := m.bossPoint(id, candidates)
	if err != nil {
		return nil, err
	}
	e, err := m.factory.SpawnBoss(id, p, m)
	if err != nil {
		return nil, err
	}
	m.track(e)

	slog.Info("boss spawned",
		"boss", id,
		"objectID", e.Character.ObjectID(),
		"x", p.X,
		"y", p.Y)
	return e, nil
}

func (m *Manager) bossPoint(id string, candidates []cp.Vector) (cp.Vector, error) {
	def, ok := m.factory.Registry().Boss(id)
	if !ok {
		return cp.Vector{}, fmt.Errorf("spawning boss %q: %w", id, ErrUnknownDefinition)
	}
	radius := 0.0
	if body, ok := m.factory.Registry().Character(def.Character); ok {
		radius = body.Radius
	}
	p, ok := m.validator.PickSpawnPoint(candidates, radius, m.PlayerPositions())
	if !ok {
		return cp.Vector{}, fmt.Errorf("spawning boss %q: no valid spawn point among %d candidates", id, len(candidates))
	}
	return p, nil
}

// RespawnBoss revives a dead boss at a valid candidate point and restarts
// its fight from phase 1.
func (m *Manager) RespawnBoss(id string, candidates []cp.Vector) (*Entity, error) {
	e, ok := m.BossEntity(id)
	if !ok {
		return m.SpawnBoss(id, candidates)
	}
	p, err := m.bossPoint(id, candidates)
	if err != nil {
		return nil, err
	}

	c := e.Character
	sources := make([]string, 0, len(e.Caster.Slots()))
	for _, a := range e.Caster.Slots() {
		sources = append(sources, a.ModifierSource())
	}
	c.Respawn(p, sources...)
	m.world.MoveObject(c.WorldObject, p)
	e.Boss.Reset()

	slog.Info("boss respawned",
		"boss", id,
		"objectID", c.ObjectID(),
		"x", p.X,
		"y", p.Y)
	return e, nil
}

// SummonMinions implements boss.MinionSpawner. Minions are placed on a
// ring around the boss; a blocked slot is retried half a step further
// around the ring and skipped if still blocked.
func (m *Manager) SummonMinions(b *model.Character, templateID string, count int, radius float64) int {
	def, ok := m.factory.Registry().Character(templateID)
	if !ok || count <= 0 {
		slog.Warn("summon skipped", "boss", b.ObjectID(), "minion", templateID, "count", count)
		return 0
	}

	dist := radius + b.Radius() + def.Radius
	halfStep := math.Pi / float64(count)
	primary := RingPoints(b.Position(), dist, count, 0)
	fallback := RingPoints(b.Position(), dist, count, halfStep)

	spawned := 0
	for i := range count {
		p := primary[i]
		if !m.validator.IsValid(p, def.Radius, nil) {
			p = fallback[i]
			if !m.validator.IsValid(p, def.Radius, nil) {
				continue
			}
		}
		if _, err := m.Spawn(templateID, p); err != nil {
			slog.Warn("minion spawn failed", "boss", b.ObjectID(), "minion", templateID, "error", err)
			continue
		}
		spawned++
	}

	slog.Debug("minions summoned",
		"boss", b.ObjectID(),
		"minion", templateID,
		"requested", count,
		"spawned", spawned)
	return spawned
}

func (m *Manager) track(e *Entity) {
	id := e.Character.ObjectID()
	m.entities[id] = e
	m.order = append(m.order, id)
	if e.AI != nil {
		m.aiManager.Register(id, e.AI)
	}
}

// Despawn removes an entity from the world and stops its AI.
func (m *Manager) Despawn(objectID uint32) {
	e, ok := m.entities[objectID]
	if !ok {
		return
	}
	delete(m.entities, objectID)
	m.order = slices.DeleteFunc(m.order, func(id uint32) bool { return id == objectID })

	m.aiManager.Unregister(objectID)
	e.Caster.Interrupt()
	e.Character.SetActive(false)
	m.world.RemoveObject(objectID)
	if cd := m.factory.env.Cooldowns; cd != nil {
		cd.Reset(objectID)
	}

	slog.Debug("character despawned",
		"objectID", objectID,
		"template", e.Character.TemplateID())
}

// Reap despawns dead regular enemies. Players and bosses stay in the
// world to be respawned. Returns the number removed.
func (m *Manager) Reap() int {
	var dead []uint32
	for _, id := range m.order {
		c := m.entities[id].Character
		if c.Kind() == model.KindEnemy && c.IsDead() {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		m.Despawn(id)
	}
	return len(dead)
}

// Entity returns the entity of objectID.
func (m *Manager) Entity(objectID uint32) (*Entity, bool) {
	e, ok := m.entities[objectID]
	return e, ok
}

// BossEntity returns the spawned boss encounter id.
func (m *Manager) BossEntity(id string) (*Entity, bool) {
	for _, oid := range m.order {
		if e := m.entities[oid]; e.BossID == id {
			return e, true
		}
	}
	return nil, false
}

// Entities returns entities in spawn order.
func (m *Manager) Entities() []*Entity {
	out := make([]*Entity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entities[id])
	}
	return out
}

// Count returns the number of tracked entities.
func (m *Manager) Count() int {
	return len(m.order)
}

// CountAlive returns live entities of kind.
func (m *Manager) CountAlive(kind model.CharacterKind) int {
	n := 0
	for _, id := range m.order {
		c := m.entities[id].Character
		if c.Kind() == kind && !c.IsDead() {
			n++
		}
	}
	return n
}

// PlayerPositions returns positions of live players.
func (m *Manager) PlayerPositions() []cp.Vector {
	var out []cp.Vector
	for _, id := range m.order {
		c := m.entities[id].Character
		if c.Kind() == model.KindPlayer && !c.IsDead() {
			out = append(out, c.Position())
		}
	}
	return out
}

// UpdateStats expires timed modifiers of every entity.
func (m *Manager) UpdateStats(dt float64) {
	for _, id := range m.order {
		m.entities[id].Character.Stats().UpdateModifiers(dt)
	}
}

// Regenerate restores resources from regeneration stats.
func (m *Manager) Regenerate(dt float64) {
	for _, id := range m.order {
		m.entities[id].Character.RegenerateMana(dt)
	}
}

// TickCasters advances cast windups.
func (m *Manager) TickCasters(dt float64) {
	for _, id := range slices.Clone(m.order) {
		if e, ok := m.entities[id]; ok {
			e.Caster.Tick(dt)
		}
	}
}

// Clear despawns everything.
func (m *Manager) Clear() {
	for _, id := range slices.Clone(m.order) {
		m.Despawn(id)
	}
}
