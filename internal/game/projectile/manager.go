package projectile

import (
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

// Manager owns every in-flight projectile of an arena. Projectiles are
// registered in the world so that threat detection can see them.
type Manager struct {
	world       *world.World
	projectiles []*Projectile

	onDestroy []func(p *Projectile)
}

// NewManager creates a manager bound to w.
func NewManager(w *world.World) *Manager {
	return &Manager{world: w}
}

// OnDestroy registers a hook called when a projectile leaves the arena.
func (m *Manager) OnDestroy(fn func(p *Projectile)) {
	if fn != nil {
		m.onDestroy = append(m.onDestroy, fn)
	}
}

// Spawn registers p in the world and starts ticking it.
func (m *Manager) Spawn(p *Projectile) error {
	if err := m.world.AddObject(p.WorldObject); err != nil {
		return fmt.Errorf("spawning projectile %d: %w", p.ObjectID(), err)
	}
	m.projectiles = append(m.projectiles, p)
	return nil
}

// Len returns the number of live projectiles.
func (m *Manager) Len() int {
	return len(m.projectiles)
}

// Projectiles returns a copy of the live projectile list.
func (m *Manager) Projectiles() []*Projectile {
	out := make([]*Projectile, len(m.projectiles))
	copy(out, m.projectiles)
	return out
}

// Tick moves every projectile, resolves collisions at the new position,
// then removes the destroyed ones.
func (m *Manager) Tick(dt float64) {
	for _, p := range m.projectiles {
		if p.IsDestroyed() {
			continue
		}
		pos := p.Advance(dt)
		m.world.MoveObject(p.WorldObject, pos)

		if !m.world.Contains(pos) {
			p.Destroy(ReasonExpired)
			continue
		}
		m.collide(p)
		p.checkLifetime()
	}
	m.sweep()
}

func (m *Manager) collide(p *Projectile) {
	for _, c := range m.world.CharactersInRadius(p.Position(), p.Radius()) {
		p.TryHit(c)
		if p.IsDestroyed() {
			return
		}
	}
}

func (m *Manager) sweep() {
	kept := m.projectiles[:0]
	for _, p := range m.projectiles {
		if !p.IsDestroyed() {
			kept = append(kept, p)
			continue
		}
		m.world.RemoveObject(p.ObjectID())
		slog.Debug("projectile destroyed",
			"objectID", p.ObjectID(),
			"owner", p.OwnerID,
			"reason", p.DestroyReason().String(),
			"hits", p.Hits())
		for _, fn := range m.onDestroy {
			fn(p)
		}
	}
	clear(m.projectiles[len(kept):])
	m.projectiles = kept
}

// Clear destroys every projectile (encounter reset).
func (m *Manager) Clear() {
	for _, p := range m.projectiles {
		p.Destroy(ReasonCleared)
	}
	m.sweep()
}

// HostileFinder returns a TargetFinder over live characters hostile to team.
func (m *Manager) HostileFinder(team model.Team) TargetFinder {
	return func(center cp.Vector, radius float64) []Target {
		var out []Target
		for _, c := range m.world.CharactersInRadius(center, radius) {
			if team.IsHostileTo(c.Team()) {
				out = append(out, c)
			}
		}
		return out
	}
}
