package ai

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/udisondev/encounter/internal/model"
)

func TestTargetAcquirer_NearestHostile(t *testing.T) {
	w := newTestWorld(t)
	self := spawnAt(t, w, model.TeamEnemy, cp.Vector{})
	spawnAt(t, w, model.TeamEnemy, cp.Vector{X: 20}) // ally, closer
	far := spawnAt(t, w, model.TeamPlayer, cp.Vector{X: 150})
	near := spawnAt(t, w, model.TeamPlayer, cp.Vector{Y: -100})
	spawnAt(t, w, model.TeamPlayer, cp.Vector{X: 500}) // out of range

	a := NewTargetAcquirer(self, w, 200, 1)
	assert.Same(t, near, a.Tick(0.1))

	near.TakeDamage(model.DamageData{Amount: 1000})
	assert.Same(t, far, a.Tick(0.1), "dead target is dropped immediately")
}

func TestTargetAcquirer_TieBreakLowestID(t *testing.T) {
	w := newTestWorld(t)
	self := spawnAt(t, w, model.TeamEnemy, cp.Vector{})
	first := spawnAt(t, w, model.TeamPlayer, cp.Vector{Y: 100})
	spawnAt(t, w, model.TeamPlayer, cp.Vector{X: 100})

	a := NewTargetAcquirer(self, w, 200, 1)
	assert.Same(t, first, a.Nearest())
}

func TestTargetAcquirer_HoldsUntilCooldown(t *testing.T) {
	w := newTestWorld(t)
	self := spawnAt(t, w, model.TeamEnemy, cp.Vector{})
	initial := spawnAt(t, w, model.TeamPlayer, cp.Vector{X: 150})

	a := NewTargetAcquirer(self, w, 200, 1)
	assert.Same(t, initial, a.Tick(0.1))

	closer := spawnAt(t, w, model.TeamPlayer, cp.Vector{X: 50})
	assert.Same(t, initial, a.Tick(0.5), "cooldown still running")
	assert.Same(t, closer, a.Tick(0.6))

	a.Reset()
	assert.Nil(t, a.Target())
}

func TestTargetAcquirer_NothingInRange(t *testing.T) {
	w := newTestWorld(t)
	self := spawnAt(t, w, model.TeamEnemy, cp.Vector{})

	a := NewTargetAcquirer(self, w, 200, 1)
	assert.Nil(t, a.Tick(0.1))
}
