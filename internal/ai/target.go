package ai

import (
	"log/slog"

	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

// TargetAcquirer picks the nearest living hostile within AcquireRange and
// holds it until the re-acquire cooldown elapses or the target becomes
// invalid.
type TargetAcquirer struct {
	self              *model.Character
	world             *world.World
	AcquireRange      float64
	ReacquireCooldown float64

	target   *model.Character
	cooldown float64
}

// NewTargetAcquirer creates an acquirer for self.
func NewTargetAcquirer(self *model.Character, w *world.World, acquireRange, reacquireCooldown float64) *TargetAcquirer {
	return &TargetAcquirer{
		self:              self,
		world:             w,
		AcquireRange:      acquireRange,
		ReacquireCooldown: reacquireCooldown,
	}
}

// Target returns the held target without re-evaluating it.
func (a *TargetAcquirer) Target() *model.Character {
	return a.target
}

// Tick advances the cooldown and returns the current target, re-acquiring
// when due. Returns nil when nothing hostile is in range.
func (a *TargetAcquirer) Tick(dt float64) *model.Character {
	a.cooldown -= dt

	if a.target != nil && a.target.IsValidTarget() && !model.TimerElapsed(a.cooldown) {
		return a.target
	}

	prev := a.target
	a.target = a.Nearest()
	a.cooldown = a.ReacquireCooldown

	if a.target != prev && IsDebugEnabled() {
		slog.Debug("target acquired",
			"objectID", a.self.ObjectID(),
			"target", targetID(a.target))
	}
	return a.target
}

// SetTarget forces t as the target for one re-acquire cooldown.
func (a *TargetAcquirer) SetTarget(t *model.Character) {
	a.target = t
	a.cooldown = a.ReacquireCooldown
}

// Reset drops the held target so the next Tick re-acquires.
func (a *TargetAcquirer) Reset() {
	a.target = nil
	a.cooldown = 0
}

// Nearest returns the closest living hostile within AcquireRange. Equal
// squared distances resolve to the lowest ObjectID.
func (a *TargetAcquirer) Nearest() *model.Character {
	pos := a.self.Position()
	var best *model.Character
	bestDist := 0.0

	for _, c := range a.world.CharactersInRadius(pos, a.AcquireRange) {
		if c.ObjectID() == a.self.ObjectID() || !a.self.Team().IsHostileTo(c.Team()) {
			continue
		}
		d := pos.DistanceSq(c.Position())
		if d > a.AcquireRange*a.AcquireRange {
			continue
		}
		if best == nil || d < bestDist || (d == bestDist && c.ObjectID() < best.ObjectID()) {
			best, bestDist = c, d
		}
	}
	return best
}

func targetID(c *model.Character) uint32 {
	if c == nil {
		return 0
	}
	return c.ObjectID()
}
