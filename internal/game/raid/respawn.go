package raid

import (
	"slices"

	"github.com/udisondev/encounter/internal/model"
)

// RespawnTracker counts down boss respawns in simulation seconds.
type RespawnTracker struct {
	pending map[string]float64 // bossID → remaining seconds
	order   []string
}

// NewRespawnTracker creates an empty tracker.
func NewRespawnTracker() *RespawnTracker {
	return &RespawnTracker{pending: make(map[string]float64)}
}

// Schedule sets the respawn of bossID delay seconds from now, replacing a
// pending one. A negative delay is treated as 0.
func (t *RespawnTracker) Schedule(bossID string, delay float64) {
	if _, ok := t.pending[bossID]; !ok {
		t.order = append(t.order, bossID)
	}
	t.pending[bossID] = max(delay, 0)
}

// Cancel drops the pending respawn of bossID.
func (t *RespawnTracker) Cancel(bossID string) {
	if _, ok := t.pending[bossID]; !ok {
		return
	}
	delete(t.pending, bossID)
	t.order = slices.DeleteFunc(t.order, func(id string) bool { return id == bossID })
}

// Tick advances every countdown and returns bosses that are due, in
// scheduling order. Due bosses are no longer pending.
func (t *RespawnTracker) Tick(dt float64) []string {
	var ready []string
	for _, id := range t.order {
		t.pending[id] -= dt
		if model.TimerElapsed(t.pending[id]) {
			ready = append(ready, id)
		}
	}
	for _, id := range ready {
		t.Cancel(id)
	}
	return ready
}

// Remaining returns the seconds left before bossID respawns.
func (t *RespawnTracker) Remaining(bossID string) (float64, bool) {
	r, ok := t.pending[bossID]
	return r, ok
}

// Len returns the number of pending respawns.
func (t *RespawnTracker) Len() int {
	return len(t.order)
}
