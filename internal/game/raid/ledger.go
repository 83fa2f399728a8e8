// Package raid records boss encounter outcomes and schedules boss
// respawns.
package raid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/encounter/internal/event"
)

// Outcome is one boss kill.
type Outcome struct {
	BossID   string
	Killer   uint32
	Phase    int
	Duration float64 // simulation seconds
	KilledAt time.Time
}

// Ledger keeps the outcome history and the respawn schedule of bosses.
//
// On startup:
//  1. Load pending respawns from the store
//  2. Bosses whose respawn time passed are due on the next tick
//  3. The rest count down the remaining wall-clock time in sim seconds
//
// On death:
//  1. Save the outcome
//  2. Schedule the respawn after the boss's respawn delay
//  3. Save the respawn time
//
// A boss with no respawn delay stays dead.
type Ledger struct {
	store   Store
	tracker *RespawnTracker
	now     func() time.Time

	delays   map[string]float64 // bossID → respawn delay, seconds
	outcomes []Outcome
}

// NewLedger creates a ledger over store. A nil store keeps everything in
// memory.
func NewLedger(store Store) *Ledger {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Ledger{
		store:   store,
		tracker: NewRespawnTracker(),
		now:     time.Now,
		delays:  make(map[string]float64),
	}
}

// SetClock replaces the wall clock used for persisted timestamps.
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// SetRespawnDelay configures the respawn delay of bossID in seconds.
func (l *Ledger) SetRespawnDelay(bossID string, seconds float64) {
	l.delays[bossID] = seconds
}

// Tracker returns the respawn countdowns.
func (l *Ledger) Tracker() *RespawnTracker {
	return l.tracker
}

// Init loads pending respawns from the store.
func (l *Ledger) Init(ctx context.Context) error {
	rows, err := l.store.LoadRespawns(ctx)
	if err != nil {
		return fmt.Errorf("load boss respawns: %w", err)
	}

	now := l.now()
	due := 0
	for _, row := range rows {
		remaining := row.RespawnAt.Sub(now).Seconds()
		if remaining <= 0 {
			due++
		}
		l.tracker.Schedule(row.BossID, remaining)
	}

	slog.Info("encounter ledger initialized",
		"pending", len(rows),
		"due", due)
	return nil
}

// IsPending reports whether bossID is dead and waiting to respawn.
func (l *Ledger) IsPending(bossID string) bool {
	_, ok := l.tracker.Remaining(bossID)
	return ok
}

// OnBossDied records the kill and schedules the respawn. The in-memory
// state is updated even when the store fails.
func (l *Ledger) OnBossDied(ctx context.Context, bossID string, killer uint32, phase int, duration float64) error {
	now := l.now()
	o := Outcome{
		BossID:   bossID,
		Killer:   killer,
		Phase:    phase,
		Duration: duration,
		KilledAt: now,
	}
	l.outcomes = append(l.outcomes, o)

	var errs []error
	if err := l.store.SaveOutcome(ctx, OutcomeRow{
		BossID:          bossID,
		KillerID:        int64(killer),
		PhaseReached:    phase,
		DurationSeconds: duration,
		KilledAt:        now,
	}); err != nil {
		errs = append(errs, fmt.Errorf("save outcome boss %q: %w", bossID, err))
	}

	delay := l.delays[bossID]
	if delay > 0 {
		l.tracker.Schedule(bossID, delay)
		respawnAt := now.Add(time.Duration(delay * float64(time.Second)))
		if err := l.store.SaveRespawn(ctx, RespawnRow{BossID: bossID, RespawnAt: respawnAt}); err != nil {
			errs = append(errs, fmt.Errorf("save respawn boss %q: %w", bossID, err))
		}
	}

	slog.Info("boss kill recorded",
		"boss", bossID,
		"killer", killer,
		"phase", phase,
		"duration", duration,
		"respawnDelay", delay)

	return errors.Join(errs...)
}

// OnBossSpawned clears the pending respawn of bossID.
func (l *Ledger) OnBossSpawned(ctx context.Context, bossID string) error {
	l.tracker.Cancel(bossID)
	if err := l.store.DeleteRespawn(ctx, bossID); err != nil {
		return fmt.Errorf("delete respawn boss %q: %w", bossID, err)
	}
	return nil
}

// Tick advances respawn countdowns and returns bosses due to respawn.
func (l *Ledger) Tick(dt float64) []string {
	return l.tracker.Tick(dt)
}

// Outcomes returns the kills recorded by this ledger.
func (l *Ledger) Outcomes() []Outcome {
	return slices.Clone(l.outcomes)
}

// Handler returns an event handler that records BossDied events.
func (l *Ledger) Handler(ctx context.Context) func(event.Event) {
	return func(e event.Event) {
		if e.Type != event.BossDied {
			return
		}
		d, ok := e.Payload.(event.BossDeath)
		if !ok {
			return
		}
		if err := l.OnBossDied(ctx, d.Boss, e.Target, d.Phase, d.Duration); err != nil {
			slog.Error("recording boss kill", "boss", d.Boss, "error", err)
		}
	}
}
