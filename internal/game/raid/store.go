package raid

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// Store persists the encounter ledger.
type Store interface {
	SaveOutcome(ctx context.Context, row OutcomeRow) error
	LoadRespawns(ctx context.Context) ([]RespawnRow, error)
	SaveRespawn(ctx context.Context, row RespawnRow) error
	DeleteRespawn(ctx context.Context, bossID string) error
}

// OutcomeRow mirrors db.OutcomeRow for decoupling.
type OutcomeRow struct {
	BossID          string
	KillerID        int64
	PhaseReached    int
	DurationSeconds float64
	KilledAt        time.Time
}

// RespawnRow mirrors db.RespawnRow for decoupling.
type RespawnRow struct {
	BossID    string
	RespawnAt time.Time
}

// MemoryStore is a Store kept in process memory, used when no database
// is configured.
type MemoryStore struct {
	mu       sync.Mutex
	outcomes []OutcomeRow
	respawns map[string]RespawnRow
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{respawns: make(map[string]RespawnRow)}
}

func (s *MemoryStore) SaveOutcome(_ context.Context, row OutcomeRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, row)
	return nil
}

func (s *MemoryStore) LoadRespawns(_ context.Context) ([]RespawnRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]RespawnRow, 0, len(s.respawns))
	for _, row := range s.respawns {
		result = append(result, row)
	}
	slices.SortFunc(result, func(a, b RespawnRow) int { return cmp.Compare(a.BossID, b.BossID) })
	return result, nil
}

func (s *MemoryStore) SaveRespawn(_ context.Context, row RespawnRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respawns[row.BossID] = row
	return nil
}

func (s *MemoryStore) DeleteRespawn(_ context.Context, bossID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.respawns, bossID)
	return nil
}

// Outcomes returns a copy of every saved outcome.
func (s *MemoryStore) Outcomes() []OutcomeRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.outcomes)
}
