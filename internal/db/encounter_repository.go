package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OutcomeRow represents a row from encounter_outcomes.
type OutcomeRow struct {
	ID              int64
	BossID          string
	KillerID        int64
	PhaseReached    int
	DurationSeconds float64
	KilledAt        time.Time
}

// RespawnRow represents a row from boss_respawns.
type RespawnRow struct {
	BossID    string
	RespawnAt time.Time
}

// EncounterRepository provides CRUD for the encounter ledger tables.
type EncounterRepository struct {
	pool *pgxpool.Pool
}

// NewEncounterRepository creates a new EncounterRepository.
func NewEncounterRepository(pool *pgxpool.Pool) *EncounterRepository {
	return &EncounterRepository{pool: pool}
}

// --- encounter_outcomes ---

// SaveOutcome inserts a boss kill and returns its id.
func (r *EncounterRepository) SaveOutcome(ctx context.Context, row OutcomeRow) (int64, error) {
	killedAt := row.KilledAt
	if killedAt.IsZero() {
		killedAt = time.Now()
	}

	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO encounter_outcomes (boss_id, killer_id, phase_reached, duration_seconds, killed_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		row.BossID, row.KillerID, row.PhaseReached, row.DurationSeconds, killedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert encounter_outcomes boss %q: %w", row.BossID, err)
	}
	return id, nil
}

// LoadOutcomes returns the latest kills of bossID, newest first.
// A non-positive limit returns every row.
func (r *EncounterRepository) LoadOutcomes(ctx context.Context, bossID string, limit int) ([]OutcomeRow, error) {
	query := `SELECT id, boss_id, killer_id, phase_reached, duration_seconds, killed_at
		 FROM encounter_outcomes
		 WHERE boss_id = $1
		 ORDER BY killed_at DESC, id DESC`
	args := []any{bossID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query encounter_outcomes boss %q: %w", bossID, err)
	}
	defer rows.Close()

	var result []OutcomeRow
	for rows.Next() {
		var row OutcomeRow
		if err := rows.Scan(&row.ID, &row.BossID, &row.KillerID, &row.PhaseReached,
			&row.DurationSeconds, &row.KilledAt); err != nil {
			return nil, fmt.Errorf("scan encounter_outcomes: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// --- boss_respawns ---

// SaveRespawn inserts or updates the pending respawn of a boss.
func (r *EncounterRepository) SaveRespawn(ctx context.Context, row RespawnRow) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO boss_respawns (boss_id, respawn_at)
		 VALUES ($1, $2)
		 ON CONFLICT (boss_id) DO UPDATE SET
		   respawn_at = EXCLUDED.respawn_at`,
		row.BossID, row.RespawnAt)
	if err != nil {
		return fmt.Errorf("upsert boss_respawns boss %q: %w", row.BossID, err)
	}
	return nil
}

// LoadRespawns loads every pending respawn.
func (r *EncounterRepository) LoadRespawns(ctx context.Context) ([]RespawnRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT boss_id, respawn_at FROM boss_respawns ORDER BY boss_id`)
	if err != nil {
		return nil, fmt.Errorf("query boss_respawns: %w", err)
	}
	defer rows.Close()

	var result []RespawnRow
	for rows.Next() {
		var row RespawnRow
		if err := rows.Scan(&row.BossID, &row.RespawnAt); err != nil {
			return nil, fmt.Errorf("scan boss_respawns: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// DeleteRespawn removes the pending respawn of a boss.
func (r *EncounterRepository) DeleteRespawn(ctx context.Context, bossID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM boss_respawns WHERE boss_id = $1`, bossID)
	if err != nil {
		return fmt.Errorf("delete boss_respawns boss %q: %w", bossID, err)
	}
	return nil
}
