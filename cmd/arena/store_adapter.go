package main

import (
	"context"

	"github.com/udisondev/encounter/internal/db"
	"github.com/udisondev/encounter/internal/game/raid"
)

// ledgerStoreAdapter adapts db.EncounterRepository to raid.Store.
type ledgerStoreAdapter struct {
	repo *db.EncounterRepository
}

func (a *ledgerStoreAdapter) SaveOutcome(ctx context.Context, row raid.OutcomeRow) error {
	_, err := a.repo.SaveOutcome(ctx, db.OutcomeRow{
		BossID:          row.BossID,
		KillerID:        row.KillerID,
		PhaseReached:    row.PhaseReached,
		DurationSeconds: row.DurationSeconds,
		KilledAt:        row.KilledAt,
	})
	return err
}

func (a *ledgerStoreAdapter) LoadRespawns(ctx context.Context) ([]raid.RespawnRow, error) {
	rows, err := a.repo.LoadRespawns(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]raid.RespawnRow, len(rows))
	for i, r := range rows {
		result[i] = raid.RespawnRow{
			BossID:    r.BossID,
			RespawnAt: r.RespawnAt,
		}
	}
	return result, nil
}

func (a *ledgerStoreAdapter) SaveRespawn(ctx context.Context, row raid.RespawnRow) error {
	return a.repo.SaveRespawn(ctx, db.RespawnRow{
		BossID:    row.BossID,
		RespawnAt: row.RespawnAt,
	})
}

func (a *ledgerStoreAdapter) DeleteRespawn(ctx context.Context, bossID string) error {
	return a.repo.DeleteRespawn(ctx, bossID)
}
