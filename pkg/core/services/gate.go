package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

// generateGateSlot computes the day's gate main/backup pair from the
// previous day's record. Deterministic, no randomness, and computed at
// most once per day: an existing record short-circuits. Gate duty has
// no pin concept.
func generateGateSlot(ctx context.Context, store db.Store, logger *zap.Logger, day string) error {
	existing, err := store.GetGateSlot(ctx, day)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	present, err := store.GetPresentRoster(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to fetch present roster: %w", err)
	}
	if len(present) == 0 {
		logger.Debug("No one present, skipping gate duty", zap.String("day", day))
		return nil
	}

	date, err := parseDay(day)
	if err != nil {
		return err
	}
	prev, err := store.GetGateSlot(ctx, date.AddDate(0, 0, -1).Format(dayFormat))
	if err != nil {
		return err
	}

	presentIdx := make(map[int64]int, len(present))
	for i, p := range present {
		presentIdx[p.ID] = i
	}

	// Yesterday's backup takes over if present; otherwise rotate one
	// past yesterday's main; otherwise start from the front.
	var mainIdx int
	switch {
	case prev != nil && prev.BackupID != nil && hasIdx(presentIdx, *prev.BackupID):
		mainIdx = presentIdx[*prev.BackupID]
	case prev != nil && hasIdx(presentIdx, prev.MainID):
		mainIdx = (presentIdx[prev.MainID] + 1) % len(present)
	default:
		mainIdx = 0
	}

	slot := db.GateSlot{Day: day, MainID: present[mainIdx].ID}
	if len(present) >= 2 {
		backupID := present[(mainIdx+1)%len(present)].ID
		slot.BackupID = &backupID
	}

	logger.Debug("Assigned gate duty",
		zap.String("day", day),
		zap.Int64("main_id", slot.MainID))

	return store.InsertGateSlot(ctx, slot)
}

func hasIdx(idx map[int64]int, id int64) bool {
	_, ok := idx[id]
	return ok
}
