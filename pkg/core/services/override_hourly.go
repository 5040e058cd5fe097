package services

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// OverrideHourlySlot pins one hourly slot to the given person. Pinning
// is permanent: the slot is exempt from all future regeneration, and
// the pre-edit occupant is captured once, at the first pin, never
// rewritten by later edits to the same slot.
func OverrideHourlySlot(ctx context.Context, database db.Database, logger *zap.Logger, cfg *config.Config, day string, hour int, personID int64, reason string) error {
	if _, err := parseDay(day); err != nil {
		return err
	}
	if !slices.Contains(cfg.SlotHours, hour) {
		return validationErrorf("hour %d is not a configured slot hour", hour)
	}
	if personID <= 0 {
		return validationErrorf("person id is required")
	}
	if strings.TrimSpace(reason) == "" {
		return validationErrorf("reason is required")
	}

	logger.Debug("Overriding hourly slot",
		zap.String("day", day),
		zap.Int("hour", hour),
		zap.Int64("person_id", personID))

	return database.InTx(ctx, func(store db.Store) error {
		current, err := store.GetHourlySlot(ctx, day, hour)
		if err != nil {
			return err
		}

		slot := db.HourlySlot{
			Day:        day,
			Hour:       hour,
			OccupantID: &personID,
			Pinned:     true,
			Reason:     reason,
		}
		switch {
		case current == nil:
			// First pin on a slot that never existed: no original
			// occupant to capture.
		case current.Pinned:
			slot.OriginalOccupantID = current.OriginalOccupantID
		default:
			slot.OriginalOccupantID = current.OccupantID
		}

		return store.UpsertHourlySlot(ctx, slot)
	})
}
