package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// PostponeWeeklyDuty single-steps the person at the head of the queue
// to the back: the occupants of all unpinned, non-off weeks from
// fromWeek onward rotate left by one. Pinned and off weeks keep their
// place and their occupant. This is a distinct operation from an
// override: nothing gets pinned, and no pointer state changes, since
// the settled weeks themselves carry the rotation.
func PostponeWeeklyDuty(ctx context.Context, database db.Database, logger *zap.Logger, cfg *config.Config, fromWeek string) error {
	ws, err := parseWeekStart(fromWeek)
	if err != nil {
		return err
	}

	weeks, err := windowWeeks(cfg.WeeklyDutyRule, ws)
	if err != nil {
		return err
	}
	if len(weeks) == 0 {
		return nil
	}

	logger.Debug("Postponing weekly duty", zap.String("from_week", fromWeek))

	return database.InTx(ctx, func(store db.Store) error {
		slots, err := store.GetWeeklySlotsRange(ctx, weeks[0], weeks[len(weeks)-1])
		if err != nil {
			return err
		}

		var queue []db.WeeklyDutySlot
		for _, slot := range slots {
			if slot.Pinned || slot.OffWeek || slot.OccupantID == nil {
				continue
			}
			queue = append(queue, slot)
		}
		if len(queue) < 2 {
			logger.Debug("Nothing to postpone", zap.String("from_week", fromWeek))
			return nil
		}

		head := queue[0].OccupantID
		for i := 0; i < len(queue)-1; i++ {
			queue[i].OccupantID = queue[i+1].OccupantID
		}
		queue[len(queue)-1].OccupantID = head

		for _, slot := range queue {
			if err := store.UpsertWeeklySlot(ctx, slot); err != nil {
				return err
			}
		}
		return nil
	})
}
