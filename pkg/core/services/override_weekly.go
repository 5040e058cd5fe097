package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// OverrideWeeklyDuty pins one week to either a chosen occupant or to
// off-week status. The original occupant is captured only at the first
// pin. If the edit changes the week's off-week status, every unpinned
// week after it is invalid (the pointer sequence downstream no longer
// adds up), so those weeks are deleted and the rotator re-runs from
// this week forward, all in the same transaction. An edit that leaves
// the off-week status alone touches nothing downstream.
func OverrideWeeklyDuty(ctx context.Context, database db.Database, logger *zap.Logger, cfg *config.Config, weekStart string, personID *int64, offWeek bool, reason string) error {
	ws, err := parseWeekStart(weekStart)
	if err != nil {
		return err
	}
	if !offWeek && personID == nil {
		return validationErrorf("person id is required unless the week is marked off")
	}
	if strings.TrimSpace(reason) == "" {
		return validationErrorf("reason is required")
	}

	weeks, err := windowWeeks(cfg.WeeklyDutyRule, ws)
	if err != nil {
		return err
	}

	logger.Debug("Overriding weekly duty",
		zap.String("week_start", weekStart),
		zap.Bool("off_week", offWeek))

	return database.InTx(ctx, func(store db.Store) error {
		current, err := store.GetWeeklySlot(ctx, weekStart)
		if err != nil {
			return err
		}

		offChanged := current == nil && offWeek ||
			current != nil && current.OffWeek != offWeek

		slot := db.WeeklyDutySlot{
			WeekStart:  weekStart,
			WeekNumber: isoWeekNumber(ws),
			OffWeek:    offWeek,
			Pinned:     true,
			Reason:     reason,
		}
		if !offWeek {
			slot.OccupantID = personID
		}
		switch {
		case current == nil:
		case current.Pinned:
			slot.OriginalOccupantID = current.OriginalOccupantID
		default:
			slot.OriginalOccupantID = current.OccupantID
		}

		if err := store.UpsertWeeklySlot(ctx, slot); err != nil {
			return err
		}

		if !offChanged {
			return nil
		}

		logger.Debug("Off-week status changed, re-shifting downstream weeks",
			zap.String("week_start", weekStart))
		if err := store.DeleteUnpinnedWeeklyAfter(ctx, weekStart); err != nil {
			return err
		}
		return generateWeeklyDuty(ctx, store, logger, weeks)
	})
}
