package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// EnsureGenerated materializes hourly, gate, weekly duty and on-call
// slots covering the given day and its rolling windows, inside one
// transaction. Idempotent: a second call with no intervening roster or
// absence change does nothing, and pinned slots are never touched.
func EnsureGenerated(ctx context.Context, database db.Database, logger *zap.Logger, cfg *config.Config, day string) error {
	date, err := parseDay(day)
	if err != nil {
		return err
	}
	weekStart := weekStartOf(date)

	weeklyWeeks, err := windowWeeks(cfg.WeeklyDutyRule, weekStart)
	if err != nil {
		return err
	}
	oncallWeeks, err := windowWeeks(cfg.OnCallRule, weekStart)
	if err != nil {
		return err
	}

	logger.Debug("Ensuring generation",
		zap.String("day", day),
		zap.String("week_start", weekStart.Format(dayFormat)))

	return database.InTx(ctx, func(store db.Store) error {
		if err := generateHourlySlots(ctx, store, logger, cfg.SlotHours, day); err != nil {
			return err
		}
		if err := generateGateSlot(ctx, store, logger, day); err != nil {
			return err
		}
		if err := generateWeeklyDuty(ctx, store, logger, weeklyWeeks); err != nil {
			return err
		}
		return generateOnCall(ctx, store, logger, oncallWeeks)
	})
}
