package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/pkg/core/rotation"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// generateWeeklyDuty walks the window of week-start dates in order and
// fills every week that is not already settled, continuing the
// round-robin over the FULL roster (duty obligations persist through
// absence).
//
// The rotation pointer is derived by scanning history: the most recent
// pre-window week that actually served a turn. With no history the
// pointer rests on the first member, so the first computed occupant is
// the second. That is the scan-based cold-start convention.
func generateWeeklyDuty(ctx context.Context, store db.Store, logger *zap.Logger, weeks []string) error {
	if len(weeks) == 0 {
		return nil
	}

	roster, err := store.GetFullRoster(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch roster: %w", err)
	}
	if len(roster) == 0 {
		logger.Debug("Empty roster, skipping weekly duty generation")
		return nil
	}

	existing, err := store.GetWeeklySlotsRange(ctx, weeks[0], weeks[len(weeks)-1])
	if err != nil {
		return err
	}
	byWeek := make(map[string]db.WeeklyDutySlot, len(existing))
	for _, slot := range existing {
		byWeek[slot.WeekStart] = slot
	}

	lastServed, err := store.GetLastServedWeeklyBefore(ctx, weeks[0])
	if err != nil {
		return err
	}
	var wheel *rotation.Wheel
	if lastServed != nil {
		wheel = rotation.New(roster, *lastServed.OccupantID)
	} else {
		wheel = rotation.New(roster, rotation.ColdStartFirst(roster))
	}

	assigned := 0
	for _, week := range weeks {
		slot, exists := byWeek[week]

		if exists && slot.Pinned {
			if !slot.OffWeek && slot.OccupantID != nil {
				// Future weeks continue from the pinned occupant.
				wheel.Advance(*slot.OccupantID)
			}
			// A pinned off week consumes the turn without moving the
			// pointer.
			continue
		}

		if exists && !slot.OffWeek && slot.OccupantID != nil {
			// Settled by a previous pass; adopt, don't rewrite.
			wheel.Advance(*slot.OccupantID)
			continue
		}

		next := wheel.Next()
		occupantID := next.ID
		weekDate, err := parseDay(week)
		if err != nil {
			return err
		}
		newSlot := db.WeeklyDutySlot{
			WeekStart:  week,
			WeekNumber: isoWeekNumber(weekDate),
			OccupantID: &occupantID,
		}
		if exists {
			// Degenerate unpinned row (no occupant); repair it.
			if err := store.UpsertWeeklySlot(ctx, newSlot); err != nil {
				return err
			}
		} else {
			if err := store.InsertWeeklySlot(ctx, newSlot); err != nil {
				return err
			}
		}
		assigned++
	}

	if assigned > 0 {
		logger.Debug("Generated weekly duty slots",
			zap.String("from", weeks[0]),
			zap.String("to", weeks[len(weeks)-1]),
			zap.Int("assigned", assigned))
	}
	return nil
}
