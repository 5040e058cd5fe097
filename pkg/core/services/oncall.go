package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/pkg/core/rotation"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// generateOnCall fills every (week, weekday) slot in the window,
// continuing the round-robin over the FULL roster from the persisted
// singleton cursor. A missing cursor is seeded with the last roster
// member so the first computed occupant is the first member, the
// persisted-cursor cold-start convention. The final cursor value is
// written back so the next invocation continues seamlessly.
func generateOnCall(ctx context.Context, store db.Store, logger *zap.Logger, weeks []string) error {
	if len(weeks) == 0 {
		return nil
	}

	roster, err := store.GetFullRoster(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch roster: %w", err)
	}
	if len(roster) == 0 {
		logger.Debug("Empty roster, skipping on-call generation")
		return nil
	}

	last, ok, err := store.GetRotationCursor(ctx, db.StreamOnCall)
	if err != nil {
		return err
	}
	if !ok {
		last = rotation.ColdStartLast(roster)
	}
	wheel := rotation.New(roster, last)

	existing, err := store.GetOnCallSlotsRange(ctx, weeks[0], weeks[len(weeks)-1])
	if err != nil {
		return err
	}
	type slotKey struct {
		week    string
		weekday int
	}
	byKey := make(map[slotKey]db.OnCallSlot, len(existing))
	for _, slot := range existing {
		byKey[slotKey{slot.WeekStart, slot.Weekday}] = slot
	}

	assigned := 0
	for _, week := range weeks {
		for wd := 0; wd < 7; wd++ {
			if slot, exists := byKey[slotKey{week, wd}]; exists {
				// Already materialized; its occupant becomes the new
				// cursor value.
				wheel.Advance(slot.OccupantID)
				continue
			}
			next := wheel.Next()
			slot := db.OnCallSlot{WeekStart: week, Weekday: wd, OccupantID: next.ID}
			if err := store.InsertOnCallSlot(ctx, slot); err != nil {
				return err
			}
			assigned++
		}
	}

	if assigned > 0 {
		logger.Debug("Generated on-call slots",
			zap.String("from", weeks[0]),
			zap.String("to", weeks[len(weeks)-1]),
			zap.Int("assigned", assigned))
	}

	return store.UpsertRotationCursor(ctx, db.StreamOnCall, wheel.Last())
}
