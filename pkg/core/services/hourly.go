package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jcallaghan/duty-rota/internal/config"
	"github.com/jcallaghan/duty-rota/pkg/db"
)

// generateHourlySlots materializes a day's hourly slots. The day is a
// no-op once it has any slot at all, pinned or not; only an explicit
// reshuffle regenerates existing days.
func generateHourlySlots(ctx context.Context, store db.Store, logger *zap.Logger, hours []int, day string) error {
	existing, err := store.GetHourlySlots(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to fetch hourly slots: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	present, err := store.GetPresentRoster(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to fetch present roster: %w", err)
	}
	if len(present) == 0 {
		logger.Debug("No one present, leaving hourly slots unassigned", zap.String("day", day))
		return nil
	}

	shuffled := shufflePeople(present)
	slots := make([]db.HourlySlot, 0, len(hours))
	for i, hour := range hours {
		id := shuffled[i%len(shuffled)].ID
		slots = append(slots, db.HourlySlot{Day: day, Hour: hour, OccupantID: &id})
	}

	logger.Debug("Generated hourly slots",
		zap.String("day", day),
		zap.Int("slots", len(slots)),
		zap.Int("present", len(present)))

	if err := store.InsertHourlySlots(ctx, slots); err != nil {
		return fmt.Errorf("failed to insert hourly slots: %w", err)
	}
	return nil
}

// Reshuffle regenerates the day's unpinned hourly slots from the cutoff
// hour onward and appends an audit entry recording who asked and why.
// Slots before the cutoff and pinned slots at any hour are untouched.
// Everything happens in one transaction.
func Reshuffle(ctx context.Context, database db.Database, logger *zap.Logger, cfg *config.Config, day string, cutoffHour int, actor, reason string) error {
	if _, err := parseDay(day); err != nil {
		return err
	}
	if cutoffHour < 0 || cutoffHour > 23 {
		return validationErrorf("cutoff hour %d out of range", cutoffHour)
	}
	if strings.TrimSpace(actor) == "" {
		return validationErrorf("actor is required")
	}
	if strings.TrimSpace(reason) == "" {
		return validationErrorf("reason is required")
	}

	logger.Debug("Reshuffling hourly slots",
		zap.String("day", day),
		zap.Int("cutoff_hour", cutoffHour),
		zap.String("actor", actor))

	return database.InTx(ctx, func(store db.Store) error {
		if err := store.DeleteUnpinnedHourlyFrom(ctx, day, cutoffHour); err != nil {
			return err
		}

		// What survived the delete: everything before the cutoff plus
		// pinned slots at any hour.
		remaining, err := store.GetHourlySlots(ctx, day)
		if err != nil {
			return fmt.Errorf("failed to fetch hourly slots: %w", err)
		}
		occupied := make(map[int]bool, len(remaining))
		for _, slot := range remaining {
			occupied[slot.Hour] = true
		}

		present, err := store.GetPresentRoster(ctx, day)
		if err != nil {
			return fmt.Errorf("failed to fetch present roster: %w", err)
		}

		if len(present) > 0 {
			shuffled := shufflePeople(present)
			var slots []db.HourlySlot
			j := 0
			for _, hour := range cfg.SlotHours {
				if hour < cutoffHour || occupied[hour] {
					continue
				}
				id := shuffled[j%len(shuffled)].ID
				slots = append(slots, db.HourlySlot{Day: day, Hour: hour, OccupantID: &id})
				j++
			}
			if err := store.InsertHourlySlots(ctx, slots); err != nil {
				return fmt.Errorf("failed to insert hourly slots: %w", err)
			}
			logger.Debug("Reassigned hourly slots", zap.String("day", day), zap.Int("slots", len(slots)))
		}

		return store.InsertAuditEntry(ctx, db.AuditEntry{
			ID:        uuid.New().String(),
			Day:       day,
			Action:    db.AuditActionShuffle,
			Actor:     actor,
			Reason:    reason,
			CreatedAt: time.Now().UTC(),
		})
	})
}

// shufflePeople returns a uniformly shuffled copy of the roster. The
// shuffle is deliberately unseeded: fairness over reproducibility.
func shufflePeople(people []db.Person) []db.Person {
	out := slices.Clone(people)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
