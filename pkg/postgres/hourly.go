package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

// GetHourlySlots retrieves all hourly slots for a day in hour order.
func (s *store) GetHourlySlots(ctx context.Context, day string) ([]db.HourlySlot, error) {
	rows, err := s.q.Query(ctx, `
		SELECT day, hour, occupant_id, pinned, original_occupant_id, reason
		FROM hourly_slots
		WHERE day = $1
		ORDER BY hour
	`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly slots: %w", err)
	}
	defer rows.Close()

	var slots []db.HourlySlot
	for rows.Next() {
		slot, err := scanHourlySlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hourly slots: %w", err)
	}

	return slots, nil
}

// GetHourlySlot retrieves a single hourly slot, or nil when no row
// exists for the (day, hour) key.
func (s *store) GetHourlySlot(ctx context.Context, day string, hour int) (*db.HourlySlot, error) {
	row := s.q.QueryRow(ctx, `
		SELECT day, hour, occupant_id, pinned, original_occupant_id, reason
		FROM hourly_slots
		WHERE day = $1 AND hour = $2
	`, day, hour)

	slot, err := scanHourlySlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// InsertHourlySlots inserts slots with insert-or-ignore semantics on
// the (day, hour) key, so a concurrent generation pass that got there
// first wins silently.
func (s *store) InsertHourlySlots(ctx context.Context, slots []db.HourlySlot) error {
	for _, slot := range slots {
		_, err := s.q.Exec(ctx, `
			INSERT INTO hourly_slots (day, hour, occupant_id, pinned, original_occupant_id, reason)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			ON CONFLICT (day, hour) DO NOTHING
		`, slot.Day, slot.Hour, slot.OccupantID, slot.Pinned, slot.OriginalOccupantID, slot.Reason)
		if err != nil {
			return fmt.Errorf("failed to insert hourly slot: %w", err)
		}
	}
	return nil
}

// UpsertHourlySlot replaces the full slot row. Override path only.
func (s *store) UpsertHourlySlot(ctx context.Context, slot db.HourlySlot) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO hourly_slots (day, hour, occupant_id, pinned, original_occupant_id, reason)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		ON CONFLICT (day, hour) DO UPDATE
		SET occupant_id = EXCLUDED.occupant_id,
		    pinned = EXCLUDED.pinned,
		    original_occupant_id = EXCLUDED.original_occupant_id,
		    reason = EXCLUDED.reason
	`, slot.Day, slot.Hour, slot.OccupantID, slot.Pinned, slot.OriginalOccupantID, slot.Reason)
	if err != nil {
		return fmt.Errorf("failed to upsert hourly slot: %w", err)
	}
	return nil
}

// DeleteUnpinnedHourlyFrom deletes the day's unpinned slots with
// hour >= cutoffHour. Pinned slots are never deleted.
func (s *store) DeleteUnpinnedHourlyFrom(ctx context.Context, day string, cutoffHour int) error {
	_, err := s.q.Exec(ctx, `
		DELETE FROM hourly_slots
		WHERE day = $1 AND hour >= $2 AND NOT pinned
	`, day, cutoffHour)
	if err != nil {
		return fmt.Errorf("failed to delete unpinned hourly slots: %w", err)
	}
	return nil
}

func scanHourlySlot(row pgx.Row) (db.HourlySlot, error) {
	var slot db.HourlySlot
	var day time.Time
	var reason *string
	if err := row.Scan(&day, &slot.Hour, &slot.OccupantID, &slot.Pinned, &slot.OriginalOccupantID, &reason); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return slot, err
		}
		return slot, fmt.Errorf("failed to scan hourly slot: %w", err)
	}
	slot.Day = day.Format("2006-01-02")
	if reason != nil {
		slot.Reason = *reason
	}
	return slot, nil
}
