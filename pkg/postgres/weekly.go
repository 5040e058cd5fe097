package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

const weeklySlotColumns = `week_start, week_number, occupant_id, off_week, pinned, original_occupant_id, reason`

// GetWeeklySlot retrieves a single weekly duty slot, or nil when the
// week has no record.
func (s *store) GetWeeklySlot(ctx context.Context, weekStart string) (*db.WeeklyDutySlot, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+weeklySlotColumns+`
		FROM weekly_duty_slots
		WHERE week_start = $1
	`, weekStart)

	slot, err := scanWeeklySlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetWeeklySlotsRange retrieves weekly slots with
// fromWeek <= week_start <= toWeek, in week order.
func (s *store) GetWeeklySlotsRange(ctx context.Context, fromWeek, toWeek string) ([]db.WeeklyDutySlot, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+weeklySlotColumns+`
		FROM weekly_duty_slots
		WHERE week_start >= $1 AND week_start <= $2
		ORDER BY week_start
	`, fromWeek, toWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly slots: %w", err)
	}
	defer rows.Close()

	var slots []db.WeeklyDutySlot
	for rows.Next() {
		slot, err := scanWeeklySlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly slots: %w", err)
	}

	return slots, nil
}

// GetLastServedWeeklyBefore retrieves the most recent week strictly
// before weekStart that actually served a turn (not off, has an
// occupant), or nil when none exists. The weekly rotation pointer is
// derived from this row.
func (s *store) GetLastServedWeeklyBefore(ctx context.Context, weekStart string) (*db.WeeklyDutySlot, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+weeklySlotColumns+`
		FROM weekly_duty_slots
		WHERE week_start < $1 AND NOT off_week AND occupant_id IS NOT NULL
		ORDER BY week_start DESC
		LIMIT 1
	`, weekStart)

	slot, err := scanWeeklySlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// InsertWeeklySlot inserts with insert-or-ignore semantics on the
// week_start key. Generation path only.
func (s *store) InsertWeeklySlot(ctx context.Context, slot db.WeeklyDutySlot) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO weekly_duty_slots (`+weeklySlotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		ON CONFLICT (week_start) DO NOTHING
	`, slot.WeekStart, slot.WeekNumber, slot.OccupantID, slot.OffWeek, slot.Pinned, slot.OriginalOccupantID, slot.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert weekly slot: %w", err)
	}
	return nil
}

// UpsertWeeklySlot replaces the full slot row. Override and postpone
// paths only.
func (s *store) UpsertWeeklySlot(ctx context.Context, slot db.WeeklyDutySlot) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO weekly_duty_slots (`+weeklySlotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		ON CONFLICT (week_start) DO UPDATE
		SET week_number = EXCLUDED.week_number,
		    occupant_id = EXCLUDED.occupant_id,
		    off_week = EXCLUDED.off_week,
		    pinned = EXCLUDED.pinned,
		    original_occupant_id = EXCLUDED.original_occupant_id,
		    reason = EXCLUDED.reason
	`, slot.WeekStart, slot.WeekNumber, slot.OccupantID, slot.OffWeek, slot.Pinned, slot.OriginalOccupantID, slot.Reason)
	if err != nil {
		return fmt.Errorf("failed to upsert weekly slot: %w", err)
	}
	return nil
}

// DeleteUnpinnedWeeklyAfter deletes unpinned weeks strictly after
// weekStart. Used when an off-week edit invalidates the downstream
// pointer sequence.
func (s *store) DeleteUnpinnedWeeklyAfter(ctx context.Context, weekStart string) error {
	_, err := s.q.Exec(ctx, `
		DELETE FROM weekly_duty_slots
		WHERE week_start > $1 AND NOT pinned
	`, weekStart)
	if err != nil {
		return fmt.Errorf("failed to delete unpinned weekly slots: %w", err)
	}
	return nil
}

func scanWeeklySlot(row pgx.Row) (db.WeeklyDutySlot, error) {
	var slot db.WeeklyDutySlot
	var weekStart time.Time
	var reason *string
	err := row.Scan(&weekStart, &slot.WeekNumber, &slot.OccupantID, &slot.OffWeek, &slot.Pinned, &slot.OriginalOccupantID, &reason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return slot, err
		}
		return slot, fmt.Errorf("failed to scan weekly slot: %w", err)
	}
	slot.WeekStart = weekStart.Format("2006-01-02")
	if reason != nil {
		slot.Reason = *reason
	}
	return slot, nil
}
