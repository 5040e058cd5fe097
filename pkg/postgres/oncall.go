package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

// GetOnCallSlot retrieves a single on-call slot, or nil when no row
// exists for the (week_start, weekday) key.
func (s *store) GetOnCallSlot(ctx context.Context, weekStart string, weekday int) (*db.OnCallSlot, error) {
	var slot db.OnCallSlot
	var ws time.Time
	err := s.q.QueryRow(ctx, `
		SELECT week_start, weekday, occupant_id
		FROM oncall_slots
		WHERE week_start = $1 AND weekday = $2
	`, weekStart, weekday).Scan(&ws, &slot.Weekday, &slot.OccupantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan on-call slot: %w", err)
	}
	slot.WeekStart = ws.Format("2006-01-02")
	return &slot, nil
}

// GetOnCallSlotsRange retrieves on-call slots with
// fromWeek <= week_start <= toWeek, in (week, weekday) order.
func (s *store) GetOnCallSlotsRange(ctx context.Context, fromWeek, toWeek string) ([]db.OnCallSlot, error) {
	rows, err := s.q.Query(ctx, `
		SELECT week_start, weekday, occupant_id
		FROM oncall_slots
		WHERE week_start >= $1 AND week_start <= $2
		ORDER BY week_start, weekday
	`, fromWeek, toWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to query on-call slots: %w", err)
	}
	defer rows.Close()

	var slots []db.OnCallSlot
	for rows.Next() {
		var slot db.OnCallSlot
		var ws time.Time
		if err := rows.Scan(&ws, &slot.Weekday, &slot.OccupantID); err != nil {
			return nil, fmt.Errorf("failed to scan on-call slot: %w", err)
		}
		slot.WeekStart = ws.Format("2006-01-02")
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating on-call slots: %w", err)
	}

	return slots, nil
}

// InsertOnCallSlot inserts with insert-or-ignore semantics on the
// (week_start, weekday) key.
func (s *store) InsertOnCallSlot(ctx context.Context, slot db.OnCallSlot) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO oncall_slots (week_start, weekday, occupant_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (week_start, weekday) DO NOTHING
	`, slot.WeekStart, slot.Weekday, slot.OccupantID)
	if err != nil {
		return fmt.Errorf("failed to insert on-call slot: %w", err)
	}
	return nil
}

// GetRotationCursor retrieves the persisted cursor for a rotation
// stream. ok is false when no cursor row exists or the referenced
// person was deleted (last_assigned_id nulled).
func (s *store) GetRotationCursor(ctx context.Context, stream string) (int64, bool, error) {
	var lastAssigned *int64
	err := s.q.QueryRow(ctx, `
		SELECT last_assigned_id
		FROM rotation_cursors
		WHERE stream = $1
	`, stream).Scan(&lastAssigned)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to scan rotation cursor: %w", err)
	}
	if lastAssigned == nil {
		return 0, false, nil
	}
	return *lastAssigned, true, nil
}

// UpsertRotationCursor persists the cursor for a rotation stream.
func (s *store) UpsertRotationCursor(ctx context.Context, stream string, lastAssignedID int64) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO rotation_cursors (stream, last_assigned_id)
		VALUES ($1, $2)
		ON CONFLICT (stream) DO UPDATE
		SET last_assigned_id = EXCLUDED.last_assigned_id
	`, stream, lastAssignedID)
	if err != nil {
		return fmt.Errorf("failed to upsert rotation cursor: %w", err)
	}
	return nil
}
