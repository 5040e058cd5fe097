package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

// GetGateSlot retrieves the gate duty pair for a day, or nil when the
// day has no record yet.
func (s *store) GetGateSlot(ctx context.Context, day string) (*db.GateSlot, error) {
	var slot db.GateSlot
	var d time.Time
	err := s.q.QueryRow(ctx, `
		SELECT day, main_id, backup_id
		FROM gate_slots
		WHERE day = $1
	`, day).Scan(&d, &slot.MainID, &slot.BackupID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan gate slot: %w", err)
	}
	slot.Day = d.Format("2006-01-02")
	return &slot, nil
}

// InsertGateSlot inserts the day's gate pair with insert-or-ignore
// semantics on the day key.
func (s *store) InsertGateSlot(ctx context.Context, slot db.GateSlot) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO gate_slots (day, main_id, backup_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (day) DO NOTHING
	`, slot.Day, slot.MainID, slot.BackupID)
	if err != nil {
		return fmt.Errorf("failed to insert gate slot: %w", err)
	}
	return nil
}
