package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

// InsertAuditEntry appends an audit entry. There is no update or
// delete path for audit entries anywhere in the store.
func (s *store) InsertAuditEntry(ctx context.Context, entry db.AuditEntry) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO audit_entries (id, day, action, actor, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.ID, entry.Day, entry.Action, entry.Actor, entry.Reason, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// GetLatestAuditEntry retrieves the most recent entry for a day, or
// nil when the day has none. Older entries stay in the table but are
// never surfaced to readers.
func (s *store) GetLatestAuditEntry(ctx context.Context, day string) (*db.AuditEntry, error) {
	var entry db.AuditEntry
	var d time.Time
	err := s.q.QueryRow(ctx, `
		SELECT id, day, action, actor, reason, created_at
		FROM audit_entries
		WHERE day = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, day).Scan(&entry.ID, &d, &entry.Action, &entry.Actor, &entry.Reason, &entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit entry: %w", err)
	}
	entry.Day = d.Format("2006-01-02")
	return &entry, nil
}
