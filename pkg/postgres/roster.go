package postgres

import (
	"context"
	"fmt"

	"github.com/jcallaghan/duty-rota/pkg/db"
)

// GetFullRoster retrieves every roster member in id-ascending order.
// This order is the rotation order.
func (s *store) GetFullRoster(ctx context.Context) ([]db.Person, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, display_name
		FROM people
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var people []db.Person
	for rows.Next() {
		var p db.Person
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster: %w", err)
	}

	return people, nil
}

// GetPresentRoster retrieves the roster minus people absent on the
// given day, keeping the id-ascending order.
func (s *store) GetPresentRoster(ctx context.Context, day string) ([]db.Person, error) {
	rows, err := s.q.Query(ctx, `
		SELECT p.id, p.display_name
		FROM people p
		WHERE NOT EXISTS (
			SELECT 1 FROM absences a
			WHERE a.person_id = p.id AND a.day = $1
		)
		ORDER BY p.id
	`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query present roster: %w", err)
	}
	defer rows.Close()

	var people []db.Person
	for rows.Next() {
		var p db.Person
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating present roster: %w", err)
	}

	return people, nil
}
