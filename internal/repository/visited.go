package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odesa-navmannia/walkbot/internal/config"
)

type VisitedRepo struct {
	db *pgxpool.Pool
}

func NewVisitedRepo(db *pgxpool.Pool) *VisitedRepo {
	return &VisitedRepo{db: db}
}

// IDs returns the user's durable visited set.
func (r *VisitedRepo) IDs(ctx context.Context, userID int64) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx,
		`SELECT place_id FROM visited_places WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list visited places: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan visited place: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// Add records a shown place and trims the set to the most recent entries so
// it never grows without bound.
func (r *VisitedRepo) Add(ctx context.Context, userID int64, placeID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO visited_places (user_id, place_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, place_id) DO UPDATE SET seen_at = now()`,
		userID, placeID)
	if err != nil {
		return fmt.Errorf("add visited place: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		DELETE FROM visited_places
		WHERE user_id = $1 AND place_id IN (
			SELECT place_id FROM visited_places
			WHERE user_id = $1
			ORDER BY seen_at DESC
			OFFSET $2
		)`, userID, config.VisitedKeep)
	if err != nil {
		return fmt.Errorf("trim visited places: %w", err)
	}
	return nil
}
