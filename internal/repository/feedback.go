package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odesa-navmannia/walkbot/internal/domain"
)

type FeedbackRepo struct {
	db *pgxpool.Pool
}

func NewFeedbackRepo(db *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Append writes one record to the feedback log. The log is append-only.
func (r *FeedbackRepo) Append(ctx context.Context, ev domain.FeedbackEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO feedback (id, user_id, place_id, action, context, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.UserID, ev.PlaceID, string(ev.Action), ev.Context, ev.Amount.String())
	if err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	return nil
}
