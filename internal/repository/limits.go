package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odesa-navmannia/walkbot/internal/domain"
)

type LimitsRepo struct {
	db *pgxpool.Pool
}

func NewLimitsRepo(db *pgxpool.Pool) *LimitsRepo {
	return &LimitsRepo{db: db}
}

// Get returns the usage record for (user, day), or nil when none exists
// yet. Records for past days are left in place; rollover is the quota
// service's concern.
func (r *LimitsRepo) Get(ctx context.Context, userID int64, day string) (*domain.DailyLimit, error) {
	row := r.db.QueryRow(ctx, `
		SELECT user_id, day, walks_used, recs_used, walk_ceiling, rec_ceiling
		FROM daily_limits WHERE user_id = $1 AND day = $2`, userID, day)

	var l domain.DailyLimit
	err := row.Scan(&l.UserID, &l.Day, &l.WalksUsed, &l.RecsUsed, &l.WalkCeiling, &l.RecCeiling)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily limit: %w", err)
	}
	return &l, nil
}

func (r *LimitsRepo) Upsert(ctx context.Context, l *domain.DailyLimit) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO daily_limits (user_id, day, walks_used, recs_used, walk_ceiling, rec_ceiling)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, day) DO UPDATE SET
			walks_used = EXCLUDED.walks_used,
			recs_used = EXCLUDED.recs_used,
			walk_ceiling = EXCLUDED.walk_ceiling,
			rec_ceiling = EXCLUDED.rec_ceiling`,
		l.UserID, l.Day, l.WalksUsed, l.RecsUsed, l.WalkCeiling, l.RecCeiling)
	if err != nil {
		return fmt.Errorf("upsert daily limit: %w", err)
	}
	return nil
}
