package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odesa-navmannia/walkbot/internal/domain"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT telegram_id, first_name, username, is_admin, last_interaction, created_at, updated_at
		FROM users WHERE telegram_id = $1`, telegramID)

	var u domain.User
	err := row.Scan(&u.TelegramID, &u.FirstName, &u.Username, &u.IsAdmin,
		&u.LastInteraction, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Upsert creates the user on first contact and refreshes the profile fields
// afterwards. Returns the stored user and whether it was just created.
func (r *UserRepo) Upsert(ctx context.Context, telegramID int64, firstName, username string, isAdmin bool) (*domain.User, bool, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (telegram_id, first_name, username, is_admin)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			username = EXCLUDED.username,
			last_interaction = now(),
			updated_at = now()
		RETURNING telegram_id, first_name, username, is_admin,
			last_interaction, created_at, updated_at,
			(created_at = updated_at) AS created`, telegramID, firstName, username, isAdmin)

	var u domain.User
	var created bool
	err := row.Scan(&u.TelegramID, &u.FirstName, &u.Username, &u.IsAdmin,
		&u.LastInteraction, &u.CreatedAt, &u.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}
	return &u, created, nil
}

// AllIDs returns every known user id, for broadcast fan-out.
func (r *UserRepo) AllIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT telegram_id FROM users ORDER BY telegram_id`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepo) CountTotal(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepo) CountCreatedAfter(ctx context.Context, after time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE created_at >= $1`, after).Scan(&n)
	return n, err
}
