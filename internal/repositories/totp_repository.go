package repositories

import (
	"context"

	"oleo-backend/internal/db"
	"oleo-backend/internal/models"
)

type TOTPRepository struct {
	DB db.Querier
}

func NewTOTPRepository(q db.Querier) *TOTPRepository {
	return &TOTPRepository{DB: q}
}

func (r *TOTPRepository) Upsert(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO totp_secrets(user_id, secret, enabled)
         VALUES($1, $2, FALSE)
         ON CONFLICT (user_id) DO UPDATE SET secret=EXCLUDED.secret, enabled=FALSE`,
		userID, secret)
	return err
}

func (r *TOTPRepository) Get(ctx context.Context, userID int) (*models.TOTPSecret, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT user_id, secret, enabled, created_at FROM totp_secrets WHERE user_id=$1`, userID)

	var t models.TOTPSecret
	if err := row.Scan(&t.UserID, &t.Secret, &t.Enabled, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TOTPRepository) Enable(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE totp_secrets SET enabled=TRUE WHERE user_id=$1`, userID)
	return err
}

func (r *TOTPRepository) Disable(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM totp_secrets WHERE user_id=$1`, userID)
	return err
}
