package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focototal-be/internal/database"
	"focototal-be/internal/entities"
)

type passwordResetRepository struct {
	db database.DBTX
}

func NewPasswordResetRepository(db database.DBTX) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, t *entities.PasswordResetToken) error {
	query := `
		INSERT INTO password_resets (id, email, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.Email, t.Token, t.ExpiresAt.UTC(), t.Used, t.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to create password reset: %w", err)
	}
	return nil
}

func (r *passwordResetRepository) FindByToken(ctx context.Context, token string) (*entities.PasswordResetToken, error) {
	query := `
		SELECT id, email, token, expires_at, used, created_at
		FROM password_resets
		WHERE token = $1
	`

	var t entities.PasswordResetToken
	err := r.db.QueryRowContext(ctx, query, token).Scan(&t.ID, &t.Email, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find password reset: %w", err)
	}
	return &t, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE password_resets SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark password reset used: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark password reset used: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *passwordResetRepository) InvalidateForEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE password_resets SET used = TRUE WHERE email = $1 AND used = FALSE`, email)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate password resets: %w", err)
	}
	return res.RowsAffected()
}

func (r *passwordResetRepository) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE used = TRUE OR expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge password resets: %w", err)
	}
	return res.RowsAffected()
}
