package gormrepo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"focototal-be/internal/entities"
)

type passwordResetRepository struct {
	db *gorm.DB
}

func (r *passwordResetRepository) Create(ctx context.Context, t *entities.PasswordResetToken) error {
	t.ExpiresAt = t.ExpiresAt.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create password reset: %w", err)
	}
	return nil
}

func (r *passwordResetRepository) FindByToken(ctx context.Context, token string) (*entities.PasswordResetToken, error) {
	var t entities.PasswordResetToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&entities.PasswordResetToken{}).Where("id = ?", id).Update("used", true)
	return affected(res, "mark password reset used")
}

func (r *passwordResetRepository) InvalidateForEmail(ctx context.Context, email string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entities.PasswordResetToken{}).
		Where("email = ? AND used = ?", email, false).
		Update("used", true)
	return res.RowsAffected, res.Error
}

func (r *passwordResetRepository) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("used = ? OR expires_at <= ?", true, now.UTC()).
		Delete(&entities.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
