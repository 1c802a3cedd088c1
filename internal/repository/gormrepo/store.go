// Package gormrepo implements the repository contracts on GORM for the
// embedded SQLite deployment.
package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"focototal-be/internal/entities"
	"focototal-be/internal/repository"
)

type store struct {
	db *gorm.DB
}

// NewStore wraps an opened GORM database.
func NewStore(db *gorm.DB) repository.Store {
	return &store{db: db}
}

func (s *store) Users() repository.UserRepository { return &userRepository{db: s.db} }
func (s *store) PasswordResets() repository.PasswordResetRepository {
	return &passwordResetRepository{db: s.db}
}
func (s *store) Projects() repository.ProjectRepository { return &projectRepository{db: s.db} }
func (s *store) Tasks() repository.TaskRepository       { return &taskRepository{db: s.db} }
func (s *store) Phrases() repository.PhraseRepository   { return &phraseRepository{db: s.db} }

func (s *store) IssuePasswordReset(ctx context.Context, token *entities.PasswordResetToken) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resets := &passwordResetRepository{db: tx}
		if _, err := resets.InvalidateForEmail(ctx, token.Email); err != nil {
			return err
		}
		if _, err := resets.PurgeStale(ctx, token.CreatedAt); err != nil {
			return err
		}
		return resets.Create(ctx, token)
	})
}

func (s *store) RedeemPasswordReset(ctx context.Context, tokenID, email, passwordHash string, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.PasswordResetToken{}).
			Where("id = ? AND used = ? AND expires_at > ?", tokenID, false, now.UTC()).
			Update("used", true)
		if res.Error != nil {
			return fmt.Errorf("consume password reset: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrResetTokenConsumed
		}

		res = tx.Model(&entities.User{}).
			Where("email = ?", email).
			Updates(map[string]any{
				"password_hash": passwordHash,
				"updated_by":    gorm.Expr("id"),
				"updated_at":    now.UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("update password: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

func affected(res *gorm.DB, op string) error {
	if res.Error != nil {
		return fmt.Errorf("%s: %w", op, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// likeContains builds a lower-cased LIKE pattern with metacharacters escaped;
// pair it with ESCAPE '\'.
func likeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(s)) + "%"
}

func direction(o repository.SortOrder) string {
	if o == repository.SortAsc {
		return "ASC"
	}
	return "DESC"
}
