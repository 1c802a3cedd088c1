package gormrepo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"focototal-be/internal/entities"
	"focototal-be/internal/repository"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "UNIQUE") && strings.Contains(msg, "users.email"):
			return repository.ErrDuplicateEmail
		case strings.Contains(msg, "UNIQUE") && strings.Contains(msg, "users.username"):
			return repository.ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) first(ctx context.Context, cond string, arg any) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
