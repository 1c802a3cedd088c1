// Package service holds the business rules: authentication and password
// recovery, admin provisioning, and owner-scoped projects, tasks and phrases.
package service

import (
	"errors"
	"fmt"
	"time"

	"focototal-be/internal/apperror"
	"focototal-be/internal/entities"
	"focototal-be/internal/security"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks focototal-be/internal/service AuthService,UserService,ProjectService,TaskService,PhraseService

// Caller is the authenticated identity a request acts as.
type Caller struct {
	UserID string
	Role   entities.Role
}

func (c Caller) IsAdmin() bool { return c.Role == entities.RoleAdmin }

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateToken(user *entities.User) (string, error)
}

type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func hashPassword(h security.Hasher, password string) (string, error) {
	hash, err := h.Hash(password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return "", apperror.ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
