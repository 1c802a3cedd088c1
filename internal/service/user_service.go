package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"focototal-be/internal/apperror"
	"focototal-be/internal/entities"
	"focototal-be/internal/logging"
	"focototal-be/internal/mailer"
	"focototal-be/internal/models"
	"focototal-be/internal/repository"
	"focototal-be/internal/security"
)

// UserService provisions accounts on behalf of an administrator.
type UserService interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.RegisterResponse, error)
}

type userService struct {
	users  repository.UserRepository
	hasher security.Hasher
	mail   mailer.Mailer
	logger logging.Logger
	now    clock
}

func NewUserService(users repository.UserRepository, hasher security.Hasher, mail mailer.Mailer, logger logging.Logger) UserService {
	return &userService{users: users, hasher: hasher, mail: mail, logger: logger, now: utcNow}
}

// CreateUser generates a temporary password and mails it to the new user.
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.RegisterResponse, error) {
	password, err := security.TemporaryPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	user, err := createAccount(ctx, s.users, s.hasher, s.now(), newAccount{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Role:     req.Role,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	if err := s.mail.SendTemporaryCredentials(ctx, user, password); err != nil {
		s.logger.Warn(ctx, "credentials email not sent", "user_id", user.ID, "error", err)
	}

	return &models.RegisterResponse{
		Message: "User created successfully",
		User:    models.NewUserResponse(user),
	}, nil
}

type newAccount struct {
	Name     string
	Email    string
	Username string
	Role     entities.Role
	Password string
}

// createAccount checks email and username for collisions, hashes the
// password and stores the user. Username defaults to the name.
func createAccount(ctx context.Context, users repository.UserRepository, hasher security.Hasher, now time.Time, acc newAccount) (*entities.User, error) {
	if acc.Username == "" {
		acc.Username = acc.Name
	}
	if acc.Role == "" {
		acc.Role = entities.RoleFree
	}

	if _, err := users.FindByEmail(ctx, acc.Email); err == nil {
		return nil, apperror.ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := users.FindByUsername(ctx, acc.Username); err == nil {
		return nil, apperror.ErrUsernameAlreadyTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := hashPassword(hasher, acc.Password)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	user := &entities.User{
		ID:           id,
		Email:        acc.Email,
		Username:     acc.Username,
		PasswordHash: hash,
		Name:         acc.Name,
		Role:         acc.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
		UpdatedBy:    &id,
	}

	err = users.Create(ctx, user)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return nil, apperror.ErrEmailAlreadyExists
	case errors.Is(err, repository.ErrDuplicateUsername):
		return nil, apperror.ErrUsernameAlreadyTaken
	case err != nil:
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
