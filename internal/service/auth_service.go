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

const (
	// resetTokenBytes of randomness, hex-encoded in the link.
	resetTokenBytes = 32

	forgotPasswordMessage = "If this email is registered, you will receive a password recovery link shortly"
	resetPasswordMessage  = "Password reset successfully"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) (*models.MessageResponse, error)
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) (*models.MessageResponse, error)
	Me(ctx context.Context, userID string) (*models.MeResponse, error)
}

type authService struct {
	store    repository.Store
	tokens   TokenIssuer
	hasher   security.Hasher
	mail     mailer.Mailer
	logger   logging.Logger
	resetTTL time.Duration
	now      clock
}

// NewAuthService creates a new auth service
func NewAuthService(store repository.Store, tokens TokenIssuer, hasher security.Hasher, mail mailer.Mailer, logger logging.Logger, resetTTL time.Duration) AuthService {
	return &authService{
		store:    store,
		tokens:   tokens,
		hasher:   hasher,
		mail:     mail,
		logger:   logger,
		resetTTL: resetTTL,
		now:      utcNow,
	}
}

// Login authenticates a user and returns a token with the user's profile.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.store.Users().FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.CompareDummy(req.Password)
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrTokenGeneration, err)
	}

	return &models.LoginResponse{
		Token: token,
		User:  models.NewUserResponse(user),
	}, nil
}

// Register creates a new account and sends a welcome email.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	user, err := createAccount(ctx, s.store.Users(), s.hasher, s.now(), newAccount{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := s.mail.SendWelcome(ctx, user); err != nil {
		s.logger.Warn(ctx, "welcome email not sent", "user_id", user.ID, "error", err)
	}

	return &models.RegisterResponse{
		Message: "User registered successfully",
		User:    models.NewUserResponse(user),
	}, nil
}

// ForgotPassword answers the same way whether or not the email exists. For a
// known email it issues a fresh token, which invalidates earlier ones, and
// mails the reset link.
func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) (*models.MessageResponse, error) {
	generic := &models.MessageResponse{Message: forgotPasswordMessage}

	user, err := s.store.Users().FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error(ctx, "forgot password lookup failed", "error", err)
		}
		return generic, nil
	}

	raw, err := security.RandomToken(resetTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	now := s.now()
	token := &entities.PasswordResetToken{
		ID:        uuid.NewString(),
		Email:     user.Email,
		Token:     raw,
		ExpiresAt: now.Add(s.resetTTL),
		CreatedAt: now,
	}
	if err := s.store.IssuePasswordReset(ctx, token); err != nil {
		s.logger.Error(ctx, "issue password reset failed", "user_id", user.ID, "error", err)
		return generic, nil
	}

	if err := s.mail.SendPasswordReset(ctx, user, raw); err != nil {
		s.logger.Warn(ctx, "password reset email not sent", "user_id", user.ID, "error", err)
	}
	return generic, nil
}

// ResetPassword redeems a reset token. Unknown, used and expired tokens are
// reported with distinct codes; an expired token is burned on the way out.
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) (*models.MessageResponse, error) {
	token, err := s.store.PasswordResets().FindByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}

	if token.Used {
		return nil, apperror.ErrResetTokenUsed
	}

	now := s.now()
	if token.Expired(now) {
		if err := s.store.PasswordResets().MarkUsed(ctx, token.ID); err != nil {
			s.logger.Error(ctx, "failed to burn expired reset token", "token_id", token.ID, "error", err)
		}
		return nil, apperror.ErrResetTokenExpired
	}

	hash, err := hashPassword(s.hasher, req.NewPassword)
	if err != nil {
		return nil, err
	}

	err = s.store.RedeemPasswordReset(ctx, token.ID, token.Email, hash, now)
	switch {
	case errors.Is(err, repository.ErrResetTokenConsumed):
		return nil, apperror.ErrResetTokenUsed
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperror.ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to redeem reset token: %w", err)
	}

	s.logger.Info(ctx, "password reset", "token_id", token.ID)
	return &models.MessageResponse{Message: resetPasswordMessage}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.MeResponse, error) {
	if userID == "" {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &models.MeResponse{User: models.NewUserResponse(user)}, nil
}
