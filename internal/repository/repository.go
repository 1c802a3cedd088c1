// Package repository declares the persistence contracts used by services and
// implements them on PostgreSQL with raw SQL.
package repository

import (
	"context"
	"errors"
	"time"

	"focototal-be/internal/entities"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrResetTokenConsumed means the conditional used=false -> true update
	// matched no row: the token was redeemed concurrently or has expired.
	ErrResetTokenConsumed = errors.New("password reset token already consumed")
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

type PasswordResetRepository interface {
	Create(ctx context.Context, token *entities.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*entities.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
	InvalidateForEmail(ctx context.Context, email string) (int64, error)
	PurgeStale(ctx context.Context, now time.Time) (int64, error)
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type ProjectFilter struct {
	UserID    string
	Search    string // case-insensitive substring of name
	SortBy    string // name | createdAt | updatedAt
	SortOrder SortOrder
	Limit     int
	Offset    int
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	// FindByID only returns projects owned by userID.
	FindByID(ctx context.Context, userID, id string) (*entities.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*entities.Project, int, error)
	Update(ctx context.Context, project *entities.Project) error
	Delete(ctx context.Context, userID, id string) error
}

type TaskFilter struct {
	UserID    string
	Search    string // case-insensitive substring of title
	Completed *bool
	Priority  entities.Priority
	ProjectID string
	SortBy    string // title | createdAt | updatedAt | dueDate | priority
	SortOrder SortOrder
	Limit     int
	Offset    int
}

type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	FindByID(ctx context.Context, userID, id string) (*entities.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, int, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, userID, id string) error
}

type PhraseFilter struct {
	UserID string // empty lists every owner
	Author string // case-insensitive substring
	Tag    string // exact element of tags
	Search string // substring of phrase or author
	Limit  int    // 0 means no limit
	Offset int
}

type PhraseRepository interface {
	Create(ctx context.Context, phrase *entities.Phrase) error
	FindByID(ctx context.Context, userID, id string) (*entities.Phrase, error)
	List(ctx context.Context, filter PhraseFilter) ([]*entities.Phrase, int, error)
	Update(ctx context.Context, phrase *entities.Phrase) error
	Delete(ctx context.Context, userID, id string) error
	DistinctAuthors(ctx context.Context, userID string) ([]string, error)
	DistinctTags(ctx context.Context, userID string) ([]string, error)
}

// Store groups the repositories and the operations that must span several
// of them atomically.
type Store interface {
	Users() UserRepository
	PasswordResets() PasswordResetRepository
	Projects() ProjectRepository
	Tasks() TaskRepository
	Phrases() PhraseRepository

	// IssuePasswordReset marks every unused token of the email as used,
	// purges used or expired rows, then inserts token.
	IssuePasswordReset(ctx context.Context, token *entities.PasswordResetToken) error

	// RedeemPasswordReset flips the token from unused to used only if it is
	// still unused and unexpired at now, and in the same transaction stores
	// passwordHash for the user owning the token's email. A token can be
	// redeemed at most once: losers get ErrResetTokenConsumed.
	RedeemPasswordReset(ctx context.Context, tokenID, email, passwordHash string, now time.Time) error

	Ping(ctx context.Context) error
	Close() error
}
