package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"focototal-be/internal/database"
	"focototal-be/internal/entities"
)

type postgresStore struct {
	db *sql.DB

	users    UserRepository
	resets   PasswordResetRepository
	projects ProjectRepository
	tasks    TaskRepository
	phrases  PhraseRepository
}

// NewPostgresStore wires every repository onto one connection pool.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{
		db:       db,
		users:    NewUserRepository(db),
		resets:   NewPasswordResetRepository(db),
		projects: NewProjectRepository(db),
		tasks:    NewTaskRepository(db),
		phrases:  NewPhraseRepository(db),
	}
}

func (s *postgresStore) Users() UserRepository                   { return s.users }
func (s *postgresStore) PasswordResets() PasswordResetRepository { return s.resets }
func (s *postgresStore) Projects() ProjectRepository             { return s.projects }
func (s *postgresStore) Tasks() TaskRepository                   { return s.tasks }
func (s *postgresStore) Phrases() PhraseRepository               { return s.phrases }

func (s *postgresStore) IssuePasswordReset(ctx context.Context, token *entities.PasswordResetToken) error {
	return database.WithTx(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		resets := NewPasswordResetRepository(tx)
		if _, err := resets.InvalidateForEmail(ctx, token.Email); err != nil {
			return err
		}
		if _, err := resets.PurgeStale(ctx, token.CreatedAt); err != nil {
			return err
		}
		return resets.Create(ctx, token)
	})
}

func (s *postgresStore) RedeemPasswordReset(ctx context.Context, tokenID, email, passwordHash string, now time.Time) error {
	return database.WithTx(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE password_resets SET used = TRUE WHERE id = $1 AND used = FALSE AND expires_at > $2`,
			tokenID, now.UTC())
		if err != nil {
			return fmt.Errorf("failed to consume password reset: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to consume password reset: %w", err)
		}
		if n == 0 {
			return ErrResetTokenConsumed
		}

		res, err = tx.ExecContext(ctx,
			`UPDATE users SET password_hash = $1, updated_by = id::text, updated_at = $2 WHERE email = $3`,
			passwordHash, now.UTC(), email)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return requireAffected(res, "update password")
	})
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}
