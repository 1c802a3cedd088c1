package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"focototal-be/internal/database"
	"focototal-be/internal/jwt"
	"focototal-be/internal/repository"
	"focototal-be/internal/repository/gormrepo"
	"focototal-be/internal/security"
)

var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) repository.Store {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	s := gormrepo.NewStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newHasher(t *testing.T) security.Hasher {
	t.Helper()
	h, err := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func newTokens() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", 240*time.Hour)
}

func fixed(t time.Time) clock {
	return func() time.Time { return t }
}
