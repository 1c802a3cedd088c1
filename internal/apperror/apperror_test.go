package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.kind.Status())
	}
}

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")
	err := fmt.Errorf("create project: %w", Wrap(ErrProjectNotFound, cause))

	require.ErrorIs(t, err, ErrProjectNotFound)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTaskNotFound)
}

func TestSameCodeDifferentKindDoesNotMatch(t *testing.T) {
	t.Parallel()

	assert.NotErrorIs(t, ErrResetTokenInvalid, ErrInvalidToken)
}

func TestFrom(t *testing.T) {
	t.Parallel()

	got := From(fmt.Errorf("wrapped: %w", ErrEmailAlreadyExists))
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", got.Code)
	assert.Equal(t, http.StatusConflict, got.Status())

	raw := errors.New("boom")
	got = From(raw)
	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status())
	assert.ErrorIs(t, got, raw)
}
