// Package apperror defines the closed set of domain error kinds the API can
// report and how each kind maps onto an HTTP status code.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error. The set is closed: controllers switch on it
// to pick a status code instead of matching message strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a client-safe domain error. Message is what the client sees; Err,
// when set, carries the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same kind and code, so
// wrapped copies still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int { return e.Kind.Status() }

// New creates a sentinel error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap returns a copy of sentinel carrying cause.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, Err: cause}
}

// From extracts an *Error from err. Anything else becomes ErrInternal with the
// original error attached as the cause.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternal, err)
}

var (
	ErrInternal   = New(KindInternal, "INTERNAL_ERROR", "Internal server error")
	ErrValidation = New(KindValidation, "VALIDATION_ERROR", "Invalid request data")
	ErrForbidden  = New(KindForbidden, "FORBIDDEN", "You are not allowed to perform this action")

	ErrInvalidCredentials   = New(KindUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	ErrTokenGeneration      = New(KindInternal, "TOKEN_GENERATION_ERROR", "Could not generate token")
	ErrMissingToken         = New(KindUnauthorized, "MISSING_TOKEN", "Access token not provided")
	ErrInvalidToken         = New(KindUnauthorized, "INVALID_TOKEN", "Invalid token")
	ErrTokenExpired         = New(KindUnauthorized, "TOKEN_EXPIRED", "Token expired")
	ErrEmailAlreadyExists   = New(KindConflict, "EMAIL_ALREADY_EXISTS", "This email is already in use")
	ErrUsernameAlreadyTaken = New(KindConflict, "USERNAME_ALREADY_EXISTS", "This username is already in use")
	ErrUserNotFound         = New(KindNotFound, "USER_NOT_FOUND", "User not found")
	ErrPasswordTooLong      = New(KindValidation, "PASSWORD_TOO_LONG", "Password must be at most 72 bytes")

	ErrResetTokenInvalid = New(KindValidation, "INVALID_TOKEN", "Invalid token")
	ErrResetTokenUsed    = New(KindValidation, "TOKEN_ALREADY_USED", "This token has already been used. Please request a new recovery token.")
	ErrResetTokenExpired = New(KindValidation, "TOKEN_EXPIRED", "This token has expired. Please request a new recovery token.")

	ErrProjectNotFound = New(KindNotFound, "PROJECT_NOT_FOUND", "Project not found")
	ErrTaskNotFound    = New(KindNotFound, "TASK_NOT_FOUND", "Task not found")
	ErrPhraseNotFound  = New(KindNotFound, "PHRASE_NOT_FOUND", "Phrase not found")

	ErrTooManyLoginAttempts      = New(KindRateLimited, "TOO_MANY_LOGIN_ATTEMPTS", "Too many login attempts. Please try again later.")
	ErrTooManyLoginAttemptsEmail = New(KindRateLimited, "TOO_MANY_LOGIN_ATTEMPTS_EMAIL", "Too many login attempts for this email. Please try again later.")
	ErrRateLimited               = New(KindRateLimited, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded. Please try again later.")
)
