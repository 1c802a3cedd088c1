package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"focototal-be/internal/logging"
	"focototal-be/internal/models"
	"focototal-be/internal/ratelimit"
)

func TestRateLimiter_Bucket(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 2)
	r := gin.New()
	r.GET("/ping", rl.LimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", nil, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", nil, nil).Code)

	w := do(r, http.MethodGet, "/ping", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decode(t, w).Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	now := time.Now()
	rl.getVisitor("1.1.1.1", now.Add(-time.Hour))
	rl.getVisitor("2.2.2.2", now)

	rl.evict(now)

	assert.NotContains(t, rl.visitors, "1.1.1.1")
	assert.Contains(t, rl.visitors, "2.2.2.2")
}

func loginRouter(l *LoginLimiter, status *int) *gin.Engine {
	r := gin.New()
	r.POST("/login", l.ByIP(), ValidateJSON[models.LoginRequest](), l.ByEmail(), func(c *gin.Context) {
		c.Status(*status)
	})
	return r
}

func login(r http.Handler, email, ip string) int {
	return do(r, http.MethodPost, "/login",
		map[string]string{"email": email, "senha": "secret1"},
		http.Header{"X-Forwarded-For": {ip}},
	).Code
}

func TestLoginLimiter_PerEmail(t *testing.T) {
	l := NewLoginLimiter(ratelimit.NewMemoryStore(), logging.Nop(), LoginLimitConfig{
		IPWindow: 15 * time.Minute, MaxPerIP: 100,
		EmailWindow: time.Hour, MaxPerEmail: 3,
	})
	status := http.StatusUnauthorized
	r := loginRouter(l, &status)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, login(r, "A@x.com", "10.0.0.1"))
	}

	w := do(r, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "senha": "secret1"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decode(t, w)
	assert.Equal(t, "TOO_MANY_LOGIN_ATTEMPTS_EMAIL", body.Code)
	assert.Equal(t, "60 minutes", body.RetryAfter)

	assert.Equal(t, http.StatusUnauthorized, login(r, "b@x.com", "10.0.0.1"), "other emails are unaffected")
}

func TestLoginLimiter_SuccessResetsEmail(t *testing.T) {
	l := NewLoginLimiter(ratelimit.NewMemoryStore(), logging.Nop(), LoginLimitConfig{
		IPWindow: 15 * time.Minute, MaxPerIP: 100,
		EmailWindow: time.Hour, MaxPerEmail: 2,
	})
	status := http.StatusUnauthorized
	r := loginRouter(l, &status)

	assert.Equal(t, http.StatusUnauthorized, login(r, "a@x.com", "10.0.0.1"))
	status = http.StatusOK
	assert.Equal(t, http.StatusOK, login(r, "a@x.com", "10.0.0.1"))

	status = http.StatusUnauthorized
	assert.Equal(t, http.StatusUnauthorized, login(r, "a@x.com", "10.0.0.1"))
	assert.Equal(t, http.StatusUnauthorized, login(r, "a@x.com", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, login(r, "a@x.com", "10.0.0.1"))
}

func TestLoginLimiter_PerIPCountsInvalidBodies(t *testing.T) {
	l := NewLoginLimiter(ratelimit.NewMemoryStore(), logging.Nop(), LoginLimitConfig{
		IPWindow: 15 * time.Minute, MaxPerIP: 2,
		EmailWindow: time.Hour, MaxPerEmail: 100,
	})
	status := http.StatusOK
	r := loginRouter(l, &status)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/login", `{}`, nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/login", `{}`, nil).Code)

	w := do(r, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "senha": "secret1"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TOO_MANY_LOGIN_ATTEMPTS", decode(t, w).Code)
}

type brokenStore struct{}

func (brokenStore) Allow(context.Context, string, int, time.Duration, time.Time) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis: connection refused")
}

func (brokenStore) Reset(context.Context, string) error { return errors.New("redis: connection refused") }

func TestLoginLimiter_FailsOpen(t *testing.T) {
	l := NewLoginLimiter(brokenStore{}, logging.Nop(), LoginLimitConfig{MaxPerIP: 1, MaxPerEmail: 1})
	status := http.StatusOK
	r := loginRouter(l, &status)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, login(r, "a@x.com", "10.0.0.1"))
	}
}
