package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"focototal-be/internal/apperror"
	"focototal-be/internal/logging"
	"focototal-be/internal/models"
	"focototal-be/internal/ratelimit"
	"focototal-be/internal/response"
)

type LoginLimitConfig struct {
	IPWindow    time.Duration
	MaxPerIP    int
	EmailWindow time.Duration
	MaxPerEmail int
}

// LoginLimiter throttles login attempts per client IP and per email on a
// shared sliding-window store. Every attempt counts, successful or not; a
// successful login clears the email's counter. When the store is unreachable
// requests are let through and the failure is logged.
type LoginLimiter struct {
	store  ratelimit.Store
	logger logging.Logger
	cfg    LoginLimitConfig
	now    func() time.Time
}

func NewLoginLimiter(store ratelimit.Store, logger logging.Logger, cfg LoginLimitConfig) *LoginLimiter {
	return &LoginLimiter{store: store, logger: logger, cfg: cfg, now: time.Now}
}

// ByIP must run before the body is validated so malformed attempts count too.
func (l *LoginLimiter) ByIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "login:ip:" + c.ClientIP()
		if !l.allow(c, key, l.cfg.MaxPerIP, l.cfg.IPWindow, apperror.ErrTooManyLoginAttempts) {
			return
		}
		c.Next()
	}
}

// ByEmail must run after ValidateJSON[models.LoginRequest].
func (l *LoginLimiter) ByEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := Body[models.LoginRequest](c)
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			c.Next()
			return
		}

		key := "login:email:" + email
		if !l.allow(c, key, l.cfg.MaxPerEmail, l.cfg.EmailWindow, apperror.ErrTooManyLoginAttemptsEmail) {
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			if err := l.store.Reset(c.Request.Context(), key); err != nil {
				l.logger.Warn(c.Request.Context(), "reset login attempts failed", "error", err)
			}
		}
	}
}

func (l *LoginLimiter) allow(c *gin.Context, key string, limit int, window time.Duration, denied *apperror.Error) bool {
	ctx := c.Request.Context()
	d, err := l.store.Allow(ctx, key, limit, window, l.now())
	if err != nil {
		l.logger.Error(ctx, "login rate limit store unavailable", "error", err)
		return true
	}
	if !d.Allowed {
		l.logger.Warn(ctx, "login attempts throttled", "code", denied.Code, "client_ip", c.ClientIP())
		response.TooManyRequests(c, denied, d.RetryAfter)
		return false
	}
	return true
}
