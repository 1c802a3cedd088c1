package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"focototal-be/internal/apperror"
	"focototal-be/internal/entities"
	"focototal-be/internal/jwt"
	"focototal-be/internal/response"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	ParseToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware requires "Authorization: Bearer <token>" and stores the
// token's identity on the context.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Error(c, apperror.ErrMissingToken)
			return
		}

		claims, err := tokens.ParseToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, apperror.ErrTokenExpired)
				return
			}
			response.Error(c, apperror.ErrInvalidToken)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole lets through only identities holding one of roles. It must run
// after AuthMiddleware.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, apperror.ErrForbidden)
	}
}

// CurrentUserID returns the authenticated user's id, or "" on public routes.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func CurrentRole(c *gin.Context) entities.Role {
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(entities.Role); ok {
			return role
		}
	}
	return ""
}
