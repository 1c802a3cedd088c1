package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focototal-be/internal/entities"
	"focototal-be/internal/jwt"
)

func authRouter(tokens *jwt.JWTService) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "role": CurrentRole(c)})
	})
	r.GET("/admin", AuthMiddleware(tokens), RequireRole(entities.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": {"Bearer " + token}}
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewJWTService("secret", time.Hour)
	expired := jwt.NewJWTService("secret", -time.Minute)
	r := authRouter(tokens)

	user := &entities.User{ID: "u-1", Email: "a@x.com", Role: entities.RoleFree}
	valid, err := tokens.GenerateToken(user)
	require.NoError(t, err)
	stale, err := expired.GenerateToken(user)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header http.Header
		status int
		code   string
	}{
		{"no header", nil, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"wrong scheme", http.Header{"Authorization": {"Basic abc"}}, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"empty bearer", http.Header{"Authorization": {"Bearer "}}, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"garbage", bearer("abc.def.ghi"), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"expired", bearer(stale), http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"valid", bearer(valid), http.StatusOK, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/me", nil, tc.header)
			assert.Equal(t, tc.status, w.Code)
			if tc.code != "" {
				assert.Equal(t, tc.code, decode(t, w).Code)
			} else {
				assert.JSONEq(t, `{"id":"u-1","role":"FREE"}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tokens := jwt.NewJWTService("secret", time.Hour)
	r := authRouter(tokens)

	free, err := tokens.GenerateToken(&entities.User{ID: "u-1", Role: entities.RoleFree})
	require.NoError(t, err)
	admin, err := tokens.GenerateToken(&entities.User{ID: "u-2", Role: entities.RoleAdmin})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/admin", nil, bearer(free))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, w).Code)

	w = do(r, http.MethodGet, "/admin", nil, bearer(admin))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
