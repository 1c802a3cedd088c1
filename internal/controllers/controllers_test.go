package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"focototal-be/internal/entities"
	"focototal-be/internal/middleware"
	"focototal-be/internal/validation"
)

const (
	userID    = "0b8f7a1e-3c2d-4e5f-8a9b-1c2d3e4f5a6b"
	projectID = "7d3c2b1a-0f9e-4d8c-b7a6-5e4d3c2b1a0f"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Install()
}

// as stands in for AuthMiddleware.
func as(id string, role entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func serve(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}
