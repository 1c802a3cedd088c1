package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"focototal-be/internal/database"
	"focototal-be/internal/jwt"
	"focototal-be/internal/logging"
	"focototal-be/internal/mailer"
	"focototal-be/internal/middleware"
	"focototal-be/internal/ratelimit"
	"focototal-be/internal/repository/gormrepo"
	"focototal-be/internal/security"
	"focototal-be/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// outbox keeps every message the app tried to send.
type outbox struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (o *outbox) Send(_ context.Context, msg mailer.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

var resetTokenRe = regexp.MustCompile(`token=([0-9a-f]{64})`)

func (o *outbox) lastResetToken(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.sent) - 1; i >= 0; i-- {
		if m := resetTokenRe.FindStringSubmatch(o.sent[i].HTML); m != nil {
			return m[1]
		}
	}
	t.Fatal("no reset link was mailed")
	return ""
}

type app struct {
	engine *gin.Engine
	mail   *outbox
}

func newApp(t *testing.T) *app {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	store := gormrepo.NewStore(db)
	t.Cleanup(func() { _ = store.Close() })

	hasher, err := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens := jwt.NewJWTService("router-test-secret", time.Hour)
	logger := logging.Nop()
	box := &outbox{}
	mail := mailer.New(box, mailer.Options{FrontendURL: "http://app.test", ResetTTL: time.Hour})

	engine := New(Deps{
		Logger:   logger,
		Tokens:   tokens,
		DB:       store,
		Auth:     service.NewAuthService(store, tokens, hasher, mail, logger, time.Hour),
		Users:    service.NewUserService(store.Users(), hasher, mail, logger),
		Projects: service.NewProjectService(store.Projects()),
		Tasks:    service.NewTaskService(store.Tasks(), store.Projects()),
		Phrases:  service.NewPhraseService(store.Phrases(), nil, logger),
		LoginLimiter: middleware.NewLoginLimiter(ratelimit.NewMemoryStore(), logger, middleware.LoginLimitConfig{
			IPWindow:    15 * time.Minute,
			MaxPerIP:    100,
			EmailWindow: time.Hour,
			MaxPerEmail: 3,
		}),
		CORSOrigins: []string{"*"},
	})
	return &app{engine: engine, mail: box}
}

func (a *app) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

// signUp registers a user and returns a bearer token for them.
func (a *app) signUp(t *testing.T, name, email, role string) string {
	t.Helper()
	body := map[string]any{"nome": name, "email": email, "senha": "secret123"}
	if role != "" {
		body["role"] = role
	}
	w, _ := a.do(t, http.MethodPost, "/api/auth/registro", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, res := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "senha": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return res["token"].(string)
}

func TestRouter_RootAndHealth(t *testing.T) {
	a := newApp(t)

	w, body := a.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "running", body["status"])

	w, body = a.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	a := newApp(t)
	token := a.signUp(t, "Ana Souza", "ana@example.com", "")

	w, body := a.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, "FREE", user["role"])
	assert.NotContains(t, w.Body.String(), "secret123")

	w, body = a.do(t, http.MethodPost, "/api/auth/registro", "", map[string]any{
		"nome": "Ana Two", "email": "ANA@example.com", "senha": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", body["code"])

	w, body = a.do(t, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MISSING_TOKEN", body["code"])

	w, body = a.do(t, http.MethodGet, "/api/projects", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestRouter_LongPasswordIsAClientError(t *testing.T) {
	a := newApp(t)

	w, body := a.do(t, http.MethodPost, "/api/auth/registro", "", map[string]any{
		"nome": "Alice", "email": "a@x.com", "senha": strings.Repeat("a", 80),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	detail := body["details"].([]any)[0].(map[string]any)
	assert.Equal(t, "senha", detail["field"])
}

func TestRouter_PageFarBeyondLastIsEmpty(t *testing.T) {
	a := newApp(t)
	ana := a.signUp(t, "Ana Souza", "ana@example.com", "")

	w, _ := a.do(t, http.MethodPost, "/api/projects", ana, map[string]any{"name": "Home"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := a.do(t, http.MethodGet, "/api/projects?page=92233720368547760&limit=100", ana, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, body["projects"])
	assert.Equal(t, false, body["pagination"].(map[string]any)["hasNextPage"])
}

func TestRouter_ProjectsAndTasks(t *testing.T) {
	a := newApp(t)
	ana := a.signUp(t, "Ana Souza", "ana@example.com", "")
	bob := a.signUp(t, "Bob Lima", "bob@example.com", "")

	w, body := a.do(t, http.MethodPost, "/api/projects", ana, map[string]any{"name": "Home", "color": "#12AB9F"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := body["project"].(map[string]any)["id"].(string)

	w, body = a.do(t, http.MethodPost, "/api/tasks", ana, map[string]any{
		"title": "Buy milk", "projectId": projectID, "dueDate": "2026-06-01T10:00:00Z", "priority": "HIGH",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	taskID := body["task"].(map[string]any)["id"].(string)

	w, body = a.do(t, http.MethodGet, "/api/tasks?projectId="+projectID+"&completed=false", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["pagination"].(map[string]any)["total"])

	w, body = a.do(t, http.MethodGet, "/api/projects/"+projectID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PROJECT_NOT_FOUND", body["code"])

	w, body = a.do(t, http.MethodPost, "/api/tasks", bob, map[string]any{"title": "Sneaky", "projectId": projectID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PROJECT_NOT_FOUND", body["code"])

	w, body = a.do(t, http.MethodGet, "/api/tasks/not-a-uuid", ana, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	w, _ = a.do(t, http.MethodPut, "/api/tasks/"+taskID, ana, map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = a.do(t, http.MethodGet, "/api/tasks?completed=false", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["pagination"].(map[string]any)["total"])

	w, _ = a.do(t, http.MethodDelete, "/api/projects/"+projectID, ana, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = a.do(t, http.MethodGet, "/api/tasks/"+taskID, ana, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TASK_NOT_FOUND", body["code"])
}

func TestRouter_PasswordReset(t *testing.T) {
	a := newApp(t)
	a.signUp(t, "Ana Souza", "ana@example.com", "")

	w, forgot := a.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{"email": "ana@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	token := a.mail.lastResetToken(t)

	w, unknown := a.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{"email": "nobody@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, forgot["message"], unknown["message"])

	w, _ = a.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{"token": token, "novaSenha": "brandnew1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body := a.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]any{"token": token, "novaSenha": "again123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "TOKEN_ALREADY_USED", body["code"])

	w, _ = a.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "senha": "brandnew1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_LoginThrottledPerEmail(t *testing.T) {
	a := newApp(t)
	a.signUp(t, "Ana Souza", "ana@example.com", "")

	bad := map[string]any{"email": "ana@example.com", "senha": "wrongpass"}
	for i := 0; i < 3; i++ {
		w, body := a.do(t, http.MethodPost, "/api/auth/login", "", bad)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "INVALID_CREDENTIALS", body["code"])
	}

	w, body := a.do(t, http.MethodPost, "/api/auth/login", "", bad)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TOO_MANY_LOGIN_ATTEMPTS_EMAIL", body["code"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRouter_UsersRequireAdmin(t *testing.T) {
	a := newApp(t)
	free := a.signUp(t, "Ana Souza", "ana@example.com", "")
	admin := a.signUp(t, "Root Admin", "root@example.com", "ADMIN")

	newUser := map[string]any{"nome": "Carla Dias", "email": "carla@example.com"}

	w, body := a.do(t, http.MethodPost, "/api/users", free, newUser)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", body["code"])

	w, body = a.do(t, http.MethodPost, "/api/users", admin, newUser)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "carla@example.com", body["user"].(map[string]any)["email"])
}

func TestRouter_Phrases(t *testing.T) {
	a := newApp(t)
	ana := a.signUp(t, "Ana Souza", "ana@example.com", "")

	w, _ := a.do(t, http.MethodPost, "/api/phrases", ana, map[string]any{
		"phrase": "Simplicity is prerequisite for reliability.", "author": "Dijkstra", "tags": []string{"software"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = a.do(t, http.MethodGet, "/api/phrases/filters/authors", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Dijkstra"]`, w.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	a := newApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
