package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/auth"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/config"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/database"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/middleware"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/router"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
)

const (
	testUsername = "jane.doe"
	testPassword = "secret-pass-1"
)

// testEnv is a full HTTP stack over a throwaway SQLite database.
type testEnv struct {
	engine *gin.Engine
	stores *store.Stores
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.sqlite")
	cfg.Auth.BcryptCost = 4
	cfg.Auth.SessionDays = 7
	cfg.Auth.SingleDevice = true
	cfg.Auth.RevokeOnPasswordChange = true
	cfg.Security.EncryptionKey = "test-encryption-key"
	cfg.Backup.Dir = filepath.Join(t.TempDir(), "backups")

	db, err := database.Init(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	hash, err := auth.HashPassword(testPassword, cfg.Auth.BcryptCost)
	require.NoError(t, err)
	user := models.User{
		Username:     testUsername,
		Email:        "jane@example.com",
		PasswordHash: hash,
		FirstName:    "Jane",
		LastName:     "Doe",
		PhoneNumber:  "0123456789",
		IsActive:     1,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, database.SeedAccounts(db))

	stores, err := store.Compose(store.Backends{}, db, nil)
	require.NoError(t, err)

	svc := auth.NewService(stores.Users, stores.Sessions, auth.Policy{
		BcryptCost:             cfg.Auth.BcryptCost,
		SessionTTL:             cfg.Auth.SessionTTL(),
		SingleDevice:           cfg.Auth.SingleDevice,
		RevokeOnPasswordChange: cfg.Auth.RevokeOnPasswordChange,
	})

	return &testEnv{
		engine: router.Setup(cfg, zap.NewNop(), db, stores, svc),
		stores: stores,
	}
}

// do runs one request; body may be nil, cookie may be empty.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// login authenticates the seeded user and returns the session token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"username": testUsername,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	token := sessionCookie(t, w)
	require.NotEmpty(t, token)
	return token
}

// sessionCookie pulls the session cookie value out of a response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Value
		}
	}
	return ""
}

// envelope is the unified response shape.
type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
