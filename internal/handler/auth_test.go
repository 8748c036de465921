package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"username": testUsername,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var cookieHeader string
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			cookieHeader = c.Value
			assert.True(t, c.HttpOnly, "cookie must be HttpOnly")
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.Equal(t, 7*24*60*60, c.MaxAge)
		}
	}
	require.Len(t, cookieHeader, 64)

	resp := decode(t, w)
	user := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, testUsername, user["username"])
	assert.NotContains(t, user, "password_hash")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []gin.H{
		{"username": "nobody", "password": testPassword},
		{"username": testUsername, "password": "wrong"},
	} {
		w := env.do(t, http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password", decode(t, w).Message)
		assert.Empty(t, sessionCookie(t, w))
	}

	w := env.do(t, http.MethodPost, "/api/auth/login", gin.H{"username": testUsername}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionProbe(t *testing.T) {
	env := newTestEnv(t)

	// no cookie -> user: null, not an error
	w := env.do(t, http.MethodGet, "/api/auth/session", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w).Data["user"])

	token := env.login(t)
	w = env.do(t, http.MethodGet, "/api/auth/session", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w).Data["user"].(map[string]interface{})
	assert.Equal(t, testUsername, user["username"])

	// garbage token behaves like no session
	w = env.do(t, http.MethodGet, "/api/auth/session", nil, "not-a-real-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w).Data["user"])
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	// cookie cleared
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
		}
	}

	// token is dead server-side
	w = env.do(t, http.MethodGet, "/api/transactions", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logging out again is fine
	w = env.do(t, http.MethodPost, "/api/auth/logout", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/transactions", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized - Please log in", decode(t, w).Message)
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestSecondLoginInvalidatesFirst(t *testing.T) {
	env := newTestEnv(t)

	first := env.login(t)
	second := env.login(t)
	require.NotEqual(t, first, second)

	w := env.do(t, http.MethodGet, "/api/transactions", nil, first)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/transactions", nil, second)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePasswordOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/auth/change-password", gin.H{
		"currentPassword": "wrong",
		"newPassword":     "new-pass-1",
		"confirmPassword": "new-pass-1",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Current password is incorrect", decode(t, w).Message)

	w = env.do(t, http.MethodPost, "/api/auth/change-password", gin.H{
		"currentPassword": testPassword,
		"newPassword":     "new-pass-1",
		"confirmPassword": "new-pass-1",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	// the changing session stays alive
	w = env.do(t, http.MethodGet, "/api/transactions", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// only the new password logs in now
	w = env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"username": testUsername,
		"password": testPassword,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"username": testUsername,
		"password": "new-pass-1",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateProfileOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPut, "/api/auth/profile", gin.H{
		"username":    "jane.renamed",
		"email":       "jane.renamed@example.com",
		"firstName":   "Jane",
		"lastName":    "Renamed",
		"phoneNumber": "0987654321",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	user := decode(t, w).Data["user"].(map[string]interface{})
	assert.Equal(t, "jane.renamed", user["username"])
	assert.Equal(t, "Renamed", user["lastName"])

	// missing field
	w = env.do(t, http.MethodPut, "/api/auth/profile", gin.H{
		"username": "jane.renamed",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decode(t, w).Message)

	// bad email
	w = env.do(t, http.MethodPut, "/api/auth/profile", gin.H{
		"username":    "jane.renamed",
		"email":       "nope",
		"firstName":   "Jane",
		"lastName":    "Renamed",
		"phoneNumber": "0987654321",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email format", decode(t, w).Message)
}
