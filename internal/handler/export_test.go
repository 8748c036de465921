package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/transactions", gin.H{
		"date": "2026-08-01", "time": "09:00", "description": "Salary",
		"amount": 3000.0, "category": "income", "sub_category": "card",
		"card_choice": "Present", "income_source": "salary",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/export/csv", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Date")
	assert.Contains(t, lines[1], "Salary")
	assert.Contains(t, lines[1], "3000.00")
	assert.Contains(t, lines[1], "card - Present")
}

func TestExportXLSX(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodGet, "/api/export/xlsx", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	// xlsx files are zip archives
	assert.Equal(t, "PK", w.Body.String()[:2])
}
