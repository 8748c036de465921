package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtCRUDAndFilters(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/debts", gin.H{
		"type":         "lend",
		"created_date": "2026-08-01",
		"due_date":     "2026-09-01",
		"person_name":  "Ali",
		"amount":       250.0,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w).Data["debt"].(map[string]interface{})
	assert.Equal(t, "pending", created["status"])

	w = env.do(t, http.MethodPost, "/api/debts", gin.H{
		"type":         "borrow",
		"created_date": "2026-08-10",
		"person_name":  "Siti",
		"amount":       100.0,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	// type filter
	w = env.do(t, http.MethodGet, "/api/debts?type=lend", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w).Data["debts"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Ali", items[0].(map[string]interface{})["person_name"])

	// settle one; settled date required
	w = env.do(t, http.MethodPut, "/api/debts/1", gin.H{
		"type":         "lend",
		"created_date": "2026-08-01",
		"person_name":  "Ali",
		"amount":       250.0,
		"status":       "settled",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/debts/1", gin.H{
		"type":         "lend",
		"created_date": "2026-08-01",
		"person_name":  "Ali",
		"amount":       250.0,
		"status":       "settled",
		"settled_date": "2026-08-20",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	// status filter
	w = env.do(t, http.MethodGet, "/api/debts?status=pending", nil, token)
	items = decode(t, w).Data["debts"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Siti", items[0].(map[string]interface{})["person_name"])

	// combined filter
	w = env.do(t, http.MethodGet, "/api/debts?status=settled&type=lend", nil, token)
	items = decode(t, w).Data["debts"].([]interface{})
	assert.Len(t, items, 1)

	w = env.do(t, http.MethodDelete, "/api/debts/2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDebtValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	for name, body := range map[string]gin.H{
		"bad type": {
			"type": "owe", "created_date": "2026-08-01",
			"person_name": "Ali", "amount": 10.0,
		},
		"bad created date": {
			"type": "lend", "created_date": "yesterday",
			"person_name": "Ali", "amount": 10.0,
		},
		"zero amount": {
			"type": "lend", "created_date": "2026-08-01",
			"person_name": "Ali", "amount": 0.0,
		},
		"blank person": {
			"type": "lend", "created_date": "2026-08-01",
			"person_name": "   ", "amount": 10.0,
		},
	} {
		t.Run(name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/debts", body, token)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
