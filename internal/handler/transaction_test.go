package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	// create an expense; usage category is derived, amount rounded
	w := env.do(t, http.MethodPost, "/api/transactions", gin.H{
		"date":          "2026-08-01",
		"time":          "12:30",
		"description":   "Lunch",
		"amount":        15.456,
		"category":      "expense",
		"sub_category":  "e-wallet",
		"expense_usage": "food",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	created := decode(t, w).Data["transaction"].(map[string]interface{})
	assert.Equal(t, 15.46, created["amount"])
	assert.Equal(t, "Living", created["usage_category"])
	id := created["id"].(float64)
	require.Positive(t, id)

	// list contains it
	w = env.do(t, http.MethodGet, "/api/transactions", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w).Data["transactions"].([]interface{})
	require.Len(t, items, 1)

	// update flips it to income and clears expense fields
	w = env.do(t, http.MethodPut, "/api/transactions/1", gin.H{
		"date":          "2026-08-01",
		"time":          "12:30",
		"description":   "Salary",
		"amount":        2500.0,
		"category":      "income",
		"sub_category":  "card",
		"card_choice":   "Present",
		"income_source": "salary",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w).Data["transaction"].(map[string]interface{})
	assert.Equal(t, "income", updated["category"])
	assert.Equal(t, "", updated["usage_category"])

	// delete
	w = env.do(t, http.MethodDelete, "/api/transactions/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/transactions", nil, token)
	items = decode(t, w).Data["transactions"].([]interface{})
	assert.Empty(t, items)
}

func TestTransactionValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"bad date", gin.H{
			"date": "01-08-2026", "time": "12:30", "description": "x",
			"amount": 10.0, "category": "expense", "sub_category": "cash",
			"expense_usage": "food",
		}},
		{"bad time", gin.H{
			"date": "2026-08-01", "time": "25:99", "description": "x",
			"amount": 10.0, "category": "expense", "sub_category": "cash",
			"expense_usage": "food",
		}},
		{"negative amount", gin.H{
			"date": "2026-08-01", "time": "12:30", "description": "x",
			"amount": -5.0, "category": "expense", "sub_category": "cash",
			"expense_usage": "food",
		}},
		{"bad category", gin.H{
			"date": "2026-08-01", "time": "12:30", "description": "x",
			"amount": 10.0, "category": "transfer", "sub_category": "cash",
		}},
		{"income without source", gin.H{
			"date": "2026-08-01", "time": "12:30", "description": "x",
			"amount": 10.0, "category": "income", "sub_category": "cash",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/transactions", tc.body, token)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTransactionUpdateMissing(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPut, "/api/transactions/999", gin.H{
		"date": "2026-08-01", "time": "12:30", "description": "x",
		"amount": 10.0, "category": "expense", "sub_category": "cash",
		"expense_usage": "food",
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
