package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitmentCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/commitments", gin.H{
		"name":        "Rent",
		"per_month":   850.0,
		"start_month": 1,
		"start_year":  2026,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w).Data["commitment"].(map[string]interface{})
	assert.Equal(t, "Active", created["status"])
	assert.Equal(t, 10200.0, created["per_year"], "per_year is derived from per_month")

	// status filter
	w = env.do(t, http.MethodPut, "/api/commitments/1", gin.H{
		"name":      "Rent",
		"per_month": 850.0,
		"status":    "Inactive",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/commitments?status=Active", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Data["commitments"])

	w = env.do(t, http.MethodGet, "/api/commitments?status=Inactive", nil, token)
	items := decode(t, w).Data["commitments"].([]interface{})
	require.Len(t, items, 1)

	w = env.do(t, http.MethodDelete, "/api/commitments/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentUpsertIsIdempotentPerPeriod(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/commitments", gin.H{
		"name":      "Internet",
		"per_month": 120.0,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	mark := gin.H{
		"commitment_id": 1,
		"month":         8,
		"year":          2026,
		"status":        "paid",
	}
	w = env.do(t, http.MethodPost, "/api/commitment-payments", mark, token)
	require.Equal(t, http.StatusOK, w.Code)

	// same period again with a new status updates in place
	mark["status"] = "unpaid"
	w = env.do(t, http.MethodPost, "/api/commitment-payments", mark, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/commitment-payments?month=8&year=2026", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w).Data["payments"].([]interface{})
	require.Len(t, items, 1, "one row per commitment per period")
	row := items[0].(map[string]interface{})
	assert.Equal(t, "unpaid", row["status"])
	assert.Equal(t, "Internet", row["commitment_name"])

	// a different month is a separate row
	w = env.do(t, http.MethodPost, "/api/commitment-payments", gin.H{
		"commitment_id": 1,
		"month":         9,
		"year":          2026,
		"status":        "paid",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/commitment-payments?commitment_id=1", nil, token)
	items = decode(t, w).Data["payments"].([]interface{})
	assert.Len(t, items, 2)
}

func TestPaymentValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	for _, body := range []gin.H{
		{"commitment_id": 1, "month": 13, "year": 2026, "status": "paid"},
		{"commitment_id": 1, "month": 8, "year": 2026, "status": "maybe"},
		{"month": 8, "year": 2026, "status": "paid"},
	} {
		w := env.do(t, http.MethodPost, "/api/commitment-payments", body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/commitment-payments?month=0", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletingCommitmentCascadesPayments(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	w := env.do(t, http.MethodPost, "/api/commitments", gin.H{
		"name":      "Gym",
		"per_month": 90.0,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/commitment-payments", gin.H{
		"commitment_id": 1,
		"month":         8,
		"year":          2026,
		"status":        "paid",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/commitments/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/commitment-payments", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Data["payments"])
}
