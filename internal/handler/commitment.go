package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// CommitmentHandler covers recurring commitments and their monthly
// paid/unpaid marks.
type CommitmentHandler struct {
	Commitments store.CommitmentStore
	Payments    store.PaymentStore
}

func NewCommitmentHandler(commitments store.CommitmentStore, payments store.PaymentStore) *CommitmentHandler {
	return &CommitmentHandler{Commitments: commitments, Payments: payments}
}

type commitmentReq struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Description string  `json:"description" binding:"max=255"`
	PerMonth    float64 `json:"per_month" binding:"required"`
	Notes       string  `json:"notes"`
	Status      string  `json:"status" binding:"omitempty,oneof=Active Inactive"`
	StartMonth  int     `json:"start_month" binding:"omitempty,min=1,max=12"`
	StartYear   int     `json:"start_year"`
}

func (r *commitmentReq) toModel() (*models.Commitment, string) {
	if err := util.ValidateAmount(r.PerMonth); err != nil {
		return nil, err.Error()
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, "Name is required"
	}
	status := r.Status
	if status == "" {
		status = "Active"
	}
	perMonth := util.Round2(r.PerMonth)
	return &models.Commitment{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		PerMonth:    perMonth,
		PerYear:     util.Round2(perMonth * 12),
		Notes:       r.Notes,
		Status:      status,
		StartMonth:  r.StartMonth,
		StartYear:   r.StartYear,
	}, ""
}

// List returns commitments, optionally filtered by ?status=Active.
func (h *CommitmentHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "Active" && status != "Inactive" {
		status = ""
	}

	items, err := h.Commitments.List(c.Request.Context(), status)
	if err != nil {
		storeErr(c, err, "Failed to load commitments")
		return
	}
	util.Success(c, util.Response{"commitments": items})
}

func (h *CommitmentHandler) Create(c *gin.Context) {
	var req commitmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	m, msg := req.toModel()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	if err := h.Commitments.Create(c.Request.Context(), m); err != nil {
		storeErr(c, err, "Failed to save commitment")
		return
	}
	util.Success(c, util.Response{"commitment": m})
}

func (h *CommitmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req commitmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	m, msg := req.toModel()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}
	m.ID = id

	if err := h.Commitments.Update(c.Request.Context(), m); err != nil {
		storeErr(c, err, "Failed to save commitment")
		return
	}
	util.Success(c, util.Response{"commitment": m})
}

// Delete removes a commitment; its payment marks go with it through
// the cascade.
func (h *CommitmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Commitments.Delete(c.Request.Context(), id); err != nil {
		storeErr(c, err, "Failed to delete commitment")
		return
	}
	util.Success(c, util.Response{"message": "Commitment deleted"})
}

// ---------- monthly payment marks ----------

// ListPayments filters marks by ?month=, ?year= and ?commitment_id=.
func (h *CommitmentHandler) ListPayments(c *gin.Context) {
	var f store.PaymentFilter
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid month")
			return
		}
		f.Month = m
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid year")
			return
		}
		f.Year = y
	}
	if v := c.Query("commitment_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid commitment ID")
			return
		}
		f.CommitmentID = uint(id)
	}

	items, err := h.Payments.List(c.Request.Context(), f)
	if err != nil {
		storeErr(c, err, "Failed to load payments")
		return
	}
	util.Success(c, util.Response{"payments": items})
}

type paymentReq struct {
	CommitmentID uint   `json:"commitment_id" binding:"required"`
	Month        int    `json:"month" binding:"required,min=1,max=12"`
	Year         int    `json:"year" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=paid unpaid"`
}

// UpsertPayment marks a commitment paid or unpaid for one month. The
// write is a single conditional insert-or-update keyed on the
// (commitment, month, year) triple.
func (h *CommitmentHandler) UpsertPayment(c *gin.Context) {
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	p := &models.CommitmentPayment{
		CommitmentID: req.CommitmentID,
		Month:        req.Month,
		Year:         req.Year,
		Status:       req.Status,
	}
	if err := h.Payments.Upsert(c.Request.Context(), p); err != nil {
		storeErr(c, err, "Failed to save payment")
		return
	}
	util.Success(c, util.Response{"payment": p})
}

func (h *CommitmentHandler) DeletePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Payments.Delete(c.Request.Context(), id); err != nil {
		storeErr(c, err, "Failed to delete payment")
		return
	}
	util.Success(c, util.Response{"message": "Payment deleted"})
}
