package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// DebtHandler covers informal person-to-person debts.
type DebtHandler struct {
	Store store.DebtStore
}

func NewDebtHandler(s store.DebtStore) *DebtHandler {
	return &DebtHandler{Store: s}
}

type debtReq struct {
	Type        string  `json:"type" binding:"required,oneof=borrow lend"`
	CreatedDate string  `json:"created_date" binding:"required"`
	DueDate     string  `json:"due_date"`
	PersonName  string  `json:"person_name" binding:"required,max=128"`
	Amount      float64 `json:"amount" binding:"required"`
	Notes       string  `json:"notes"`
	Status      string  `json:"status" binding:"omitempty,oneof=pending settled"`
	SettledDate string  `json:"settled_date"`
}

func (r *debtReq) toModel() (*models.Debt, string) {
	if err := util.ValidateDate(r.CreatedDate); err != nil {
		return nil, err.Error()
	}
	if r.DueDate != "" {
		if err := util.ValidateDate(r.DueDate); err != nil {
			return nil, err.Error()
		}
	}
	if err := util.ValidateAmount(r.Amount); err != nil {
		return nil, err.Error()
	}
	if strings.TrimSpace(r.PersonName) == "" {
		return nil, "Person name is required"
	}
	status := r.Status
	if status == "" {
		status = "pending"
	}
	if status == "settled" {
		if r.SettledDate == "" {
			return nil, "Settled date is required for settled debts"
		}
		if err := util.ValidateDate(r.SettledDate); err != nil {
			return nil, err.Error()
		}
	} else {
		r.SettledDate = ""
	}
	return &models.Debt{
		Type:        r.Type,
		CreatedDate: r.CreatedDate,
		DueDate:     r.DueDate,
		PersonName:  strings.TrimSpace(r.PersonName),
		Amount:      util.Round2(r.Amount),
		Notes:       r.Notes,
		Status:      status,
		SettledDate: r.SettledDate,
	}, ""
}

// List returns debts, filtered by ?status= and ?type=.
func (h *DebtHandler) List(c *gin.Context) {
	var f store.DebtFilter
	if v := c.Query("status"); v == "pending" || v == "settled" {
		f.Status = v
	}
	if v := c.Query("type"); v == "borrow" || v == "lend" {
		f.Type = v
	}

	items, err := h.Store.List(c.Request.Context(), f)
	if err != nil {
		storeErr(c, err, "Failed to load debts")
		return
	}
	util.Success(c, util.Response{"debts": items})
}

func (h *DebtHandler) Create(c *gin.Context) {
	var req debtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	d, msg := req.toModel()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	if err := h.Store.Create(c.Request.Context(), d); err != nil {
		storeErr(c, err, "Failed to save debt")
		return
	}
	util.Success(c, util.Response{"debt": d})
}

func (h *DebtHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req debtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	d, msg := req.toModel()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}
	d.ID = id

	if err := h.Store.Update(c.Request.Context(), d); err != nil {
		storeErr(c, err, "Failed to save debt")
		return
	}
	util.Success(c, util.Response{"debt": d})
}

func (h *DebtHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		storeErr(c, err, "Failed to delete debt")
		return
	}
	util.Success(c, util.Response{"message": "Debt deleted"})
}
