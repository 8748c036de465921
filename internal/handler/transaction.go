package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/finance"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// TransactionHandler covers the income/expense record endpoints.
type TransactionHandler struct {
	Store store.TransactionStore
}

func NewTransactionHandler(s store.TransactionStore) *TransactionHandler {
	return &TransactionHandler{Store: s}
}

type transactionReq struct {
	Date          string  `json:"date" binding:"required"`
	Time          string  `json:"time" binding:"required"`
	Description   string  `json:"description" binding:"required,max=255"`
	Amount        float64 `json:"amount" binding:"required"`
	Category      string  `json:"category" binding:"required,oneof=income expense"`
	SubCategory   string  `json:"sub_category" binding:"required"`
	CardChoice    string  `json:"card_choice"`
	IncomeSource  string  `json:"income_source"`
	ExpenseUsage  string  `json:"expense_usage"`
	HobbyCategory string  `json:"hobby_category"`
}

// toModel validates the request and builds the record, deriving the
// usage category from the expense usage value.
func (r *transactionReq) toModel() (*models.Transaction, string) {
	if err := util.ValidateDate(r.Date); err != nil {
		return nil, err.Error()
	}
	if err := util.ValidateTime(r.Time); err != nil {
		return nil, err.Error()
	}
	if err := util.ValidateAmount(r.Amount); err != nil {
		return nil, err.Error()
	}
	if strings.TrimSpace(r.Description) == "" {
		return nil, "Description is required"
	}

	t := &models.Transaction{
		Date:          r.Date,
		Time:          r.Time,
		Description:   strings.TrimSpace(r.Description),
		Amount:        util.Round2(r.Amount),
		Category:      r.Category,
		SubCategory:   r.SubCategory,
		CardChoice:    r.CardChoice,
		IncomeSource:  r.IncomeSource,
		ExpenseUsage:  r.ExpenseUsage,
		HobbyCategory: r.HobbyCategory,
	}
	if t.Category == "expense" {
		t.UsageCategory = finance.UsageCategory(t.ExpenseUsage)
	} else {
		t.ExpenseUsage = ""
		t.UsageCategory = ""
		t.HobbyCategory = ""
	}
	if t.Category == "income" && t.IncomeSource == "" {
		return nil, "Income source is required"
	}
	return t, ""
}

// List returns all records, newest first by store ordering.
func (h *TransactionHandler) List(c *gin.Context) {
	items, err := h.Store.List(c.Request.Context())
	if err != nil {
		storeErr(c, err, "Failed to load transactions")
		return
	}
	util.Success(c, util.Response{"transactions": items})
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	t, msg := req.toModel()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	if err := h.Store.Create(c.Request.Context(), t); err != nil {
		storeErr(c, err, "Failed to save transaction")
		return
	}
	util.Success(c, util.Response{"transaction": t})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	t, msg := req.toModel()
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}
	t.ID = id

	if err := h.Store.Update(c.Request.Context(), t); err != nil {
		storeErr(c, err, "Failed to save transaction")
		return
	}
	util.Success(c, util.Response{"transaction": t})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		storeErr(c, err, "Failed to delete transaction")
		return
	}
	util.Success(c, util.Response{"message": "Transaction deleted"})
}
