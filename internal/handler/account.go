package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// AccountHandler covers the balance bucket endpoints. Accounts form a
// fixed catalog, so only listing and balance updates are exposed.
type AccountHandler struct {
	Store store.AccountStore
}

func NewAccountHandler(s store.AccountStore) *AccountHandler {
	return &AccountHandler{Store: s}
}

func (h *AccountHandler) List(c *gin.Context) {
	items, err := h.Store.List(c.Request.Context())
	if err != nil {
		storeErr(c, err, "Failed to load accounts")
		return
	}
	util.Success(c, util.Response{"accounts": items})
}

type updateBalanceReq struct {
	Balance *float64 `json:"balance" binding:"required"`
}

func (h *AccountHandler) UpdateBalance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateBalanceReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Balance == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Balance is required")
		return
	}
	if *req.Balance < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Balance cannot be negative")
		return
	}

	if err := h.Store.UpdateBalance(c.Request.Context(), id, util.Round2(*req.Balance)); err != nil {
		storeErr(c, err, "Failed to update balance")
		return
	}
	util.Success(c, util.Response{"message": "Balance updated"})
}
