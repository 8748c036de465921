package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/finance"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// DashboardHandler aggregates a monthly overview across every domain.
type DashboardHandler struct {
	Stores *store.Stores
}

func NewDashboardHandler(s *store.Stores) *DashboardHandler {
	return &DashboardHandler{Stores: s}
}

// Summary builds the overview for one month (?month=YYYY-MM, default
// current): income/expense totals, balances, active commitments and
// their paid marks, pending debts and the open wishlist.
func (h *DashboardHandler) Summary(c *gin.Context) {
	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}
	monthStart, err := time.Parse("2006-01", monthStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid month, expected YYYY-MM")
		return
	}

	ctx := c.Request.Context()

	transactions, err := h.Stores.Transactions.List(ctx)
	if err != nil {
		storeErr(c, err, "Failed to load transactions")
		return
	}

	var totalIncome, totalExpense float64
	bySource := make(map[string]float64)
	byUsage := make(map[string]float64)
	prefix := monthStr + "-"
	for i := range transactions {
		t := &transactions[i]
		if !strings.HasPrefix(t.Date, prefix) {
			continue
		}
		if t.Category == "income" {
			totalIncome += t.Amount
			bySource[finance.IncomeSourceLabel(t.IncomeSource)] += t.Amount
		} else {
			totalExpense += t.Amount
			byUsage[finance.ExpenseUsageLabel(t.ExpenseUsage)] += t.Amount
		}
	}
	for k, v := range bySource {
		bySource[k] = util.Round2(v)
	}
	for k, v := range byUsage {
		byUsage[k] = util.Round2(v)
	}

	accounts, err := h.Stores.Accounts.List(ctx)
	if err != nil {
		storeErr(c, err, "Failed to load accounts")
		return
	}
	var totalBalance float64
	for i := range accounts {
		totalBalance += accounts[i].Balance
	}

	commitments, err := h.Stores.Commitments.List(ctx, "Active")
	if err != nil {
		storeErr(c, err, "Failed to load commitments")
		return
	}
	var commitmentTotal float64
	for i := range commitments {
		commitmentTotal += commitments[i].PerMonth
	}

	payments, err := h.Stores.Payments.List(ctx, store.PaymentFilter{
		Month: int(monthStart.Month()),
		Year:  monthStart.Year(),
	})
	if err != nil {
		storeErr(c, err, "Failed to load payments")
		return
	}
	paidCount := 0
	for i := range payments {
		if payments[i].Status == "paid" {
			paidCount++
		}
	}

	debts, err := h.Stores.Debts.List(ctx, store.DebtFilter{Status: "pending"})
	if err != nil {
		storeErr(c, err, "Failed to load debts")
		return
	}
	var borrowed, lent float64
	for i := range debts {
		if debts[i].Type == "borrow" {
			borrowed += debts[i].Amount
		} else {
			lent += debts[i].Amount
		}
	}

	wishlist, err := h.Stores.Wishlist.List(ctx, "not_purchased")
	if err != nil {
		storeErr(c, err, "Failed to load wishlist")
		return
	}
	var wishlistEstimate float64
	for i := range wishlist {
		wishlistEstimate += wishlist[i].EstimatePrice
	}

	util.Success(c, util.Response{
		"month": monthStr,
		"transactions": gin.H{
			"total_income":     util.Round2(totalIncome),
			"total_expense":    util.Round2(totalExpense),
			"net":              util.Round2(totalIncome - totalExpense),
			"income_by_source": bySource,
			"expense_by_usage": byUsage,
		},
		"accounts": gin.H{
			"total_balance": util.Round2(totalBalance),
			"items":         accounts,
		},
		"commitments": gin.H{
			"active":    len(commitments),
			"per_month": util.Round2(commitmentTotal),
			"paid":      paidCount,
		},
		"debts": gin.H{
			"pending":  len(debts),
			"borrowed": util.Round2(borrowed),
			"lent":     util.Round2(lent),
		},
		"wishlist": gin.H{
			"planned":        len(wishlist),
			"estimate_total": util.Round2(wishlistEstimate),
		},
	})
}
