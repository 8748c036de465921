package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/finance"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// ExportHandler streams the transaction history as CSV or XLSX.
type ExportHandler struct {
	Store store.TransactionStore
}

func NewExportHandler(s store.TransactionStore) *ExportHandler {
	return &ExportHandler{Store: s}
}

var exportHeaders = []string{
	"Date", "Time", "Description", "Amount", "Category",
	"Payment Method", "Source / Usage",
}

func exportRow(t *models.Transaction) []string {
	method := t.SubCategory
	if t.CardChoice != "" {
		method = method + " - " + t.CardChoice
	}
	return []string{
		t.Date,
		t.Time,
		t.Description,
		strconv.FormatFloat(t.Amount, 'f', 2, 64),
		t.Category,
		method,
		finance.SourceOrUsageLabel(t.IncomeSource, t.ExpenseUsage),
	}
}

// CSV writes the full history as an attachment.
func (h *ExportHandler) CSV(c *gin.Context) {
	items, err := h.Store.List(c.Request.Context())
	if err != nil {
		storeErr(c, err, "Failed to load transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range items {
		writer.Write(exportRow(&items[i]))
	}
}

// XLSX writes the full history as a spreadsheet.
func (h *ExportHandler) XLSX(c *gin.Context) {
	items, err := h.Store.List(c.Request.Context())
	if err != nil {
		storeErr(c, err, "Failed to load transactions")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, hd := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx := range items {
		row := idx + 2
		for col, v := range exportRow(&items[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			if col == 3 {
				// Amount as a real number so spreadsheet math works.
				f.SetCellValue(sheetName, cell, items[idx].Amount)
				continue
			}
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "G", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
