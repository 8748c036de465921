package models

import "time"

// Transaction represents a single income or expense record.
// Date and Time are kept as strings (YYYY-MM-DD / HH:MM) to match the
// form inputs; Amount is always rounded to two decimal places.
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          string    `gorm:"size:10;index;not null" json:"date"`
	Time          string    `gorm:"size:8;not null" json:"time"`
	Description   string    `gorm:"size:255;not null" json:"description"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Category      string    `gorm:"size:16;index;not null" json:"category"` // income / expense
	SubCategory   string    `gorm:"size:32;not null" json:"sub_category"`   // e-wallet / cash / card
	CardChoice    string    `gorm:"size:32" json:"card_choice"`
	IncomeSource  string    `gorm:"size:32" json:"income_source"`
	ExpenseUsage  string    `gorm:"size:32" json:"expense_usage"`
	UsageCategory string    `gorm:"size:32" json:"usage_category"` // derived from ExpenseUsage
	HobbyCategory string    `gorm:"size:32" json:"hobby_category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
