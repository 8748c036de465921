// Package finance holds the fixed vocabularies of the tracker: income
// sources, expense usages and the usage-to-category derivation.
package finance

// IncomeSourceLabels maps income source keys to display labels.
var IncomeSourceLabels = map[string]string{
	"salary":                 "Salary",
	"allowance_gift":         "Allowance / Gift",
	"paybank_reimbursement":  "Payback / Reimbursement",
	"kwsp":                   "KWSP",
	"transfer":               "Transfer",
	"bank_profit":            "Bank Profit",
	"borrow":                 "Borrow",
	"refund":                 "Refund",
	"tally":                  "Tally",
	"update":                 "Update",
	"others":                 "Others",
}

// ExpenseUsageLabels maps expense usage keys to display labels.
var ExpenseUsageLabels = map[string]string{
	// Living
	"food":         "Food & Drinks",
	"groceries":    "Groceries",
	"health":       "Health",
	"household":    "Household",
	"personalcare": "Personal Care",

	// Commitments
	"car":          "Car",
	"house":        "House",
	"utilities":    "Utilities",
	"installment":  "Installment",
	"transport":    "Transportation",
	"subscription": "Subscription",

	// Personal
	"entertainment": "Entertainment",
	"shopping":      "Shopping",
	"travel":        "Travel",
	"ride":          "Ride Transportation",
	"gifts":         "Gifts",
	"hobby":         "Hobby",

	// Financial
	"investment": "Investment",
	"charity":    "Charity",
	"payback":    "Payback",
	"lend":       "Lend Money",
	"movement":   "Move Money",
	"update":     "Update Money",

	// Others
	"others": "Others",
}

// HobbyLabels maps hobby keys to display labels.
var HobbyLabels = map[string]string{
	"gunpla":     "Gunpla",
	"music":      "Music",
	"climbing":   "Climbing",
	"decoration": "Decoration",
	"technology": "Technology",
}

// expenseUsageCategory groups each usage under its spending category.
var expenseUsageCategory = map[string]string{
	// Living
	"food":         "Living",
	"groceries":    "Living",
	"health":       "Living",
	"household":    "Living",
	"personalcare": "Living",

	// Commitments
	"car":          "Commitments",
	"house":        "Commitments",
	"utilities":    "Commitments",
	"installment":  "Commitments",
	"transport":    "Commitments",
	"subscription": "Commitments",

	// Personal
	"entertainment": "Personal",
	"shopping":      "Personal",
	"travel":        "Personal",
	"ride":          "Personal",
	"gifts":         "Personal",
	"hobby":         "Personal",

	// Financial
	"investment": "Financial",
	"charity":    "Financial",
	"payback":    "Financial",
	"lend":       "Financial",
	"movement":   "Financial",
	"update":     "Financial",

	// Others
	"others": "Others",
}

// UsageCategory derives the spending category from an expense usage.
// Unknown non-empty usages fall into "Others".
func UsageCategory(expenseUsage string) string {
	if expenseUsage == "" {
		return ""
	}
	if cat, ok := expenseUsageCategory[expenseUsage]; ok {
		return cat
	}
	return "Others"
}

// IncomeSourceLabel returns the display label for an income source key.
func IncomeSourceLabel(value string) string {
	if value == "" {
		return "-"
	}
	if label, ok := IncomeSourceLabels[value]; ok {
		return label
	}
	return value
}

// ExpenseUsageLabel returns the display label for an expense usage key.
func ExpenseUsageLabel(value string) string {
	if value == "" {
		return "-"
	}
	if label, ok := ExpenseUsageLabels[value]; ok {
		return label
	}
	return value
}

// SourceOrUsageLabel picks the income-source label for income rows and
// the expense-usage label for expense rows.
func SourceOrUsageLabel(incomeSource, expenseUsage string) string {
	if incomeSource != "" {
		return IncomeSourceLabel(incomeSource)
	}
	if expenseUsage != "" {
		return ExpenseUsageLabel(expenseUsage)
	}
	return "-"
}
