package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/auth"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
)

// Demo login that ships with a fresh database.
const (
	DemoUsername = "user.demo"
	DemoEmail    = "demo@example.com"
	demoPassword = "finttrack-demo-92AjLk!"
)

// SeedDemoUser inserts the demo user if no user with that username or
// email exists yet.
func SeedDemoUser(db *gorm.DB, bcryptCost int) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", DemoUsername, DemoEmail).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check demo user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(demoPassword, bcryptCost)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	user := models.User{
		Username:     DemoUsername,
		Email:        DemoEmail,
		PasswordHash: hash,
		FirstName:    "Demo",
		LastName:     "User",
		IsActive:     1,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	return nil
}

// SeedAccounts inserts the fixed account catalog (e-wallets, cash
// divisions, card sub-divisions) with zero balances. Skips when any
// account already exists.
func SeedAccounts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return fmt.Errorf("check accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	accounts := []models.Account{
		{Category: "E-Wallet", SubCategory: "Touch 'n Go"},
		{Category: "E-Wallet", SubCategory: "Shopee Pay"},
		{Category: "Cash", SubCategory: "Notes"},
		{Category: "Cash", SubCategory: "Coins"},
		// card sub-divisions share one bank card
		{Category: "Card", SubCategory: "Past", CardType: "RHB"},
		{Category: "Card", SubCategory: "Present", CardType: "RHB"},
		{Category: "Card", SubCategory: "Savings", CardType: "RHB"},
		{Category: "Card", SubCategory: "Bliss", CardType: "RHB"},
	}
	if err := db.Create(&accounts).Error; err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	return nil
}
