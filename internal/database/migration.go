package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Transaction{},
		&models.Account{},
		&models.Commitment{},
		&models.CommitmentPayment{},
		&models.WishlistItem{},
		&models.Debt{},
		&models.Backup{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
