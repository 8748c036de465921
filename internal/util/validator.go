package util

import (
	"fmt"
	"math"
	"time"
)

// Round2 rounds a monetary amount to two decimal places; every amount
// is stored this way.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ValidateAmount checks that an amount is positive and below the cap.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateTime checks an HH:MM clock string.
func ValidateTime(timeStr string) error {
	if timeStr == "" {
		return fmt.Errorf("time is empty")
	}
	if _, err := time.Parse("15:04", timeStr); err != nil {
		return fmt.Errorf("invalid time format: %w", err)
	}
	return nil
}
