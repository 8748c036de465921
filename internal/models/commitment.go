package models

// Commitment represents a recurring monthly obligation (rent,
// subscriptions, installments).
type Commitment struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:128;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	PerMonth    float64 `gorm:"not null" json:"per_month"`
	PerYear     float64 `gorm:"not null" json:"per_year"`
	Notes       string  `gorm:"type:text" json:"notes"`
	Status      string  `gorm:"size:16;index;not null;default:Active" json:"status"` // Active / Inactive
	StartMonth  int     `json:"start_month"`
	StartYear   int     `json:"start_year"`
}

// CommitmentPayment marks one commitment paid or unpaid for a given
// month. The (commitment, month, year) triple is unique so the upsert
// is a single atomic conditional write.
type CommitmentPayment struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CommitmentID uint   `gorm:"not null;uniqueIndex:idx_commitment_period" json:"commitment_id"`
	Month        int    `gorm:"not null;uniqueIndex:idx_commitment_period" json:"month"`
	Year         int    `gorm:"not null;uniqueIndex:idx_commitment_period" json:"year"`
	Status       string `gorm:"size:16;not null" json:"status"` // paid / unpaid

	Commitment Commitment `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Joined for list responses, not a column.
	CommitmentName string `gorm:"->;-:migration" json:"commitment_name,omitempty"`
}
