package models

// Debt is an informal debt with another person, either money I
// borrowed or money I lent out.
type Debt struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Type        string  `gorm:"size:16;index;not null" json:"type"` // borrow / lend
	CreatedDate string  `gorm:"size:10;index;not null" json:"created_date"`
	DueDate     string  `gorm:"size:10" json:"due_date"`
	PersonName  string  `gorm:"size:128;not null" json:"person_name"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Notes       string  `gorm:"type:text" json:"notes"`
	Status      string  `gorm:"size:16;index;not null;default:pending" json:"status"` // pending / settled
	SettledDate string  `gorm:"size:10" json:"settled_date"`
}
