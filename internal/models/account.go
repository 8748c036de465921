package models

// Account represents one balance bucket: an e-wallet, a cash division
// or a card sub-division. CardType carries the bank name for cards.
type Account struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Category    string  `gorm:"size:32;not null" json:"category"` // E-Wallet / Cash / Card
	SubCategory string  `gorm:"size:64;not null" json:"sub_category"`
	CardType    string  `gorm:"size:32" json:"card_type"`
	Balance     float64 `gorm:"not null;default:0" json:"balance"`
}
