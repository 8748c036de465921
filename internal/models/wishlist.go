package models

// WishlistItem is a planned purchase with an estimated price and,
// once bought, the final price and purchase date.
type WishlistItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:128;not null" json:"name"`
	Category      string  `gorm:"size:64;not null" json:"category"`
	EstimatePrice float64 `json:"estimate_price"`
	FinalPrice    float64 `json:"final_price"`
	PurchaseDate  string  `gorm:"size:10" json:"purchase_date"`
	URLLink       string  `gorm:"size:512" json:"url_link"`
	URLPicture    string  `gorm:"size:512" json:"url_picture"`
	Status        string  `gorm:"size:24;index;not null;default:not_purchased" json:"status"` // not_purchased / purchased
}
