package models

import "time"

// Session stores user login sessions. Token is the only credential the
// client ever holds; a session is live iff ExpiresAt is in the future
// and the owning user is active.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"column:session_token;size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"user"`
}
