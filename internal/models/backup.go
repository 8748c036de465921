package models

import "time"

// Backup records one encrypted snapshot file on disk.
type Backup struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"` // uuid
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
