package models

import "time"

// User mirrors an identity-provider account for profile lookups.
// Rows are written once at registration and never mutated here; the
// provider owns the account lifecycle.
type User struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	Email       string `gorm:"size:255;not null;uniqueIndex"`
	DisplayName string `gorm:"size:255"`
	CreatedAt   time.Time
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
