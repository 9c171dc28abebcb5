package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a named agent configuration owned by exactly one user.
// The owner is set at creation and immutable.
type Project struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	UserID       string `gorm:"type:char(36);not null;index"`
	Name         string `gorm:"size:255;not null"`
	SystemPrompt string `gorm:"type:text"`
	CreatedAt    time.Time
}

// BeforeCreate assigns a store-generated opaque id.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}
