package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is an uploaded attachment stored inline as a base64 payload.
// UserID must match the owning project's UserID at upload time.
type File struct {
	ID            string   `gorm:"type:char(36);primaryKey"`
	ProjectID     string   `gorm:"type:char(36);not null;index"`
	UserID        string   `gorm:"type:char(36);not null;index"`
	Filename      string   `gorm:"size:512;not null"`
	ContentType   string   `gorm:"size:255"`
	Size          int64    `gorm:"not null"`
	ContentBase64 LongText `gorm:"column:content_base64"`
	UploadedAt    time.Time
}

// BeforeCreate assigns a store-generated opaque id.
func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for File
func (File) TableName() string {
	return "files"
}
