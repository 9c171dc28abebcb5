package services

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/models"
	"github.com/localnerve/agenthub/internal/types"
	"gorm.io/gorm"
)

// MaxFileSize is the upload cap in raw bytes. Uploads of exactly this size
// are accepted.
const MaxFileSize = 10 * 1024 * 1024

// FileView is the API shape of a file; the payload is never included.
type FileView struct {
	FileID      string `json:"fileId"`
	ProjectID   string `json:"projectId"`
	UserID      string `json:"userId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	UploadedAt  string `json:"uploadedAt"`
}

func fileView(f *models.File) FileView {
	return FileView{
		FileID:      f.ID,
		ProjectID:   f.ProjectID,
		UserID:      f.UserID,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		UploadedAt:  f.UploadedAt.UTC().Format(time.RFC3339),
	}
}

// SaveFile validates and stores an upload under an owned project.
// Callers must have passed the ownership guard first.
func SaveFile(db *gorm.DB, projectID, userID, filename, contentType string, content []byte) (*models.File, error) {
	if len(content) > MaxFileSize {
		return nil, types.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("File too large. Maximum size: %dMB", MaxFileSize/1024/1024),
			types.ErrValidationTooLarge)
	}

	file := models.File{
		ProjectID:     projectID,
		UserID:        userID,
		Filename:      filename,
		ContentType:   contentType,
		Size:          int64(len(content)),
		ContentBase64: models.LongText(base64.StdEncoding.EncodeToString(content)),
		UploadedAt:    time.Now().UTC(),
	}
	if err := db.Create(&file).Error; err != nil {
		return nil, storageError(err)
	}

	return &file, nil
}

// ListFiles returns file metadata for an owned project, payloads omitted.
func ListFiles(db *gorm.DB, projectID, userID string) ([]FileView, error) {
	var files []models.File
	err := db.Select("id", "project_id", "user_id", "filename", "content_type", "size", "uploaded_at").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Find(&files).Error
	if err != nil {
		return nil, storageError(err)
	}

	views := make([]FileView, 0, len(files))
	for i := range files {
		views = append(views, fileView(&files[i]))
	}
	return views, nil
}

// DeleteFile removes one file record. Callers must have passed both
// ownership guards (project and file) first.
func DeleteFile(db *gorm.DB, fileID string) error {
	if err := db.Delete(&models.File{}, "id = ?", fileID).Error; err != nil {
		return storageError(err)
	}
	return nil
}
