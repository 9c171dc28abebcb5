package services

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/models"
	"github.com/localnerve/agenthub/internal/types"
	"gorm.io/gorm"
)

// The ownership guard binds every project and file access to the caller's
// verified identity. All state-changing or data-returning operations on
// those resources go through here first; there is no bypass path.

// ProjectOwned fetches a project and confirms userID owns it.
func ProjectOwned(db *gorm.DB, projectID, userID string) (*models.Project, error) {
	var project models.Project
	err := db.First(&project, "id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewError(fiber.StatusNotFound,
				"Project not found", types.ErrOwnershipNotFound)
		}
		return nil, storageError(err)
	}

	if project.UserID != userID {
		return nil, types.NewError(fiber.StatusForbidden,
			"Unauthorized access", types.ErrOwnershipForbidden)
	}

	return &project, nil
}

// FileInProject fetches a file and confirms it belongs to the project the
// caller is accessing it through. A file that exists under a different
// project is a client error, not a missing resource.
func FileInProject(db *gorm.DB, fileID, projectID string) (*models.File, error) {
	var file models.File
	err := db.First(&file, "id = ?", fileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewError(fiber.StatusNotFound,
				"File not found", types.ErrOwnershipNotFound)
		}
		return nil, storageError(err)
	}

	if file.ProjectID != projectID {
		return nil, types.NewError(fiber.StatusBadRequest,
			"File does not belong to project", types.ErrOwnershipMismatch)
	}

	return &file, nil
}

func storageError(err error) error {
	return types.NewError(fiber.StatusServiceUnavailable,
		fmt.Sprintf("Store unavailable: %v", err), types.ErrStorageUnavailable)
}
