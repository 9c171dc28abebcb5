package services_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/models"
	"github.com/localnerve/agenthub/internal/services"
	"github.com/localnerve/agenthub/internal/types"
)

// TestSaveFileStoresBase64 verifies the payload round-trips through encoding
func TestSaveFileStoresBase64(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "test", "")

	content := []byte("hello world")
	file, err := services.SaveFile(db, project.ID, "user-1", "doc.txt", "text/plain", content)
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}
	if file.Size != int64(len(content)) {
		t.Errorf("Expected size %d, got %d", len(content), file.Size)
	}

	var stored models.File
	if err := db.First(&stored, "id = ?", file.ID).Error; err != nil {
		t.Fatalf("Failed to read file back: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(string(stored.ContentBase64))
	if err != nil {
		t.Fatalf("Stored payload is not base64: %v", err)
	}
	if !bytes.Equal(decoded, content) {
		t.Error("Payload did not round-trip")
	}
}

// TestSaveFileAtLimit verifies an upload of exactly the cap is accepted
func TestSaveFileAtLimit(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "test", "")

	content := make([]byte, services.MaxFileSize)
	if _, err := services.SaveFile(db, project.ID, "user-1", "big.bin", "application/octet-stream", content); err != nil {
		t.Fatalf("Expected upload at the limit to succeed, got %v", err)
	}
}

// TestSaveFileTooLarge verifies one byte over the cap is rejected
func TestSaveFileTooLarge(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "test", "")

	content := make([]byte, services.MaxFileSize+1)
	_, err := services.SaveFile(db, project.ID, "user-1", "big.bin", "application/octet-stream", content)
	ce, ok := types.AsCustomError(err)
	if !ok {
		t.Fatalf("Expected CustomError, got %v", err)
	}
	if ce.Code != fiber.StatusBadRequest || ce.Type != types.ErrValidationTooLarge {
		t.Errorf("Expected 400 %s, got %d %s", types.ErrValidationTooLarge, ce.Code, ce.Type)
	}

	var count int64
	db.Model(&models.File{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 0 {
		t.Error("Rejected upload must not be stored")
	}
}

// TestListFilesOmitsPayload verifies listings never carry file content
func TestListFilesOmitsPayload(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "test", "")

	if _, err := services.SaveFile(db, project.ID, "user-1", "doc.txt", "text/plain", []byte("secret")); err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	views, err := services.ListFiles(db, project.ID, "user-1")
	if err != nil {
		t.Fatalf("Failed to list files: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(views))
	}
	if views[0].Filename != "doc.txt" || views[0].Size != 6 {
		t.Errorf("Unexpected metadata: %+v", views[0])
	}
}

// TestDeleteFile verifies removal of a single record
func TestDeleteFile(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "test", "")

	file, err := services.SaveFile(db, project.ID, "user-1", "doc.txt", "text/plain", []byte("x"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if err := services.DeleteFile(db, file.ID); err != nil {
		t.Fatalf("Failed to delete file: %v", err)
	}

	var count int64
	db.Model(&models.File{}).Where("id = ?", file.ID).Count(&count)
	if count != 0 {
		t.Error("Expected file to be gone")
	}
}
