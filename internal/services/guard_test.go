package services_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/services"
	"github.com/localnerve/agenthub/internal/types"
)

// TestProjectOwned verifies the owner passes the guard
func TestProjectOwned(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "mine", "prompt")

	got, err := services.ProjectOwned(db, project.ID, "user-1")
	if err != nil {
		t.Fatalf("Expected owner to pass, got %v", err)
	}
	if got.SystemPrompt != "prompt" {
		t.Errorf("Expected full project back, got %+v", got)
	}
}

// TestProjectOwnedNotFound verifies a missing project maps to 404
func TestProjectOwnedNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.ProjectOwned(db, "does-not-exist", "user-1")
	ce, ok := types.AsCustomError(err)
	if !ok {
		t.Fatalf("Expected CustomError, got %v", err)
	}
	if ce.Code != fiber.StatusNotFound || ce.Type != types.ErrOwnershipNotFound {
		t.Errorf("Expected 404 %s, got %d %s", types.ErrOwnershipNotFound, ce.Code, ce.Type)
	}
}

// TestProjectOwnedForbidden verifies a non-owner maps to 403
func TestProjectOwnedForbidden(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "mine", "")

	_, err := services.ProjectOwned(db, project.ID, "user-2")
	ce, ok := types.AsCustomError(err)
	if !ok {
		t.Fatalf("Expected CustomError, got %v", err)
	}
	if ce.Code != fiber.StatusForbidden || ce.Type != types.ErrOwnershipForbidden {
		t.Errorf("Expected 403 %s, got %d %s", types.ErrOwnershipForbidden, ce.Code, ce.Type)
	}
}

// TestFileInProjectMismatch verifies a file under another project maps to 400
func TestFileInProjectMismatch(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "a", "")
	other := createTestProject(t, db, "user-1", "b", "")

	file, err := services.SaveFile(db, other.ID, "user-1", "doc.txt", "text/plain", []byte("hello"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	_, err = services.FileInProject(db, file.ID, project.ID)
	ce, ok := types.AsCustomError(err)
	if !ok {
		t.Fatalf("Expected CustomError, got %v", err)
	}
	if ce.Code != fiber.StatusBadRequest || ce.Type != types.ErrOwnershipMismatch {
		t.Errorf("Expected 400 %s, got %d %s", types.ErrOwnershipMismatch, ce.Code, ce.Type)
	}
}

// TestFileInProjectNotFound verifies a missing file maps to 404
func TestFileInProjectNotFound(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "a", "")

	_, err := services.FileInProject(db, "does-not-exist", project.ID)
	ce, ok := types.AsCustomError(err)
	if !ok {
		t.Fatalf("Expected CustomError, got %v", err)
	}
	if ce.Code != fiber.StatusNotFound {
		t.Errorf("Expected 404, got %d", ce.Code)
	}
}
