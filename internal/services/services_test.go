package services_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/agenthub/internal/models"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Message{},
		&models.File{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createTestProject inserts a project owned by userID
func createTestProject(t *testing.T, db *gorm.DB, userID, name, systemPrompt string) *models.Project {
	project := models.Project{
		UserID:       userID,
		Name:         name,
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return &project
}
