package services_test

import (
	"testing"
	"time"

	"github.com/localnerve/agenthub/internal/models"
	"github.com/localnerve/agenthub/internal/services"
)

// TestCreateProject verifies id assignment and field round-trip
func TestCreateProject(t *testing.T) {
	db := setupTestDB(t)

	project, err := services.CreateProject(db, "user-1", "support bot", "You answer support tickets")
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	if project.ID == "" {
		t.Error("Expected a generated project id")
	}

	got, err := services.ProjectOwned(db, project.ID, "user-1")
	if err != nil {
		t.Fatalf("Failed to fetch project: %v", err)
	}
	if got.Name != "support bot" || got.SystemPrompt != "You answer support tickets" {
		t.Errorf("Fields did not round-trip: %+v", got)
	}
}

// TestListProjectsNewestFirst verifies list ordering and owner scoping
func TestListProjectsNewestFirst(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "middle", "newest"} {
		project := models.Project{
			UserID:    "user-1",
			Name:      name,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.Create(&project).Error; err != nil {
			t.Fatalf("Failed to create project: %v", err)
		}
	}
	createTestProject(t, db, "user-2", "not mine", "")

	views, err := services.ListProjects(db, "user-1")
	if err != nil {
		t.Fatalf("Failed to list projects: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("Expected 3 projects, got %d", len(views))
	}
	if views[0].Name != "newest" || views[2].Name != "oldest" {
		t.Errorf("Expected newest first, got %s .. %s", views[0].Name, views[2].Name)
	}
}

// TestDeleteProjectCascades verifies messages and files go with the project
func TestDeleteProjectCascades(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "doomed", "")

	if _, err := services.AppendMessage(db, project.ID, models.RoleUser, "hi", models.JSON{}); err != nil {
		t.Fatalf("Failed to append message: %v", err)
	}
	if _, err := services.SaveFile(db, project.ID, "user-1", "doc.txt", "text/plain", []byte("x")); err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if err := services.DeleteProject(db, project.ID); err != nil {
		t.Fatalf("Failed to delete project: %v", err)
	}

	var projectCount, messageCount, fileCount int64
	db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount)
	db.Model(&models.Message{}).Where("project_id = ?", project.ID).Count(&messageCount)
	db.Model(&models.File{}).Where("project_id = ?", project.ID).Count(&fileCount)

	if projectCount != 0 || messageCount != 0 || fileCount != 0 {
		t.Errorf("Expected full cascade, got project=%d message=%d file=%d",
			projectCount, messageCount, fileCount)
	}
}
