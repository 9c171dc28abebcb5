package services

import (
	"sort"
	"time"

	"github.com/localnerve/agenthub/internal/models"
	"gorm.io/gorm"
)

// ProjectView is the API shape of a project, timestamps pre-serialized.
type ProjectView struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	SystemPrompt string `json:"systemPrompt"`
	CreatedAt    string `json:"createdAt"`
}

func ProjectViewOf(p *models.Project) ProjectView {
	return ProjectView{
		ID:           p.ID,
		UserID:       p.UserID,
		Name:         p.Name,
		SystemPrompt: p.SystemPrompt,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateProject creates a project owned by userID.
func CreateProject(db *gorm.DB, userID, name, systemPrompt string) (*models.Project, error) {
	project := models.Project{
		UserID:       userID,
		Name:         name,
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, storageError(err)
	}
	return &project, nil
}

// ListProjects returns the caller's projects, newest first. Ordering
// compares the serialized RFC3339 strings, which sort the same as the
// underlying instants.
func ListProjects(db *gorm.DB, userID string) ([]ProjectView, error) {
	var projects []models.Project
	if err := db.Where("user_id = ?", userID).Find(&projects).Error; err != nil {
		return nil, storageError(err)
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, ProjectViewOf(&projects[i]))
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt > views[j].CreatedAt
	})

	return views, nil
}

// DeleteProject removes a project together with its message log and files.
// Callers must have passed the ownership guard first.
func DeleteProject(db *gorm.DB, projectID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.File{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", projectID).Error
	})
	if err != nil {
		return storageError(err)
	}
	return nil
}
