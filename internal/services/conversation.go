package services

import (
	"time"

	"github.com/localnerve/agenthub/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Append-only per-project message log. Ordering key is the assignment
// timestamp; the autoincrement id breaks ties in insertion order within a
// single process. Concurrent appends from different processes are not
// globally ordered; that weak-consistency point is accepted.

// AppendMessage appends one message to a project's log.
func AppendMessage(db *gorm.DB, projectID, role, content string, meta models.JSON) (*models.Message, error) {
	msg := models.Message{
		ProjectID: projectID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Meta:      meta,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, storageError(err)
	}
	return &msg, nil
}

// MessageTail returns the most recent `limit` messages, oldest first.
func MessageTail(db *gorm.DB, projectID string, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := db.Clauses(hints.CommentBefore("select", "tail")).
		Where("project_id = ?", projectID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, storageError(err)
	}

	// The query fetches newest-first; callers need oldest-first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return msgs, nil
}

// AllMessages returns a project's full log, oldest first.
func AllMessages(db *gorm.DB, projectID string) ([]models.Message, error) {
	var msgs []models.Message
	err := db.Clauses(hints.CommentBefore("select", "history")).
		Where("project_id = ?", projectID).
		Order("timestamp ASC").
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, storageError(err)
	}
	return msgs, nil
}

// DeleteAllMessages removes every message in a project's log.
func DeleteAllMessages(db *gorm.DB, projectID string) error {
	if err := db.Where("project_id = ?", projectID).Delete(&models.Message{}).Error; err != nil {
		return storageError(err)
	}
	return nil
}
