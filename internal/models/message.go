package models

import "time"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a project's append-only conversation log.
// Ordering key is Timestamp; the autoincrement ID breaks ties in
// insertion order within a single process. Never mutated after creation.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ProjectID string    `gorm:"type:char(36);not null;index:idx_project_timestamp"`
	Role      string    `gorm:"size:16;not null"`
	Content   string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"not null;index:idx_project_timestamp"`
	Meta      JSON
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}
