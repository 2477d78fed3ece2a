package models

import "github.com/gofrs/uuid"

// TaskAssignment links a user to a task. Duplicate links are permitted.
type TaskAssignment struct {
	ID     uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
}
