package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Task statuses form a closed three-state lifecycle.
const (
	StatusActive    = "Active"
	StatusSnoozed   = "Snoozed"
	StatusCompleted = "Completed"
)

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusSnoozed || status == StatusCompleted
}

type Task struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"not null;default:'Active'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
