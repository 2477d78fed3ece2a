package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// TaskMessage is immutable once posted. SenderName is filled from the
// users table when listing a thread and is never stored.
type TaskMessage struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID     uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Message    string    `json:"message" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"autoCreateTime"`
	SenderName string    `json:"sender_name" gorm:"->;-:migration"`
}
