package models

import "github.com/gofrs/uuid"

// User rows are created on first login with an unseen email and are
// never updated or deleted afterwards.
type User struct {
	ID    uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name  string    `json:"name" gorm:"not null"`
	Email string    `json:"email" gorm:"unique;not null"`
}
