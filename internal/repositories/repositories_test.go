package repositories_test

import (
	"testing"
	"time"

	"taskboard/backend/internal/gateway"
	"taskboard/backend/internal/models"
	"taskboard/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gateway.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := gateway.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{ID: uuid.Must(uuid.NewV4()), Name: name, Email: email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user fixture: %v", err)
	}
	return user
}

func createMessageAt(t *testing.T, db *gorm.DB, taskID, userID uuid.UUID, text string, at time.Time) {
	t.Helper()

	message := models.TaskMessage{
		ID:        uuid.Must(uuid.NewV4()),
		TaskID:    taskID,
		UserID:    userID,
		Message:   text,
		Timestamp: at,
	}
	if err := db.Create(&message).Error; err != nil {
		t.Fatalf("Failed to create message fixture: %v", err)
	}
}

var _ repositories.TaskRepository = (*repositories.TaskRepositoryImpl)(nil)
var _ repositories.AssignmentRepository = (*repositories.AssignmentRepositoryImpl)(nil)
var _ repositories.MessageRepository = (*repositories.MessageRepositoryImpl)(nil)
var _ repositories.UserRepository = (*repositories.UserRepositoryImpl)(nil)
