package view_test

import (
	"testing"

	"taskboard/backend/internal/gateway"
	"taskboard/backend/internal/models"
	"taskboard/backend/internal/repositories"
	"taskboard/backend/internal/session"

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

// loggedInUser creates a user and hands back the session that would be
// carried after logging in as them.
func loggedInUser(t *testing.T, db *gorm.DB, name, email string) (models.User, session.Session) {
	t.Helper()

	user, err := repositories.NewUserRepository().FindOrCreateByEmail(db, name, email)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user, session.ForUser(user.ID)
}

// assignedTask creates a task with the given status and assigns it to
// the user.
func assignedTask(t *testing.T, db *gorm.DB, title, status string, userID uuid.UUID) models.Task {
	t.Helper()

	task, err := repositories.NewTaskRepository().Create(db, title, "", status)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	if err := repositories.NewAssignmentRepository().Assign(db, task.ID, userID); err != nil {
		t.Fatalf("Failed to assign task: %v", err)
	}
	return task
}
