package repositories

import (
	"taskboard/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Listing the tasks for a user lives on TaskRepository.ListForUser; this
// repository covers the other direction of the link table.
type AssignmentRepository interface {
	Assign(db *gorm.DB, taskID, userID uuid.UUID) error
	ListUsersForTask(db *gorm.DB, taskID uuid.UUID) ([]models.User, error)
}

type AssignmentRepositoryImpl struct{}

func NewAssignmentRepository() *AssignmentRepositoryImpl {
	return &AssignmentRepositoryImpl{}
}

// Assign inserts the link row unconditionally; duplicates are allowed.
func (r *AssignmentRepositoryImpl) Assign(db *gorm.DB, taskID, userID uuid.UUID) error {
	assignment := models.TaskAssignment{
		ID:     uuid.Must(uuid.NewV4()),
		TaskID: taskID,
		UserID: userID,
	}
	return db.Create(&assignment).Error
}

func (r *AssignmentRepositoryImpl) ListUsersForTask(db *gorm.DB, taskID uuid.UUID) ([]models.User, error) {
	var users []models.User
	result := db.Model(&models.User{}).
		Distinct("users.*").
		Joins("JOIN task_assignments ON task_assignments.user_id = users.id").
		Where("task_assignments.task_id = ?", taskID).
		Find(&users)
	return users, result.Error
}
