package repositories

import (
	"errors"

	"taskboard/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(db *gorm.DB, title, description, status string) (models.Task, error)
	CreateAssigned(db *gorm.DB, title, description string, userID uuid.UUID) (models.Task, error)
	ListAll(db *gorm.DB) ([]models.Task, error)
	ListForUser(db *gorm.DB, userID uuid.UUID) ([]models.Task, error)
	GetByID(db *gorm.DB, id uuid.UUID) (models.Task, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status string) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type TaskRepositoryImpl struct{}

func NewTaskRepository() *TaskRepositoryImpl {
	return &TaskRepositoryImpl{}
}

func (r *TaskRepositoryImpl) Create(db *gorm.DB, title, description, status string) (models.Task, error) {
	if status == "" {
		status = models.StatusActive
	}
	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       title,
		Description: description,
		Status:      status,
	}
	if err := db.Create(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CreateAssigned inserts the task and its creator's assignment in one
// transaction, so a failed assignment never leaves an orphan task.
func (r *TaskRepositoryImpl) CreateAssigned(db *gorm.DB, title, description string, userID uuid.UUID) (models.Task, error) {
	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       title,
		Description: description,
		Status:      models.StatusActive,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	assignment := models.TaskAssignment{
		ID:     uuid.Must(uuid.NewV4()),
		TaskID: task.ID,
		UserID: userID,
	}
	if err := tx.Create(&assignment).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (r *TaskRepositoryImpl) ListAll(db *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task
	result := db.Find(&tasks)
	return tasks, result.Error
}

// ListForUser returns only the tasks the user has at least one
// assignment for. Tasks with zero assignments never appear.
func (r *TaskRepositoryImpl) ListForUser(db *gorm.DB, userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	result := db.Model(&models.Task{}).
		Distinct("tasks.*").
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
		Where("task_assignments.user_id = ?", userID).
		Find(&tasks)
	return tasks, result.Error
}

func (r *TaskRepositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var task models.Task
	result := db.Where("id = ?", id).First(&task)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return models.Task{}, ErrNotFound
	}
	return task, result.Error
}

// UpdateStatus writes the status as given. Validating it against the
// three known statuses is the caller's job; the data layer stays dumb.
func (r *TaskRepositoryImpl) UpdateStatus(db *gorm.DB, id uuid.UUID, status string) error {
	return db.Model(&models.Task{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes the task only. Messages and assignments are left in
// place, matching the observed no-cascade semantics.
func (r *TaskRepositoryImpl) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&models.Task{}, "id = ?", id).Error
}
