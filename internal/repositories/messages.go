package repositories

import (
	"taskboard/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Post(db *gorm.DB, taskID, userID uuid.UUID, text string) (models.TaskMessage, error)
	ListForTask(db *gorm.DB, taskID uuid.UUID) ([]models.TaskMessage, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() *MessageRepositoryImpl {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Post(db *gorm.DB, taskID, userID uuid.UUID, text string) (models.TaskMessage, error) {
	message := models.TaskMessage{
		ID:      uuid.Must(uuid.NewV4()),
		TaskID:  taskID,
		UserID:  userID,
		Message: text,
	}
	if err := db.Create(&message).Error; err != nil {
		return models.TaskMessage{}, err
	}
	return message, nil
}

// ListForTask returns the thread ascending by timestamp, each row
// annotated with the sender's display name.
func (r *MessageRepositoryImpl) ListForTask(db *gorm.DB, taskID uuid.UUID) ([]models.TaskMessage, error) {
	var messages []models.TaskMessage
	result := db.Model(&models.TaskMessage{}).
		Select("task_messages.*, users.name AS sender_name").
		Joins("JOIN users ON users.id = task_messages.user_id").
		Where("task_messages.task_id = ?", taskID).
		Order("task_messages.timestamp ASC").
		Find(&messages)
	return messages, result.Error
}
