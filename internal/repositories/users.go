package repositories

import (
	"errors"

	"taskboard/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindOrCreateByEmail(db *gorm.DB, name, email string) (models.User, error)
	GetByID(db *gorm.DB, id uuid.UUID) (models.User, error)
	ListAll(db *gorm.DB) ([]models.User, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() *UserRepositoryImpl {
	return &UserRepositoryImpl{}
}

// FindOrCreateByEmail looks the user up by exact email. An existing
// user's stored name wins over the submitted one. Two racing logins
// with the same unseen email are settled by the unique constraint on
// email: the loser's insert surfaces as a persistence error.
func (r *UserRepositoryImpl) FindOrCreateByEmail(db *gorm.DB, name, email string) (models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	user = models.User{
		ID:    uuid.Must(uuid.NewV4()),
		Name:  name,
		Email: email,
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) GetByID(db *gorm.DB, id uuid.UUID) (models.User, error) {
	var user models.User
	result := db.Where("id = ?", id).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, result.Error
}

func (r *UserRepositoryImpl) ListAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	result := db.Find(&users)
	return users, result.Error
}
