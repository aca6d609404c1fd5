package repository

import (
	"errors"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByChatID(chatID int64) (*models.User, error)
	GetAll() ([]*models.User, error)
	DeleteByID(id uint) error
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	return &GormUserRepository{db: db, logger: logger}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	result := r.db.Create(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create user")
		return translateError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":         user.ID,
		"first_name": user.FirstName,
	}).Info("User created")
	return nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update user")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("User not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by ID")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetByChatID(chatID int64) (*models.User, error) {
	var user models.User
	result := r.db.Where("chat_id = ?", chatID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by chat ID")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetAll() ([]*models.User, error) {
	var users []*models.User
	result := r.db.Find(&users)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get users")
		return nil, result.Error
	}
	return users, nil
}

func (r *GormUserRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete user")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperr.NotFoundf("user %d", id)
	}

	return nil
}
