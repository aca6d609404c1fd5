package repository

import (
	"errors"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	CreateBatch(notifications []*models.Notification) error
	Update(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	GetByUser(userID uint, isRead *bool) ([]*models.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkAllRead(userID uint) error
	GetUnsent(limit int) ([]*models.Notification, error)
	DeleteByID(id uint) error
	WithTx(tx *gorm.DB) NotificationRepository
}

type GormNotificationRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormNotificationRepository(db *gorm.DB) (*GormNotificationRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate notifications table")
		return nil, err
	}

	return &GormNotificationRepository{db: db, logger: logger}, nil
}

func (r *GormNotificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: tx, logger: r.logger}
}

func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	result := r.db.Create(notification)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create notification")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormNotificationRepository) CreateBatch(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	result := r.db.Create(&notifications)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create notification batch")
		return translateError(result.Error)
	}

	r.logger.WithField("count", len(notifications)).Debug("Notification batch created")
	return nil
}

func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	result := r.db.Save(notification)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update notification")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	result := r.db.First(&notification, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get notification by ID")
		return nil, result.Error
	}

	return &notification, nil
}

func (r *GormNotificationRepository) GetByUser(userID uint, isRead *bool) ([]*models.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}

	var notifications []*models.Notification
	result := query.Order("created_at DESC").Find(&notifications)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get notifications by user")
		return nil, result.Error
	}

	return notifications, nil
}

func (r *GormNotificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to count unread notifications")
		return 0, result.Error
	}

	return count, nil
}

func (r *GormNotificationRepository) MarkAllRead(userID uint) error {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to mark notifications read")
		return result.Error
	}

	return nil
}

// GetUnsent returns the oldest undelivered rows for the dispatcher.
func (r *GormNotificationRepository) GetUnsent(limit int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	result := r.db.
		Where("is_sent = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get unsent notifications")
		return nil, result.Error
	}

	return notifications, nil
}

func (r *GormNotificationRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.Notification{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete notification")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperr.NotFoundf("notification %d", id)
	}

	return nil
}
