package service

import (
	"shift-roster/internal/apperr"
	"shift-roster/internal/models"
	"shift-roster/internal/repository"

	"github.com/sirupsen/logrus"
)

type NotificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *logrus.Logger
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           newLogger(),
	}
}

// Enqueue persists a notification for later delivery by the
// dispatcher. Callers on best-effort paths log and swallow the error.
func (s *NotificationService) Enqueue(userID uint, title, message string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// EnqueueBatch persists one notification per target user as a single
// insert, the fan-out shape broadcasts use.
func (s *NotificationService) EnqueueBatch(userIDs []uint, title, message string) ([]*models.Notification, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, &models.Notification{
			UserID:  userID,
			Title:   title,
			Message: message,
		})
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (s *NotificationService) FindByUser(userID uint, isRead *bool) ([]*models.Notification, error) {
	return s.notificationRepo.GetByUser(userID, isRead)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

func (s *NotificationService) FindOne(id uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, apperr.NotFoundf("notification %d", id)
	}
	return notification, nil
}

func (s *NotificationService) MarkAsRead(id uint) (*models.Notification, error) {
	notification, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	notification.IsRead = true
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (s *NotificationService) MarkAsSent(id uint) (*models.Notification, error) {
	notification, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	notification.IsSent = true
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (s *NotificationService) MarkAllAsRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

func (s *NotificationService) Remove(id uint) error {
	return s.notificationRepo.DeleteByID(id)
}
