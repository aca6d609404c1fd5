package notify

import (
	"time"

	"shift-roster/internal/repository"

	"github.com/sirupsen/logrus"
)

const batchSize = 100

// Sender delivers one message to a chat. Satisfied by
// pkg/telegram.Client.
type Sender interface {
	Send(chatID int64, title, message string) error
}

// Dispatcher drains unsent notification rows and delivers them.
// Delivery is best-effort: a failed send is logged and retried on the
// next poll, and users without a known chat are skipped. Core
// operations never wait on it.
type Dispatcher struct {
	sender           Sender
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	interval         time.Duration
	logger           *logrus.Logger
}

func NewDispatcher(
	sender Sender,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	interval time.Duration,
) *Dispatcher {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Dispatcher{
		sender:           sender,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		interval:         interval,
		logger:           logger,
	}
}

// Run polls until stop closes.
func (d *Dispatcher) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.WithField("interval", d.interval.String()).Info("Notification dispatcher started")

	for {
		select {
		case <-stop:
			d.logger.Info("Notification dispatcher stopped")
			return
		case <-ticker.C:
			d.DispatchPending()
		}
	}
}

// DispatchPending delivers one batch of unsent notifications.
func (d *Dispatcher) DispatchPending() {
	notifications, err := d.notificationRepo.GetUnsent(batchSize)
	if err != nil {
		d.logger.WithError(err).Error("Failed to fetch unsent notifications")
		return
	}

	for _, notification := range notifications {
		user, err := d.userRepo.GetByID(notification.UserID)
		if err != nil {
			d.logger.WithError(err).WithField("notification_id", notification.ID).
				Error("Failed to resolve notification target")
			continue
		}

		if user == nil || user.ChatID == 0 {
			// No delivery channel yet; the row stays queued.
			d.logger.WithField("notification_id", notification.ID).
				Debug("Notification target has no chat, skipping")
			continue
		}

		if err := d.sender.Send(user.ChatID, notification.Title, notification.Message); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"notification_id": notification.ID,
				"user_id":         notification.UserID,
			}).Warn("Failed to deliver notification, will retry")
			continue
		}

		notification.IsSent = true
		if err := d.notificationRepo.Update(notification); err != nil {
			d.logger.WithError(err).WithField("notification_id", notification.ID).
				Error("Failed to mark notification sent")
		}
	}
}
