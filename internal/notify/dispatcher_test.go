package notify

import (
	"errors"
	"testing"
	"time"

	"shift-roster/internal/models"
	"shift-roster/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeSender struct {
	sent   []sentMessage
	failOn map[int64]bool
}

type sentMessage struct {
	chatID  int64
	title   string
	message string
}

func (f *fakeSender) Send(chatID int64, title, message string) error {
	if f.failOn[chatID] {
		return errors.New("telegram unavailable")
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, title: title, message: message})
	return nil
}

type dispatcherFixture struct {
	sender           *fakeSender
	dispatcher       *Dispatcher
	userRepo         *repository.GormUserRepository
	notificationRepo *repository.GormNotificationRepository
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	userRepo, err := repository.NewGormUserRepository(db)
	require.NoError(t, err)
	notificationRepo, err := repository.NewGormNotificationRepository(db)
	require.NoError(t, err)

	sender := &fakeSender{failOn: map[int64]bool{}}

	return &dispatcherFixture{
		sender:           sender,
		dispatcher:       NewDispatcher(sender, notificationRepo, userRepo, time.Second),
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (f *dispatcherFixture) seed(t *testing.T, chatID int64, title string) *models.Notification {
	t.Helper()

	user := &models.User{ChatID: chatID, FirstName: "Test"}
	require.NoError(t, f.userRepo.Create(user))

	notification := &models.Notification{UserID: user.ID, Title: title, Message: "hello"}
	require.NoError(t, f.notificationRepo.Create(notification))
	return notification
}

func TestDispatchPendingDeliversAndMarksSent(t *testing.T) {
	f := newDispatcherFixture(t)
	notification := f.seed(t, 1001, "Shift assigned")

	f.dispatcher.DispatchPending()

	require.Len(t, f.sender.sent, 1)
	require.Equal(t, int64(1001), f.sender.sent[0].chatID)
	require.Equal(t, "Shift assigned", f.sender.sent[0].title)

	reloaded, err := f.notificationRepo.GetByID(notification.ID)
	require.NoError(t, err)
	require.True(t, reloaded.IsSent)

	// Nothing left to deliver on the next poll.
	f.dispatcher.DispatchPending()
	require.Len(t, f.sender.sent, 1)
}

func TestDispatchPendingSkipsChatlessUsers(t *testing.T) {
	f := newDispatcherFixture(t)
	notification := f.seed(t, 0, "New shift advert")

	f.dispatcher.DispatchPending()

	require.Empty(t, f.sender.sent)

	// The row stays queued until the user links a chat.
	reloaded, err := f.notificationRepo.GetByID(notification.ID)
	require.NoError(t, err)
	require.False(t, reloaded.IsSent)
}

func TestDispatchPendingRetriesFailedSends(t *testing.T) {
	f := newDispatcherFixture(t)
	notification := f.seed(t, 1001, "Shift assigned")
	f.sender.failOn[1001] = true

	f.dispatcher.DispatchPending()
	require.Empty(t, f.sender.sent)

	reloaded, err := f.notificationRepo.GetByID(notification.ID)
	require.NoError(t, err)
	require.False(t, reloaded.IsSent)

	delete(f.sender.failOn, 1001)
	f.dispatcher.DispatchPending()
	require.Len(t, f.sender.sent, 1)

	reloaded, err = f.notificationRepo.GetByID(notification.ID)
	require.NoError(t, err)
	require.True(t, reloaded.IsSent)
}

func TestDispatchPendingDeliversOldestFirst(t *testing.T) {
	f := newDispatcherFixture(t)
	f.seed(t, 2001, "first")
	time.Sleep(5 * time.Millisecond)
	f.seed(t, 2002, "second")

	f.dispatcher.DispatchPending()

	require.Len(t, f.sender.sent, 2)
	require.Equal(t, "first", f.sender.sent[0].title)
	require.Equal(t, "second", f.sender.sent[1].title)
}
