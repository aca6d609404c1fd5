package service

import (
	"testing"
	"time"

	"shift-roster/internal/models"
	"shift-roster/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database. A single connection keeps
// every session on the same in-memory store and serializes concurrent
// transactions the way a row-locking store would.
func newTestDB(t *testing.T) *gorm.DB {
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

	return db
}

type testEnv struct {
	db *gorm.DB

	userRepo         *repository.GormUserRepository
	templateRepo     *repository.GormShiftTemplateRepository
	rosterRepo       *repository.GormRosterRepository
	attendanceRepo   *repository.GormAttendanceRepository
	advertRepo       *repository.GormShiftAdvertRepository
	responseRepo     *repository.GormShiftAdvertResponseRepository
	companyUserRepo  *repository.GormCompanyUserRepository
	transferRepo     *repository.GormAdminTransferRepository
	notificationRepo *repository.GormNotificationRepository

	rosters       *RosterService
	attendance    *AttendanceService
	adverts       *ShiftAdvertService
	companyUsers  *CompanyUserService
	notifications *NotificationService
	templates     *ShiftTemplateService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{db: db}

	var err error
	env.userRepo, err = repository.NewGormUserRepository(db)
	require.NoError(t, err)
	env.templateRepo, err = repository.NewGormShiftTemplateRepository(db)
	require.NoError(t, err)
	env.rosterRepo, err = repository.NewGormRosterRepository(db)
	require.NoError(t, err)
	env.attendanceRepo, err = repository.NewGormAttendanceRepository(db)
	require.NoError(t, err)
	env.advertRepo, err = repository.NewGormShiftAdvertRepository(db)
	require.NoError(t, err)
	env.responseRepo, err = repository.NewGormShiftAdvertResponseRepository(db)
	require.NoError(t, err)
	env.companyUserRepo, err = repository.NewGormCompanyUserRepository(db)
	require.NoError(t, err)
	env.transferRepo, err = repository.NewGormAdminTransferRepository(db)
	require.NoError(t, err)
	env.notificationRepo, err = repository.NewGormNotificationRepository(db)
	require.NoError(t, err)

	env.rosters = NewRosterService(env.rosterRepo, env.templateRepo)
	env.attendance = NewAttendanceService(db, env.attendanceRepo, env.rosterRepo)
	env.adverts = NewShiftAdvertService(
		db,
		env.advertRepo,
		env.responseRepo,
		env.rosterRepo,
		env.templateRepo,
		env.companyUserRepo,
		env.notificationRepo,
	)
	env.companyUsers = NewCompanyUserService(db, env.companyUserRepo, env.transferRepo)
	env.notifications = NewNotificationService(env.notificationRepo)
	env.templates = NewShiftTemplateService(env.templateRepo)

	return env
}

func (env *testEnv) seedUser(t *testing.T, chatID int64) *models.User {
	t.Helper()

	user := &models.User{ChatID: chatID, FirstName: "Test"}
	require.NoError(t, env.userRepo.Create(user))
	return user
}

func (env *testEnv) seedMember(t *testing.T, userID, companyID uint, role, jobTitle string) *models.CompanyUser {
	t.Helper()

	member := &models.CompanyUser{
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		JobTitle:  jobTitle,
		IsActive:  true,
	}
	require.NoError(t, env.companyUserRepo.Create(member))
	return member
}

func (env *testEnv) seedTemplate(t *testing.T, companyID uint, start, end string, breakMinutes int) *models.ShiftTemplate {
	t.Helper()

	template := &models.ShiftTemplate{
		CompanyID:    companyID,
		Name:         "Day shift",
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakMinutes,
	}
	require.NoError(t, env.templateRepo.Create(template))
	return template
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}
