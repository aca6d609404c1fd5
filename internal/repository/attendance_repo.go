package repository

import (
	"errors"
	"time"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(attendance *models.Attendance) error
	Update(attendance *models.Attendance) error
	GetByID(id uint) (*models.Attendance, error)
	GetByRosterID(rosterID uint) (*models.Attendance, error)
	GetByCompanyUser(companyUserID uint, from, to *time.Time) ([]*models.Attendance, error)
	GetAll() ([]*models.Attendance, error)
	DeleteByID(id uint) error
	WithTx(tx *gorm.DB) AttendanceRepository
}

type GormAttendanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRepository(db *gorm.DB) (*GormAttendanceRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Attendance{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendances table")
		return nil, err
	}

	return &GormAttendanceRepository{db: db, logger: logger}, nil
}

func (r *GormAttendanceRepository) WithTx(tx *gorm.DB) AttendanceRepository {
	return &GormAttendanceRepository{db: tx, logger: r.logger}
}

func (r *GormAttendanceRepository) Create(attendance *models.Attendance) error {
	result := r.db.Create(attendance)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create attendance")
		return translateError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":        attendance.ID,
		"roster_id": attendance.RosterID,
	}).Info("Attendance created")
	return nil
}

func (r *GormAttendanceRepository) Update(attendance *models.Attendance) error {
	result := r.db.Save(attendance)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update attendance")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormAttendanceRepository) GetByID(id uint) (*models.Attendance, error) {
	var attendance models.Attendance
	result := r.db.First(&attendance, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Attendance not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance by ID")
		return nil, result.Error
	}

	return &attendance, nil
}

func (r *GormAttendanceRepository) GetByRosterID(rosterID uint) (*models.Attendance, error) {
	var attendance models.Attendance
	result := r.db.Where("roster_id = ?", rosterID).First(&attendance)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance by roster ID")
		return nil, result.Error
	}

	return &attendance, nil
}

// GetByCompanyUser joins through rosters so attendance can be filtered
// by the worker and an optional duty-date window.
func (r *GormAttendanceRepository) GetByCompanyUser(companyUserID uint, from, to *time.Time) ([]*models.Attendance, error) {
	var attendances []*models.Attendance

	query := r.db.
		Joins("JOIN rosters ON rosters.id = attendances.roster_id").
		Where("rosters.company_user_id = ?", companyUserID)

	if from != nil {
		query = query.Where("rosters.duty_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("rosters.duty_date <= ?", *to)
	}

	result := query.Order("rosters.duty_date DESC").Find(&attendances)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendances by company user")
		return nil, result.Error
	}

	return attendances, nil
}

func (r *GormAttendanceRepository) GetAll() ([]*models.Attendance, error) {
	var attendances []*models.Attendance
	result := r.db.Find(&attendances)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendances")
		return nil, result.Error
	}
	return attendances, nil
}

func (r *GormAttendanceRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.Attendance{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete attendance")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Attendance not found for deletion")
		return apperr.NotFoundf("attendance %d", id)
	}

	return nil
}
