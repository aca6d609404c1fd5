package repository

import (
	"errors"
	"time"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DutyHoursStats aggregates rosters over an optional duty-date window.
type DutyHoursStats struct {
	RosterCount           int64
	TotalScheduledMinutes int64
	TotalActualMinutes    int64
}

type RosterRepository interface {
	Create(roster *models.Roster) error
	CreateBatch(rosters []*models.Roster) error
	Update(roster *models.Roster) error
	GetByID(id uint) (*models.Roster, error)
	GetByShiftAdvertID(shiftAdvertID uint) (*models.Roster, error)
	GetAll() ([]*models.Roster, error)
	SetActualMinutes(id uint, minutes *int) error
	StatsByCompany(companyID uint, from, to *time.Time) (*DutyHoursStats, error)
	StatsByCompanyUser(companyUserID uint, from, to *time.Time) (*DutyHoursStats, error)
	DeleteByID(id uint) error
	WithTx(tx *gorm.DB) RosterRepository
}

type GormRosterRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormRosterRepository(db *gorm.DB) (*GormRosterRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Roster{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate rosters table")
		return nil, err
	}

	return &GormRosterRepository{db: db, logger: logger}, nil
}

// WithTx rebinds the repository onto a transaction handle.
func (r *GormRosterRepository) WithTx(tx *gorm.DB) RosterRepository {
	return &GormRosterRepository{db: tx, logger: r.logger}
}

func (r *GormRosterRepository) Create(roster *models.Roster) error {
	result := r.db.Create(roster)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create roster")
		return translateError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":              roster.ID,
		"company_user_id": roster.CompanyUserID,
		"duty_date":       roster.DutyDate.Format("2006-01-02"),
	}).Info("Roster created")
	return nil
}

// CreateBatch inserts all rosters as one batch; a failure on any row
// rolls back the whole insert.
func (r *GormRosterRepository) CreateBatch(rosters []*models.Roster) error {
	if len(rosters) == 0 {
		return nil
	}

	result := r.db.Create(&rosters)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create roster batch")
		return translateError(result.Error)
	}

	r.logger.WithField("count", len(rosters)).Info("Roster batch created")
	return nil
}

func (r *GormRosterRepository) Update(roster *models.Roster) error {
	result := r.db.Save(roster)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update roster")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormRosterRepository) GetByID(id uint) (*models.Roster, error) {
	var roster models.Roster
	result := r.db.First(&roster, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Roster not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get roster by ID")
		return nil, result.Error
	}

	return &roster, nil
}

func (r *GormRosterRepository) GetByShiftAdvertID(shiftAdvertID uint) (*models.Roster, error) {
	var roster models.Roster
	result := r.db.Where("shift_advert_id = ?", shiftAdvertID).First(&roster)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get roster by shift advert ID")
		return nil, result.Error
	}

	return &roster, nil
}

func (r *GormRosterRepository) GetAll() ([]*models.Roster, error) {
	var rosters []*models.Roster
	result := r.db.Order("duty_date DESC").Find(&rosters)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get rosters")
		return nil, result.Error
	}
	return rosters, nil
}

// SetActualMinutes writes the attendance-derived aggregate. Minutes may
// be nil to clear a stale value.
func (r *GormRosterRepository) SetActualMinutes(id uint, minutes *int) error {
	result := r.db.Model(&models.Roster{}).Where("id = ?", id).Update("actual_minutes", minutes)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to set roster actual minutes")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperr.NotFoundf("roster %d", id)
	}

	return nil
}

func (r *GormRosterRepository) StatsByCompany(companyID uint, from, to *time.Time) (*DutyHoursStats, error) {
	return r.stats("company_id = ?", companyID, from, to)
}

func (r *GormRosterRepository) StatsByCompanyUser(companyUserID uint, from, to *time.Time) (*DutyHoursStats, error) {
	return r.stats("company_user_id = ?", companyUserID, from, to)
}

func (r *GormRosterRepository) stats(cond string, id uint, from, to *time.Time) (*DutyHoursStats, error) {
	var data struct {
		Count     int64
		Scheduled int64
		Actual    int64
	}

	query := r.db.Model(&models.Roster{}).
		Select("COUNT(*) as count, COALESCE(SUM(scheduled_minutes), 0) as scheduled, COALESCE(SUM(actual_minutes), 0) as actual").
		Where(cond, id)

	if from != nil {
		query = query.Where("duty_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("duty_date <= ?", *to)
	}

	if result := query.Scan(&data); result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get roster stats")
		return nil, result.Error
	}

	return &DutyHoursStats{
		RosterCount:           data.Count,
		TotalScheduledMinutes: data.Scheduled,
		TotalActualMinutes:    data.Actual,
	}, nil
}

func (r *GormRosterRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.Roster{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete roster")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Roster not found for deletion")
		return apperr.NotFoundf("roster %d", id)
	}

	return nil
}
