package repository

import (
	"errors"
	"time"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ShiftAdvertFilter narrows List results. Nil fields are skipped.
type ShiftAdvertFilter struct {
	CompanyID *uint
	Status    *string
	JobTitle  *string
	JobType   *string
	From      *time.Time
	To        *time.Time
}

type ShiftAdvertRepository interface {
	Create(advert *models.ShiftAdvert) error
	Update(advert *models.ShiftAdvert) error
	GetByID(id uint) (*models.ShiftAdvert, error)
	List(filter ShiftAdvertFilter) ([]*models.ShiftAdvert, error)
	GetByLocation(locationID uint, from, to *time.Time) ([]*models.ShiftAdvert, error)
	DeleteByID(id uint) error
	WithTx(tx *gorm.DB) ShiftAdvertRepository
}

type GormShiftAdvertRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftAdvertRepository(db *gorm.DB) (*GormShiftAdvertRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.ShiftAdvert{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_adverts table")
		return nil, err
	}

	return &GormShiftAdvertRepository{db: db, logger: logger}, nil
}

func (r *GormShiftAdvertRepository) WithTx(tx *gorm.DB) ShiftAdvertRepository {
	return &GormShiftAdvertRepository{db: tx, logger: r.logger}
}

func (r *GormShiftAdvertRepository) Create(advert *models.ShiftAdvert) error {
	result := r.db.Create(advert)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create shift advert")
		return translateError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":         advert.ID,
		"company_id": advert.CompanyID,
		"job_title":  advert.JobTitle,
		"duty_date":  advert.DutyDate.Format("2006-01-02"),
	}).Info("Shift advert created")
	return nil
}

func (r *GormShiftAdvertRepository) Update(advert *models.ShiftAdvert) error {
	result := r.db.Save(advert)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update shift advert")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormShiftAdvertRepository) GetByID(id uint) (*models.ShiftAdvert, error) {
	var advert models.ShiftAdvert
	result := r.db.First(&advert, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Shift advert not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift advert by ID")
		return nil, result.Error
	}

	return &advert, nil
}

func (r *GormShiftAdvertRepository) List(filter ShiftAdvertFilter) ([]*models.ShiftAdvert, error) {
	var adverts []*models.ShiftAdvert

	query := r.db.Model(&models.ShiftAdvert{})
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.JobTitle != nil {
		query = query.Where("job_title = ?", *filter.JobTitle)
	}
	if filter.JobType != nil {
		query = query.Where("job_type = ?", *filter.JobType)
	}
	if filter.From != nil {
		query = query.Where("duty_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("duty_date <= ?", *filter.To)
	}

	result := query.Order("duty_date ASC").Find(&adverts)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list shift adverts")
		return nil, result.Error
	}

	return adverts, nil
}

func (r *GormShiftAdvertRepository) GetByLocation(locationID uint, from, to *time.Time) ([]*models.ShiftAdvert, error) {
	var adverts []*models.ShiftAdvert

	query := r.db.Where("location_id = ?", locationID)
	if from != nil {
		query = query.Where("duty_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("duty_date <= ?", *to)
	}

	result := query.Order("duty_date ASC").Find(&adverts)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift adverts by location")
		return nil, result.Error
	}

	return adverts, nil
}

func (r *GormShiftAdvertRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.ShiftAdvert{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete shift advert")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Shift advert not found for deletion")
		return apperr.NotFoundf("shift advert %d", id)
	}

	return nil
}
