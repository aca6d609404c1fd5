package repository

import (
	"errors"

	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShiftAdvertResponseRepository interface {
	Upsert(response *models.ShiftAdvertResponse) error
	Update(response *models.ShiftAdvertResponse) error
	GetByAdvertAndResponder(shiftAdvertID, companyUserID uint) (*models.ShiftAdvertResponse, error)
	GetByAdvert(shiftAdvertID uint) ([]*models.ShiftAdvertResponse, error)
	GetWillingByAdvert(shiftAdvertID uint) ([]*models.ShiftAdvertResponse, error)
	WithTx(tx *gorm.DB) ShiftAdvertResponseRepository
}

type GormShiftAdvertResponseRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftAdvertResponseRepository(db *gorm.DB) (*GormShiftAdvertResponseRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.ShiftAdvertResponse{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_advert_responses table")
		return nil, err
	}

	return &GormShiftAdvertResponseRepository{db: db, logger: logger}, nil
}

func (r *GormShiftAdvertResponseRepository) WithTx(tx *gorm.DB) ShiftAdvertResponseRepository {
	return &GormShiftAdvertResponseRepository{db: tx, logger: r.logger}
}

// Upsert inserts the response or, when the (advert, responder) row
// already exists, overwrites its value and responded-at timestamp. The
// worker may change their mind while the advert stays open.
func (r *GormShiftAdvertResponseRepository) Upsert(response *models.ShiftAdvertResponse) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "shift_advert_id"},
			{Name: "company_user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"response", "responded_at"}),
	}).Create(response)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to upsert shift advert response")
		return translateError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"shift_advert_id": response.ShiftAdvertID,
		"company_user_id": response.CompanyUserID,
		"response":        response.Response,
	}).Info("Shift advert response recorded")
	return nil
}

func (r *GormShiftAdvertResponseRepository) Update(response *models.ShiftAdvertResponse) error {
	result := r.db.Save(response)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update shift advert response")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormShiftAdvertResponseRepository) GetByAdvertAndResponder(shiftAdvertID, companyUserID uint) (*models.ShiftAdvertResponse, error) {
	var response models.ShiftAdvertResponse
	result := r.db.
		Where("shift_advert_id = ? AND company_user_id = ?", shiftAdvertID, companyUserID).
		First(&response)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift advert response")
		return nil, result.Error
	}

	return &response, nil
}

func (r *GormShiftAdvertResponseRepository) GetByAdvert(shiftAdvertID uint) ([]*models.ShiftAdvertResponse, error) {
	var responses []*models.ShiftAdvertResponse
	result := r.db.
		Where("shift_advert_id = ?", shiftAdvertID).
		Order("responded_at DESC").
		Find(&responses)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get responses by advert")
		return nil, result.Error
	}

	return responses, nil
}

// GetWillingByAdvert returns WILLING responses oldest first, the order
// an operator picks a candidate in.
func (r *GormShiftAdvertResponseRepository) GetWillingByAdvert(shiftAdvertID uint) ([]*models.ShiftAdvertResponse, error) {
	var responses []*models.ShiftAdvertResponse
	result := r.db.
		Where("shift_advert_id = ? AND response = ?", shiftAdvertID, models.ResponseWilling).
		Order("responded_at ASC").
		Find(&responses)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get willing responses by advert")
		return nil, result.Error
	}

	return responses, nil
}
