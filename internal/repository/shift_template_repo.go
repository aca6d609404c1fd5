package repository

import (
	"errors"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ShiftTemplateRepository interface {
	Create(template *models.ShiftTemplate) error
	Update(template *models.ShiftTemplate) error
	GetByID(id uint) (*models.ShiftTemplate, error)
	GetByCompanyID(companyID uint) ([]*models.ShiftTemplate, error)
	GetAll() ([]*models.ShiftTemplate, error)
	DeleteByID(id uint) error
	WithTx(tx *gorm.DB) ShiftTemplateRepository
}

type GormShiftTemplateRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftTemplateRepository(db *gorm.DB) (*GormShiftTemplateRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.ShiftTemplate{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_templates table")
		return nil, err
	}

	return &GormShiftTemplateRepository{db: db, logger: logger}, nil
}

func (r *GormShiftTemplateRepository) WithTx(tx *gorm.DB) ShiftTemplateRepository {
	return &GormShiftTemplateRepository{db: tx, logger: r.logger}
}

func (r *GormShiftTemplateRepository) Create(template *models.ShiftTemplate) error {
	result := r.db.Create(template)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create shift template")
		return translateError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":         template.ID,
		"company_id": template.CompanyID,
		"name":       template.Name,
	}).Info("Shift template created")
	return nil
}

func (r *GormShiftTemplateRepository) Update(template *models.ShiftTemplate) error {
	result := r.db.Save(template)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update shift template")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormShiftTemplateRepository) GetByID(id uint) (*models.ShiftTemplate, error) {
	var template models.ShiftTemplate
	result := r.db.First(&template, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Shift template not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift template by ID")
		return nil, result.Error
	}

	return &template, nil
}

func (r *GormShiftTemplateRepository) GetByCompanyID(companyID uint) ([]*models.ShiftTemplate, error) {
	var templates []*models.ShiftTemplate
	result := r.db.Where("company_id = ?", companyID).Order("name").Find(&templates)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift templates by company")
		return nil, result.Error
	}
	return templates, nil
}

func (r *GormShiftTemplateRepository) GetAll() ([]*models.ShiftTemplate, error) {
	var templates []*models.ShiftTemplate
	result := r.db.Order("company_id, name").Find(&templates)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift templates")
		return nil, result.Error
	}
	return templates, nil
}

func (r *GormShiftTemplateRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.ShiftTemplate{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete shift template")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Shift template not found for deletion")
		return apperr.NotFoundf("shift template %d", id)
	}

	return nil
}
