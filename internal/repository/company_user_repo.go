package repository

import (
	"errors"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompanyUserRepository interface {
	Create(companyUser *models.CompanyUser) error
	Update(companyUser *models.CompanyUser) error
	GetByID(id uint) (*models.CompanyUser, error)
	GetByUserAndCompany(userID, companyID uint) (*models.CompanyUser, error)
	GetActiveAdmin(userID, companyID uint) (*models.CompanyUser, error)
	GetActiveMember(userID, companyID uint) (*models.CompanyUser, error)
	GetByUser(userID uint) ([]*models.CompanyUser, error)
	GetAdminsByCompany(companyID uint) ([]*models.CompanyUser, error)
	GetActiveByCompany(companyID uint) ([]*models.CompanyUser, error)
	GetActiveByCompanyJob(companyID uint, jobTitle string, jobType *string) ([]*models.CompanyUser, error)
	GetAll() ([]*models.CompanyUser, error)
	DeleteByID(id uint) error
	WithTx(tx *gorm.DB) CompanyUserRepository
}

type GormCompanyUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormCompanyUserRepository(db *gorm.DB) (*GormCompanyUserRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.CompanyUser{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate company_users table")
		return nil, err
	}

	return &GormCompanyUserRepository{db: db, logger: logger}, nil
}

func (r *GormCompanyUserRepository) WithTx(tx *gorm.DB) CompanyUserRepository {
	return &GormCompanyUserRepository{db: tx, logger: r.logger}
}

func (r *GormCompanyUserRepository) Create(companyUser *models.CompanyUser) error {
	result := r.db.Create(companyUser)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create company user")
		return translateError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":         companyUser.ID,
		"user_id":    companyUser.UserID,
		"company_id": companyUser.CompanyID,
		"role":       companyUser.Role,
	}).Info("Company user created")
	return nil
}

func (r *GormCompanyUserRepository) Update(companyUser *models.CompanyUser) error {
	result := r.db.Save(companyUser)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update company user")
		return translateError(result.Error)
	}
	return nil
}

func (r *GormCompanyUserRepository) GetByID(id uint) (*models.CompanyUser, error) {
	var companyUser models.CompanyUser
	result := r.db.First(&companyUser, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Company user not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company user by ID")
		return nil, result.Error
	}

	return &companyUser, nil
}

func (r *GormCompanyUserRepository) GetByUserAndCompany(userID, companyID uint) (*models.CompanyUser, error) {
	var companyUser models.CompanyUser
	result := r.db.Where("user_id = ? AND company_id = ?", userID, companyID).First(&companyUser)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company user by user and company")
		return nil, result.Error
	}

	return &companyUser, nil
}

// GetActiveAdmin returns the membership only when the user is an active
// admin of the company.
func (r *GormCompanyUserRepository) GetActiveAdmin(userID, companyID uint) (*models.CompanyUser, error) {
	var companyUser models.CompanyUser
	result := r.db.
		Where("user_id = ? AND company_id = ? AND role = ? AND is_active = ?",
			userID, companyID, models.RoleAdmin, true).
		First(&companyUser)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get active admin")
		return nil, result.Error
	}

	return &companyUser, nil
}

func (r *GormCompanyUserRepository) GetActiveMember(userID, companyID uint) (*models.CompanyUser, error) {
	var companyUser models.CompanyUser
	result := r.db.
		Where("user_id = ? AND company_id = ? AND is_active = ?", userID, companyID, true).
		First(&companyUser)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get active member")
		return nil, result.Error
	}

	return &companyUser, nil
}

// GetByUser returns the user's full membership history, active rows
// first, newest first within each group.
func (r *GormCompanyUserRepository) GetByUser(userID uint) ([]*models.CompanyUser, error) {
	var companyUsers []*models.CompanyUser
	result := r.db.
		Where("user_id = ?", userID).
		Order("is_active DESC, created_at DESC").
		Find(&companyUsers)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company users by user")
		return nil, result.Error
	}

	return companyUsers, nil
}

func (r *GormCompanyUserRepository) GetAdminsByCompany(companyID uint) ([]*models.CompanyUser, error) {
	var admins []*models.CompanyUser
	result := r.db.
		Where("company_id = ? AND role = ? AND is_active = ?", companyID, models.RoleAdmin, true).
		Find(&admins)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company admins")
		return nil, result.Error
	}

	return admins, nil
}

// GetActiveByCompany orders members admin, manager, employee, then
// newest first.
func (r *GormCompanyUserRepository) GetActiveByCompany(companyID uint) ([]*models.CompanyUser, error) {
	var members []*models.CompanyUser
	result := r.db.
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("CASE role WHEN 'admin' THEN 0 WHEN 'manager' THEN 1 ELSE 2 END, created_at DESC").
		Find(&members)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get active company members")
		return nil, result.Error
	}

	return members, nil
}

// GetActiveByCompanyJob selects the broadcast targets for a shift
// advert: active members matching the job title and, when given, the
// job type.
func (r *GormCompanyUserRepository) GetActiveByCompanyJob(companyID uint, jobTitle string, jobType *string) ([]*models.CompanyUser, error) {
	query := r.db.Where("company_id = ? AND is_active = ? AND job_title = ?", companyID, true, jobTitle)
	if jobType != nil {
		query = query.Where("job_type = ?", *jobType)
	}

	var members []*models.CompanyUser
	result := query.Find(&members)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company members by job")
		return nil, result.Error
	}

	return members, nil
}

func (r *GormCompanyUserRepository) GetAll() ([]*models.CompanyUser, error) {
	var companyUsers []*models.CompanyUser
	result := r.db.Find(&companyUsers)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company users")
		return nil, result.Error
	}
	return companyUsers, nil
}

func (r *GormCompanyUserRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.CompanyUser{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete company user")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Company user not found for deletion")
		return apperr.NotFoundf("company user %d", id)
	}

	return nil
}
