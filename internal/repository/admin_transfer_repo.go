package repository

import (
	"shift-roster/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminTransferRepository is append-only: audit rows are never updated
// or deleted.
type AdminTransferRepository interface {
	Create(transfer *models.AdminTransfer) error
	GetByCompany(companyID uint) ([]*models.AdminTransfer, error)
	WithTx(tx *gorm.DB) AdminTransferRepository
}

type GormAdminTransferRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAdminTransferRepository(db *gorm.DB) (*GormAdminTransferRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.AdminTransfer{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate admin_transfers table")
		return nil, err
	}

	return &GormAdminTransferRepository{db: db, logger: logger}, nil
}

func (r *GormAdminTransferRepository) WithTx(tx *gorm.DB) AdminTransferRepository {
	return &GormAdminTransferRepository{db: tx, logger: r.logger}
}

func (r *GormAdminTransferRepository) Create(transfer *models.AdminTransfer) error {
	result := r.db.Create(transfer)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create admin transfer")
		return translateError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"company_id": transfer.CompanyID,
		"from":       transfer.FromCompanyUserID,
		"to":         transfer.ToCompanyUserID,
	}).Info("Admin transfer recorded")
	return nil
}

func (r *GormAdminTransferRepository) GetByCompany(companyID uint) ([]*models.AdminTransfer, error) {
	var transfers []*models.AdminTransfer
	result := r.db.
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&transfers)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get admin transfers by company")
		return nil, result.Error
	}

	return transfers, nil
}
