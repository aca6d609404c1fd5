package service

import (
	"time"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"
	"shift-roster/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Default audit reasons, used when the caller gives none.
const (
	reasonRoleTransfer = "Admin role transfer"
	reasonAdminLeaving = "Admin leaving company"
)

// CreateCompanyUserInput adds a worker to a company.
type CreateCompanyUserInput struct {
	UserID      uint
	CompanyID   uint
	Role        string
	JobTitle    string
	JobType     *string
	IsActive    *bool
	IsRequested *bool
}

// UpdateCompanyUserInput patches a membership; nil fields stay
// untouched.
type UpdateCompanyUserInput struct {
	Role        *string
	JobTitle    *string
	JobType     *string
	IsActive    *bool
	IsRequested *bool
}

type CompanyUserService struct {
	db              *gorm.DB
	companyUserRepo repository.CompanyUserRepository
	transferRepo    repository.AdminTransferRepository
	logger          *logrus.Logger
}

func NewCompanyUserService(
	db *gorm.DB,
	companyUserRepo repository.CompanyUserRepository,
	transferRepo repository.AdminTransferRepository,
) *CompanyUserService {
	return &CompanyUserService{
		db:              db,
		companyUserRepo: companyUserRepo,
		transferRepo:    transferRepo,
		logger:          newLogger(),
	}
}

func (s *CompanyUserService) Create(input CreateCompanyUserInput) (*models.CompanyUser, error) {
	role := input.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if !models.IsValidRole(role) {
		return nil, apperr.InvalidStatef("unknown company role %q", role)
	}

	companyUser := &models.CompanyUser{
		UserID:    input.UserID,
		CompanyID: input.CompanyID,
		Role:      role,
		JobTitle:  input.JobTitle,
		JobType:   input.JobType,
		IsActive:  true,
	}
	if input.IsActive != nil {
		companyUser.IsActive = *input.IsActive
	}
	if input.IsRequested != nil {
		companyUser.IsRequested = *input.IsRequested
	}

	if err := s.companyUserRepo.Create(companyUser); err != nil {
		return nil, err
	}

	return companyUser, nil
}

// LeaveCompany deactivates a regular membership. Admins are rejected:
// the single-admin invariant means they must hand the role off first
// via TransferAdminRole or AdminLeaveCompany.
func (s *CompanyUserService) LeaveCompany(userID, companyID uint) (*models.CompanyUser, error) {
	companyUser, err := s.companyUserRepo.GetByUserAndCompany(userID, companyID)
	if err != nil {
		return nil, err
	}
	if companyUser == nil || !companyUser.IsActive {
		return nil, apperr.InvalidStatef("user is not an active member of this company")
	}
	if companyUser.IsAdmin() {
		return nil, apperr.InvalidStatef("admin must transfer role before leaving")
	}

	now := time.Now()
	companyUser.IsActive = false
	companyUser.LeftAt = &now

	if err := s.companyUserRepo.Update(companyUser); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"company_id": companyID,
	}).Info("User left company")

	return companyUser, nil
}

// TransferAdminRole demotes the current admin to manager, promotes the
// successor and appends an audit row, all in one transaction, so the
// company can never be observed with zero or two persisted admins.
func (s *CompanyUserService) TransferAdminRole(currentAdminUserID, newAdminUserID, companyID uint, reason string) (*models.AdminTransfer, error) {
	if currentAdminUserID == newAdminUserID {
		return nil, apperr.InvalidStatef("cannot transfer admin role to yourself")
	}
	if reason == "" {
		reason = reasonRoleTransfer
	}

	var transfer *models.AdminTransfer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		companyUserRepo := s.companyUserRepo.WithTx(tx)

		currentAdmin, err := companyUserRepo.GetActiveAdmin(currentAdminUserID, companyID)
		if err != nil {
			return err
		}
		if currentAdmin == nil {
			return apperr.InvalidStatef("current user is not an active admin of this company")
		}

		newAdmin, err := companyUserRepo.GetActiveMember(newAdminUserID, companyID)
		if err != nil {
			return err
		}
		if newAdmin == nil {
			return apperr.InvalidStatef("new admin must be an active member of the company")
		}

		currentAdmin.Role = models.RoleManager
		if err := companyUserRepo.Update(currentAdmin); err != nil {
			return err
		}

		newAdmin.Role = models.RoleAdmin
		if err := companyUserRepo.Update(newAdmin); err != nil {
			return err
		}

		transfer = &models.AdminTransfer{
			CompanyID:         companyID,
			FromCompanyUserID: currentAdmin.ID,
			ToCompanyUserID:   newAdmin.ID,
			Reason:            reason,
		}
		return s.transferRepo.WithTx(tx).Create(transfer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"from_user":  currentAdminUserID,
		"to_user":    newAdminUserID,
	}).Info("Admin role transferred")

	return transfer, nil
}

// AdminLeaveCompany is transfer-and-leave in one transaction: promote
// the successor, record the audit row, then demote the leaving admin to
// employee and deactivate them. The company holds exactly one active
// admin at every committed state.
func (s *CompanyUserService) AdminLeaveCompany(adminUserID, newAdminUserID, companyID uint, reason string) (*models.AdminTransfer, error) {
	if adminUserID == newAdminUserID {
		return nil, apperr.InvalidStatef("cannot transfer admin role to yourself")
	}
	if reason == "" {
		reason = reasonAdminLeaving
	}

	var transfer *models.AdminTransfer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		companyUserRepo := s.companyUserRepo.WithTx(tx)

		adminUser, err := companyUserRepo.GetActiveAdmin(adminUserID, companyID)
		if err != nil {
			return err
		}
		if adminUser == nil {
			return apperr.InvalidStatef("user is not an active admin of this company")
		}

		newAdmin, err := companyUserRepo.GetActiveMember(newAdminUserID, companyID)
		if err != nil {
			return err
		}
		if newAdmin == nil {
			return apperr.InvalidStatef("cannot find an active member to transfer admin role to")
		}

		newAdmin.Role = models.RoleAdmin
		if err := companyUserRepo.Update(newAdmin); err != nil {
			return err
		}

		transfer = &models.AdminTransfer{
			CompanyID:         companyID,
			FromCompanyUserID: adminUser.ID,
			ToCompanyUserID:   newAdmin.ID,
			Reason:            reason,
		}
		if err := s.transferRepo.WithTx(tx).Create(transfer); err != nil {
			return err
		}

		now := time.Now()
		adminUser.Role = models.RoleEmployee
		adminUser.IsActive = false
		adminUser.LeftAt = &now
		return companyUserRepo.Update(adminUser)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"from_user":  adminUserID,
		"to_user":    newAdminUserID,
	}).Info("Admin transferred role and left company")

	return transfer, nil
}

// RejoinCompany reactivates a previously-left membership row. The
// IsRequested flag signals that the rejoin still needs admin approval;
// approval mechanics live outside this core.
func (s *CompanyUserService) RejoinCompany(userID, companyID uint) (*models.CompanyUser, error) {
	companyUser, err := s.companyUserRepo.GetByUserAndCompany(userID, companyID)
	if err != nil {
		return nil, err
	}
	if companyUser == nil {
		return nil, apperr.InvalidStatef("no previous membership found, join as a new member instead")
	}
	if companyUser.IsActive {
		return nil, apperr.InvalidStatef("user is already an active member of this company")
	}

	companyUser.IsActive = true
	companyUser.LeftAt = nil
	companyUser.IsRequested = true

	if err := s.companyUserRepo.Update(companyUser); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"company_id": companyID,
	}).Info("User rejoined company")

	return companyUser, nil
}

// UserCompanyHistory lists all memberships of a user, active first.
func (s *CompanyUserService) UserCompanyHistory(userID uint) ([]*models.CompanyUser, error) {
	return s.companyUserRepo.GetByUser(userID)
}

// AdminTransferHistory is the company's audit trail, newest first.
func (s *CompanyUserService) AdminTransferHistory(companyID uint) ([]*models.AdminTransfer, error) {
	return s.transferRepo.GetByCompany(companyID)
}

func (s *CompanyUserService) CompanyAdmins(companyID uint) ([]*models.CompanyUser, error) {
	return s.companyUserRepo.GetAdminsByCompany(companyID)
}

func (s *CompanyUserService) ActiveCompanyMembers(companyID uint) ([]*models.CompanyUser, error) {
	return s.companyUserRepo.GetActiveByCompany(companyID)
}

func (s *CompanyUserService) FindOne(id uint) (*models.CompanyUser, error) {
	companyUser, err := s.companyUserRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if companyUser == nil {
		return nil, apperr.NotFoundf("company user %d", id)
	}
	return companyUser, nil
}

func (s *CompanyUserService) FindAll() ([]*models.CompanyUser, error) {
	return s.companyUserRepo.GetAll()
}

func (s *CompanyUserService) Update(id uint, input UpdateCompanyUserInput) (*models.CompanyUser, error) {
	companyUser, err := s.companyUserRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if companyUser == nil {
		return nil, apperr.NotFoundf("company user %d", id)
	}

	if input.Role != nil {
		if !models.IsValidRole(*input.Role) {
			return nil, apperr.InvalidStatef("unknown company role %q", *input.Role)
		}
		companyUser.Role = *input.Role
	}
	if input.JobTitle != nil {
		companyUser.JobTitle = *input.JobTitle
	}
	if input.JobType != nil {
		companyUser.JobType = input.JobType
	}
	if input.IsActive != nil {
		companyUser.IsActive = *input.IsActive
	}
	if input.IsRequested != nil {
		companyUser.IsRequested = *input.IsRequested
	}

	if err := s.companyUserRepo.Update(companyUser); err != nil {
		return nil, err
	}

	return companyUser, nil
}

func (s *CompanyUserService) Remove(id uint) error {
	return s.companyUserRepo.DeleteByID(id)
}
