package service

import (
	"shift-roster/internal/apperr"
	"shift-roster/internal/models"
	"shift-roster/internal/repository"

	"github.com/sirupsen/logrus"
)

// CreateShiftTemplateInput defines a reusable shift shape. Times are
// "HH:MM"; an end at or before the start means a shift crossing
// midnight.
type CreateShiftTemplateInput struct {
	CompanyID    uint
	Name         string
	StartTime    string
	EndTime      string
	BreakMinutes int
}

type UpdateShiftTemplateInput struct {
	Name         *string
	StartTime    *string
	EndTime      *string
	BreakMinutes *int
}

// ShiftTemplateService is simple persistence glue; templates are read
// by the roster and advert engines for duration computation. Updating a
// template does not recompute rosters already derived from it.
type ShiftTemplateService struct {
	templateRepo repository.ShiftTemplateRepository
	logger       *logrus.Logger
}

func NewShiftTemplateService(templateRepo repository.ShiftTemplateRepository) *ShiftTemplateService {
	return &ShiftTemplateService{
		templateRepo: templateRepo,
		logger:       newLogger(),
	}
}

func (s *ShiftTemplateService) Create(input CreateShiftTemplateInput) (*models.ShiftTemplate, error) {
	template := &models.ShiftTemplate{
		CompanyID:    input.CompanyID,
		Name:         input.Name,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		BreakMinutes: input.BreakMinutes,
	}

	if err := s.templateRepo.Create(template); err != nil {
		return nil, err
	}

	return template, nil
}

func (s *ShiftTemplateService) Update(id uint, input UpdateShiftTemplateInput) (*models.ShiftTemplate, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperr.NotFoundf("shift template %d", id)
	}

	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.StartTime != nil {
		template.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		template.EndTime = *input.EndTime
	}
	if input.BreakMinutes != nil {
		template.BreakMinutes = *input.BreakMinutes
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, err
	}

	return template, nil
}

func (s *ShiftTemplateService) FindOne(id uint) (*models.ShiftTemplate, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperr.NotFoundf("shift template %d", id)
	}
	return template, nil
}

func (s *ShiftTemplateService) FindByCompany(companyID uint) ([]*models.ShiftTemplate, error) {
	return s.templateRepo.GetByCompanyID(companyID)
}

func (s *ShiftTemplateService) FindAll() ([]*models.ShiftTemplate, error) {
	return s.templateRepo.GetAll()
}

func (s *ShiftTemplateService) Remove(id uint) error {
	return s.templateRepo.DeleteByID(id)
}
