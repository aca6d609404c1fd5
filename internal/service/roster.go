package service

import (
	"time"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"
	"shift-roster/internal/repository"
	"shift-roster/pkg/duration"

	"github.com/sirupsen/logrus"
)

// CreateRosterInput carries a direct shift assignment. Status defaults
// to SCHEDULED when empty.
type CreateRosterInput struct {
	CompanyID       uint
	CompanyUserID   uint
	LocationID      uint
	ShiftTemplateID uint
	DutyDate        time.Time
	Status          string
}

// UpdateRosterInput patches a roster; nil fields stay untouched.
type UpdateRosterInput struct {
	CompanyID       *uint
	CompanyUserID   *uint
	LocationID      *uint
	ShiftTemplateID *uint
	DutyDate        *time.Time
	Status          *string
}

// DutyHoursReport sums roster minutes over an optional date window.
type DutyHoursReport struct {
	RosterCount           int64      `json:"roster_count"`
	TotalScheduledMinutes int64      `json:"total_scheduled_minutes"`
	TotalActualMinutes    int64      `json:"total_actual_minutes"`
	From                  *time.Time `json:"from"`
	To                    *time.Time `json:"to"`
}

type RosterService struct {
	rosterRepo   repository.RosterRepository
	templateRepo repository.ShiftTemplateRepository
	logger       *logrus.Logger
}

func NewRosterService(
	rosterRepo repository.RosterRepository,
	templateRepo repository.ShiftTemplateRepository,
) *RosterService {
	return &RosterService{
		rosterRepo:   rosterRepo,
		templateRepo: templateRepo,
		logger:       newLogger(),
	}
}

// scheduledMinutesFor resolves a template and derives the planned
// duration. A missing template yields nil: template misconfiguration
// must not block roster creation, the duration just stays undefined.
func (s *RosterService) scheduledMinutesFor(templateRepo repository.ShiftTemplateRepository, shiftTemplateID uint) (*int, error) {
	template, err := templateRepo.GetByID(shiftTemplateID)
	if err != nil {
		return nil, err
	}

	if template == nil {
		return nil, nil
	}

	minutes := duration.ScheduledMinutes(template.StartTime, template.EndTime, template.BreakMinutes)
	return &minutes, nil
}

func (s *RosterService) Create(input CreateRosterInput) (*models.Roster, error) {
	status := input.Status
	if status == "" {
		status = models.RosterScheduled
	}
	if !models.IsValidRosterStatus(status) {
		return nil, apperr.InvalidStatef("unknown roster status %q", status)
	}

	scheduled, err := s.scheduledMinutesFor(s.templateRepo, input.ShiftTemplateID)
	if err != nil {
		return nil, err
	}

	roster := &models.Roster{
		CompanyID:        input.CompanyID,
		CompanyUserID:    input.CompanyUserID,
		LocationID:       input.LocationID,
		ShiftTemplateID:  input.ShiftTemplateID,
		DutyDate:         input.DutyDate,
		Status:           status,
		ScheduledMinutes: scheduled,
	}

	if err := s.rosterRepo.Create(roster); err != nil {
		return nil, err
	}

	return roster, nil
}

// Update patches a roster. A changed shift template recomputes the
// scheduled minutes the same way Create does; other patches leave the
// derived value alone. No terminal-state guard is applied, so a
// COMPLETED roster can be moved back to SCHEDULED; tightening that is
// an open question, not current behavior.
func (s *RosterService) Update(id uint, input UpdateRosterInput) (*models.Roster, error) {
	roster, err := s.rosterRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		return nil, apperr.NotFoundf("roster %d", id)
	}

	if input.CompanyID != nil {
		roster.CompanyID = *input.CompanyID
	}
	if input.CompanyUserID != nil {
		roster.CompanyUserID = *input.CompanyUserID
	}
	if input.LocationID != nil {
		roster.LocationID = *input.LocationID
	}
	if input.DutyDate != nil {
		roster.DutyDate = *input.DutyDate
	}
	if input.Status != nil {
		if !models.IsValidRosterStatus(*input.Status) {
			return nil, apperr.InvalidStatef("unknown roster status %q", *input.Status)
		}
		roster.Status = *input.Status
	}

	if input.ShiftTemplateID != nil {
		roster.ShiftTemplateID = *input.ShiftTemplateID

		scheduled, err := s.scheduledMinutesFor(s.templateRepo, *input.ShiftTemplateID)
		if err != nil {
			return nil, err
		}
		if scheduled != nil {
			roster.ScheduledMinutes = scheduled
		}
	}

	if err := s.rosterRepo.Update(roster); err != nil {
		return nil, err
	}

	return roster, nil
}

// Transition overwrites the roster status. Any status is reachable
// from any other; terminal states are not guarded.
func (s *RosterService) Transition(id uint, newStatus string) (*models.Roster, error) {
	switch newStatus {
	case models.RosterCompleted, models.RosterCancelled, models.RosterMissed:
	default:
		return nil, apperr.InvalidStatef("cannot transition roster to %q", newStatus)
	}

	roster, err := s.rosterRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		return nil, apperr.NotFoundf("roster %d", id)
	}

	roster.Status = newStatus
	if err := s.rosterRepo.Update(roster); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":     roster.ID,
		"status": newStatus,
	}).Info("Roster transitioned")

	return roster, nil
}

// BulkCreate computes scheduled minutes per item and inserts the whole
// list as one batch; any failure fails every item.
func (s *RosterService) BulkCreate(inputs []CreateRosterInput) ([]*models.Roster, error) {
	rosters := make([]*models.Roster, 0, len(inputs))

	for _, input := range inputs {
		status := input.Status
		if status == "" {
			status = models.RosterScheduled
		}
		if !models.IsValidRosterStatus(status) {
			return nil, apperr.InvalidStatef("unknown roster status %q", status)
		}

		scheduled, err := s.scheduledMinutesFor(s.templateRepo, input.ShiftTemplateID)
		if err != nil {
			return nil, err
		}

		rosters = append(rosters, &models.Roster{
			CompanyID:        input.CompanyID,
			CompanyUserID:    input.CompanyUserID,
			LocationID:       input.LocationID,
			ShiftTemplateID:  input.ShiftTemplateID,
			DutyDate:         input.DutyDate,
			Status:           status,
			ScheduledMinutes: scheduled,
		})
	}

	if err := s.rosterRepo.CreateBatch(rosters); err != nil {
		return nil, err
	}

	s.logger.WithField("count", len(rosters)).Info("Rosters bulk created")
	return rosters, nil
}

func (s *RosterService) DutyHoursByCompany(companyID uint, from, to *time.Time) (*DutyHoursReport, error) {
	stats, err := s.rosterRepo.StatsByCompany(companyID, from, to)
	if err != nil {
		return nil, err
	}
	return reportFrom(stats, from, to), nil
}

func (s *RosterService) DutyHoursByCompanyUser(companyUserID uint, from, to *time.Time) (*DutyHoursReport, error) {
	stats, err := s.rosterRepo.StatsByCompanyUser(companyUserID, from, to)
	if err != nil {
		return nil, err
	}
	return reportFrom(stats, from, to), nil
}

func reportFrom(stats *repository.DutyHoursStats, from, to *time.Time) *DutyHoursReport {
	return &DutyHoursReport{
		RosterCount:           stats.RosterCount,
		TotalScheduledMinutes: stats.TotalScheduledMinutes,
		TotalActualMinutes:    stats.TotalActualMinutes,
		From:                  from,
		To:                    to,
	}
}

func (s *RosterService) FindOne(id uint) (*models.Roster, error) {
	roster, err := s.rosterRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		return nil, apperr.NotFoundf("roster %d", id)
	}
	return roster, nil
}

func (s *RosterService) FindAll() ([]*models.Roster, error) {
	return s.rosterRepo.GetAll()
}

func (s *RosterService) Remove(id uint) error {
	return s.rosterRepo.DeleteByID(id)
}
