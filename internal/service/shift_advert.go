package service

import (
	"fmt"
	"time"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"
	"shift-roster/internal/repository"
	"shift-roster/pkg/duration"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateShiftAdvertInput opens a call for workers to claim a shift.
type CreateShiftAdvertInput struct {
	CompanyID       uint
	LocationID      uint
	ShiftTemplateID uint
	DutyDate        time.Time
	JobTitle        string
	JobType         *string
	Note            *string
}

type ShiftAdvertService struct {
	db               *gorm.DB
	advertRepo       repository.ShiftAdvertRepository
	responseRepo     repository.ShiftAdvertResponseRepository
	rosterRepo       repository.RosterRepository
	templateRepo     repository.ShiftTemplateRepository
	companyUserRepo  repository.CompanyUserRepository
	notificationRepo repository.NotificationRepository
	logger           *logrus.Logger
}

func NewShiftAdvertService(
	db *gorm.DB,
	advertRepo repository.ShiftAdvertRepository,
	responseRepo repository.ShiftAdvertResponseRepository,
	rosterRepo repository.RosterRepository,
	templateRepo repository.ShiftTemplateRepository,
	companyUserRepo repository.CompanyUserRepository,
	notificationRepo repository.NotificationRepository,
) *ShiftAdvertService {
	return &ShiftAdvertService{
		db:               db,
		advertRepo:       advertRepo,
		responseRepo:     responseRepo,
		rosterRepo:       rosterRepo,
		templateRepo:     templateRepo,
		companyUserRepo:  companyUserRepo,
		notificationRepo: notificationRepo,
		logger:           newLogger(),
	}
}

// Create persists the advert, then broadcasts it to every active
// company member matching the job title (and job type, when set). The
// broadcast is best-effort: an enqueue failure is logged, never rolled
// into the advert's fate.
func (s *ShiftAdvertService) Create(input CreateShiftAdvertInput) (*models.ShiftAdvert, error) {
	if input.JobType != nil {
		switch *input.JobType {
		case models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeCasual:
		default:
			return nil, apperr.InvalidStatef("unknown job type %q", *input.JobType)
		}
	}

	advert := &models.ShiftAdvert{
		CompanyID:       input.CompanyID,
		LocationID:      input.LocationID,
		ShiftTemplateID: input.ShiftTemplateID,
		DutyDate:        input.DutyDate,
		JobTitle:        input.JobTitle,
		JobType:         input.JobType,
		Note:            input.Note,
		Status:          models.AdvertOpen,
	}

	if err := s.advertRepo.Create(advert); err != nil {
		return nil, err
	}

	s.broadcast(advert)

	return advert, nil
}

func (s *ShiftAdvertService) broadcast(advert *models.ShiftAdvert) {
	broadcastID := uuid.NewString()

	targets, err := s.companyUserRepo.GetActiveByCompanyJob(advert.CompanyID, advert.JobTitle, advert.JobType)
	if err != nil {
		s.logger.WithError(err).WithField("broadcast_id", broadcastID).
			Error("Failed to resolve shift advert broadcast targets")
		return
	}

	if len(targets) == 0 {
		return
	}

	dutyDate := advert.DutyDate.Format("2006-01-02")
	notifications := make([]*models.Notification, 0, len(targets))
	for _, target := range targets {
		notifications = append(notifications, &models.Notification{
			UserID:  target.UserID,
			Title:   "New shift advert",
			Message: fmt.Sprintf("New %s shift on %s.", advert.JobTitle, dutyDate),
		})
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		s.logger.WithError(err).WithField("broadcast_id", broadcastID).
			Error("Failed to enqueue shift advert broadcast")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"broadcast_id":    broadcastID,
		"shift_advert_id": advert.ID,
		"targets":         len(targets),
	}).Info("Shift advert broadcast enqueued")
}

// Respond upserts a worker's answer while the advert is open. Repeat
// responses overwrite the previous value and refresh the timestamp.
func (s *ShiftAdvertService) Respond(shiftAdvertID, companyUserID uint, response string) (*models.ShiftAdvertResponse, error) {
	if !models.IsValidResponse(response) {
		return nil, apperr.InvalidStatef("unknown response %q", response)
	}

	advert, err := s.advertRepo.GetByID(shiftAdvertID)
	if err != nil {
		return nil, err
	}
	if advert == nil {
		return nil, apperr.NotFoundf("shift advert %d", shiftAdvertID)
	}
	if !advert.IsOpen() {
		return nil, apperr.InvalidStatef("shift advert is not open")
	}

	row := &models.ShiftAdvertResponse{
		ShiftAdvertID: shiftAdvertID,
		CompanyUserID: companyUserID,
		Response:      response,
		RespondedAt:   time.Now(),
	}
	if err := s.responseRepo.Upsert(row); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the canonical row, whichever branch
	// the upsert took.
	return s.responseRepo.GetByAdvertAndResponder(shiftAdvertID, companyUserID)
}

// Accept assigns the advertised shift to a willing responder. The
// whole operation runs in one transaction: spawn the roster, close the
// advert, stamp the accepted response, notify the worker. Two
// concurrent accepts cannot both succeed: the later one re-reads the
// advert inside its own transaction and fails on the CLOSED status or
// on the already-linked roster.
func (s *ShiftAdvertService) Accept(shiftAdvertID, companyUserID uint) (*models.Roster, error) {
	var roster *models.Roster

	err := s.db.Transaction(func(tx *gorm.DB) error {
		advertRepo := s.advertRepo.WithTx(tx)
		responseRepo := s.responseRepo.WithTx(tx)
		rosterRepo := s.rosterRepo.WithTx(tx)

		advert, err := advertRepo.GetByID(shiftAdvertID)
		if err != nil {
			return err
		}
		if advert == nil {
			return apperr.NotFoundf("shift advert %d", shiftAdvertID)
		}
		if !advert.IsOpen() {
			return apperr.InvalidStatef("shift advert is not open")
		}

		existing, err := rosterRepo.GetByShiftAdvertID(advert.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.InvalidStatef("shift advert already assigned")
		}

		response, err := responseRepo.GetByAdvertAndResponder(shiftAdvertID, companyUserID)
		if err != nil {
			return err
		}
		if response == nil {
			return apperr.NotFoundf("response not found for this advert")
		}
		if response.Response != models.ResponseWilling {
			return apperr.InvalidStatef("user did not accept this shift")
		}

		var scheduled *int
		template, err := s.templateRepo.WithTx(tx).GetByID(advert.ShiftTemplateID)
		if err != nil {
			return err
		}
		if template != nil {
			minutes := duration.ScheduledMinutes(template.StartTime, template.EndTime, template.BreakMinutes)
			scheduled = &minutes
		}

		roster = &models.Roster{
			CompanyID:        advert.CompanyID,
			CompanyUserID:    companyUserID,
			LocationID:       advert.LocationID,
			ShiftTemplateID:  advert.ShiftTemplateID,
			DutyDate:         advert.DutyDate,
			Status:           models.RosterScheduled,
			ScheduledMinutes: scheduled,
			ShiftAdvertID:    &advert.ID,
		}
		if err := rosterRepo.Create(roster); err != nil {
			return err
		}

		advert.Status = models.AdvertClosed
		if err := advertRepo.Update(advert); err != nil {
			return err
		}

		response.RosterID = &roster.ID
		if err := responseRepo.Update(response); err != nil {
			return err
		}

		companyUser, err := s.companyUserRepo.WithTx(tx).GetByID(companyUserID)
		if err != nil {
			return err
		}
		if companyUser != nil {
			notification := &models.Notification{
				UserID:  companyUser.UserID,
				Title:   "Shift assigned",
				Message: fmt.Sprintf("You are assigned for %s on %s.", advert.JobTitle, advert.DutyDate.Format("2006-01-02")),
			}
			if err := s.notificationRepo.WithTx(tx).Create(notification); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"shift_advert_id": shiftAdvertID,
		"company_user_id": companyUserID,
		"roster_id":       roster.ID,
	}).Info("Shift advert accepted")

	return roster, nil
}

// Cancel terminates an open advert without an assignment.
func (s *ShiftAdvertService) Cancel(shiftAdvertID uint) (*models.ShiftAdvert, error) {
	return s.terminate(shiftAdvertID, models.AdvertCancelled, "can only cancel open shift adverts")
}

// Close terminates an open advert manually, outside the accept path.
func (s *ShiftAdvertService) Close(shiftAdvertID uint) (*models.ShiftAdvert, error) {
	return s.terminate(shiftAdvertID, models.AdvertClosed, "can only close open shift adverts")
}

func (s *ShiftAdvertService) terminate(shiftAdvertID uint, status, reason string) (*models.ShiftAdvert, error) {
	advert, err := s.advertRepo.GetByID(shiftAdvertID)
	if err != nil {
		return nil, err
	}
	if advert == nil {
		return nil, apperr.NotFoundf("shift advert %d", shiftAdvertID)
	}
	if !advert.IsOpen() {
		return nil, apperr.InvalidStatef("%s", reason)
	}

	advert.Status = status
	if err := s.advertRepo.Update(advert); err != nil {
		return nil, err
	}

	return advert, nil
}

func (s *ShiftAdvertService) List(filter repository.ShiftAdvertFilter) ([]*models.ShiftAdvert, error) {
	return s.advertRepo.List(filter)
}

func (s *ShiftAdvertService) FindByLocation(locationID uint, from, to *time.Time) ([]*models.ShiftAdvert, error) {
	return s.advertRepo.GetByLocation(locationID, from, to)
}

func (s *ShiftAdvertService) FindOne(id uint) (*models.ShiftAdvert, error) {
	advert, err := s.advertRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if advert == nil {
		return nil, apperr.NotFoundf("shift advert %d", id)
	}
	return advert, nil
}

// Responses returns every response for an advert, newest first.
func (s *ShiftAdvertService) Responses(shiftAdvertID uint) ([]*models.ShiftAdvertResponse, error) {
	advert, err := s.advertRepo.GetByID(shiftAdvertID)
	if err != nil {
		return nil, err
	}
	if advert == nil {
		return nil, apperr.NotFoundf("shift advert %d", shiftAdvertID)
	}

	return s.responseRepo.GetByAdvert(shiftAdvertID)
}

// WillingResponses returns the WILLING pool an operator picks the
// accepted candidate from, oldest response first.
func (s *ShiftAdvertService) WillingResponses(shiftAdvertID uint) ([]*models.ShiftAdvertResponse, error) {
	return s.responseRepo.GetWillingByAdvert(shiftAdvertID)
}

func (s *ShiftAdvertService) Remove(id uint) error {
	return s.advertRepo.DeleteByID(id)
}
