package service

import (
	"time"

	"shift-roster/internal/apperr"
	"shift-roster/internal/models"
	"shift-roster/internal/repository"
	"shift-roster/pkg/duration"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateAttendanceInput is the administrative create surface, used for
// corrections when check-in/check-out events were missed.
type CreateAttendanceInput struct {
	RosterID      uint
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	CheckInLat    *float64
	CheckInLng    *float64
	CheckInPhoto  *string
	CheckOutPhoto *string
}

// UpdateAttendanceInput patches an attendance row; nil fields stay
// untouched.
type UpdateAttendanceInput struct {
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	CheckInLat    *float64
	CheckInLng    *float64
	CheckInPhoto  *string
	CheckOutPhoto *string
}

type AttendanceService struct {
	db             *gorm.DB
	attendanceRepo repository.AttendanceRepository
	rosterRepo     repository.RosterRepository
	logger         *logrus.Logger
}

func NewAttendanceService(
	db *gorm.DB,
	attendanceRepo repository.AttendanceRepository,
	rosterRepo repository.RosterRepository,
) *AttendanceService {
	return &AttendanceService{
		db:             db,
		attendanceRepo: attendanceRepo,
		rosterRepo:     rosterRepo,
		logger:         newLogger(),
	}
}

// CheckIn records the start of duty. A repeat check-in before checkout
// (an app restart, a corrected location) overwrites the check-in fields
// and resets the timestamp instead of being rejected.
func (s *AttendanceService) CheckIn(rosterID uint, lat, lng *float64, photo *string) (*models.Attendance, error) {
	roster, err := s.rosterRepo.GetByID(rosterID)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		return nil, apperr.NotFoundf("roster %d", rosterID)
	}

	now := time.Now()

	attendance, err := s.attendanceRepo.GetByRosterID(rosterID)
	if err != nil {
		return nil, err
	}

	if attendance == nil {
		attendance = &models.Attendance{
			RosterID:     rosterID,
			CheckInTime:  &now,
			CheckInLat:   lat,
			CheckInLng:   lng,
			CheckInPhoto: photo,
		}
		if err := s.attendanceRepo.Create(attendance); err != nil {
			return nil, err
		}
	} else {
		attendance.CheckInTime = &now
		attendance.CheckInLat = lat
		attendance.CheckInLng = lng
		attendance.CheckInPhoto = photo
		if err := s.attendanceRepo.Update(attendance); err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"roster_id":     rosterID,
		"attendance_id": attendance.ID,
	}).Info("Worker checked in")

	return attendance, nil
}

// CheckOut records the end of duty, derives the worked minutes and
// pushes them into the owning roster. Without a prior check-in there is
// nothing to close out, so the call fails instead of implicitly
// checking the worker in.
func (s *AttendanceService) CheckOut(rosterID uint, photo *string) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.GetByRosterID(rosterID)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, apperr.NotFoundf("no attendance to check out for roster %d", rosterID)
	}

	now := time.Now()
	attendance.CheckOutTime = &now
	attendance.CheckOutPhoto = photo

	minutes := duration.ActualMinutes(attendance.CheckInTime, attendance.CheckOutTime)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attendanceRepo.WithTx(tx).Update(attendance); err != nil {
			return err
		}
		if minutes != nil {
			if err := s.rosterRepo.WithTx(tx).SetActualMinutes(attendance.RosterID, minutes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"roster_id":     rosterID,
		"attendance_id": attendance.ID,
	}).Info("Worker checked out")

	return attendance, nil
}

// Create is the administrative surface. It recomputes and pushes the
// actual minutes when both timestamps are present so the roster
// aggregate cannot go stale.
func (s *AttendanceService) Create(input CreateAttendanceInput) (*models.Attendance, error) {
	roster, err := s.rosterRepo.GetByID(input.RosterID)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		return nil, apperr.NotFoundf("roster %d", input.RosterID)
	}

	attendance := &models.Attendance{
		RosterID:      input.RosterID,
		CheckInTime:   input.CheckInTime,
		CheckOutTime:  input.CheckOutTime,
		CheckInLat:    input.CheckInLat,
		CheckInLng:    input.CheckInLng,
		CheckInPhoto:  input.CheckInPhoto,
		CheckOutPhoto: input.CheckOutPhoto,
	}

	minutes := duration.ActualMinutes(attendance.CheckInTime, attendance.CheckOutTime)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attendanceRepo.WithTx(tx).Create(attendance); err != nil {
			return err
		}
		if minutes != nil {
			if err := s.rosterRepo.WithTx(tx).SetActualMinutes(attendance.RosterID, minutes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return attendance, nil
}

// Update patches an attendance row and pushes the recomputed actual
// minutes into the roster, including clearing it back to null when a
// correction removed one of the timestamps.
func (s *AttendanceService) Update(id uint, input UpdateAttendanceInput) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, apperr.NotFoundf("attendance %d", id)
	}

	if input.CheckInTime != nil {
		attendance.CheckInTime = input.CheckInTime
	}
	if input.CheckOutTime != nil {
		attendance.CheckOutTime = input.CheckOutTime
	}
	if input.CheckInLat != nil {
		attendance.CheckInLat = input.CheckInLat
	}
	if input.CheckInLng != nil {
		attendance.CheckInLng = input.CheckInLng
	}
	if input.CheckInPhoto != nil {
		attendance.CheckInPhoto = input.CheckInPhoto
	}
	if input.CheckOutPhoto != nil {
		attendance.CheckOutPhoto = input.CheckOutPhoto
	}

	minutes := duration.ActualMinutes(attendance.CheckInTime, attendance.CheckOutTime)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attendanceRepo.WithTx(tx).Update(attendance); err != nil {
			return err
		}
		return s.rosterRepo.WithTx(tx).SetActualMinutes(attendance.RosterID, minutes)
	})
	if err != nil {
		return nil, err
	}

	return attendance, nil
}

func (s *AttendanceService) FindByRoster(rosterID uint) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.GetByRosterID(rosterID)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, apperr.NotFoundf("attendance for roster %d", rosterID)
	}
	return attendance, nil
}

func (s *AttendanceService) FindByCompanyUser(companyUserID uint, from, to *time.Time) ([]*models.Attendance, error) {
	return s.attendanceRepo.GetByCompanyUser(companyUserID, from, to)
}

func (s *AttendanceService) FindOne(id uint) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		return nil, apperr.NotFoundf("attendance %d", id)
	}
	return attendance, nil
}

func (s *AttendanceService) FindAll() ([]*models.Attendance, error) {
	return s.attendanceRepo.GetAll()
}

func (s *AttendanceService) Remove(id uint) error {
	return s.attendanceRepo.DeleteByID(id)
}
