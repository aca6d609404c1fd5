package models

import "time"

// Roster statuses
const (
	RosterScheduled = "SCHEDULED"
	RosterCompleted = "COMPLETED"
	RosterCancelled = "CANCELLED"
	RosterMissed    = "MISSED"
)

// Roster is one scheduled work shift for one worker on one duty date.
// ScheduledMinutes is derived from the referenced shift template at
// create/update time and stays nil when the template could not be
// resolved. ActualMinutes is pushed in from the attendance record.
type Roster struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	CompanyID        uint       `gorm:"not null;index" json:"company_id"`
	CompanyUserID    uint       `gorm:"not null;index" json:"company_user_id"`
	LocationID       uint       `gorm:"not null;index" json:"location_id"`
	ShiftTemplateID  uint       `gorm:"not null" json:"shift_template_id"`
	DutyDate         time.Time  `gorm:"type:date;not null;index" json:"duty_date"`
	Status           string     `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	ScheduledMinutes *int       `json:"scheduled_minutes"`
	ActualMinutes    *int       `json:"actual_minutes"`

	// Set when the roster was spawned by accepting a shift advert.
	// The unique index keeps an advert from producing two rosters.
	ShiftAdvertID *uint `gorm:"uniqueIndex" json:"shift_advert_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Roster) TableName() string {
	return "rosters"
}

// IsValidRosterStatus reports whether status is one of the roster statuses.
func IsValidRosterStatus(status string) bool {
	switch status {
	case RosterScheduled, RosterCompleted, RosterCancelled, RosterMissed:
		return true
	}
	return false
}

func (r *Roster) IsScheduled() bool {
	return r.Status == RosterScheduled
}
