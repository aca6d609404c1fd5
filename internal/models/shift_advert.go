package models

import "time"

// Shift advert statuses
const (
	AdvertOpen      = "OPEN"
	AdvertClosed    = "CLOSED"
	AdvertCancelled = "CANCELLED"
)

// Job types
const (
	JobTypeFullTime = "FULL_TIME"
	JobTypePartTime = "PART_TIME"
	JobTypeCasual   = "CASUAL"
)

// ShiftAdvert is an open call for any eligible worker to claim an
// unassigned shift. Accepting a response closes the advert and spawns
// exactly one roster.
type ShiftAdvert struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CompanyID       uint      `gorm:"not null;index" json:"company_id"`
	LocationID      uint      `gorm:"not null;index" json:"location_id"`
	ShiftTemplateID uint      `gorm:"not null" json:"shift_template_id"`
	DutyDate        time.Time `gorm:"type:date;not null;index" json:"duty_date"`
	JobTitle        string    `gorm:"not null" json:"job_title"`
	JobType         *string   `gorm:"type:varchar(20)" json:"job_type"`
	Note            *string   `json:"note"`
	Status          string    `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ShiftAdvert) TableName() string {
	return "shift_adverts"
}

// IsOpen reports whether the advert still takes responses.
func (sa *ShiftAdvert) IsOpen() bool {
	return sa.Status == AdvertOpen
}
