package models

import "time"

// Attendance is the check-in/check-out record for one roster. At most
// one row exists per roster; a repeat check-in before checkout
// overwrites the check-in fields instead of creating a second row.
// Photos are opaque storage URLs.
type Attendance struct {
	ID       uint `gorm:"primarykey" json:"id"`
	RosterID uint `gorm:"uniqueIndex;not null" json:"roster_id"`

	CheckInTime  *time.Time `json:"check_in_time"`
	CheckInLat   *float64   `json:"check_in_lat"`
	CheckInLng   *float64   `json:"check_in_lng"`
	CheckInPhoto *string    `json:"check_in_photo"`

	CheckOutTime  *time.Time `json:"check_out_time"`
	CheckOutPhoto *string    `json:"check_out_photo"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// IsCheckedOut reports whether the worker has already checked out.
func (a *Attendance) IsCheckedOut() bool {
	return a.CheckOutTime != nil && !a.CheckOutTime.IsZero()
}
