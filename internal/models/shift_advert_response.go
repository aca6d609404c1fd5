package models

import "time"

// Response values
const (
	ResponseWilling    = "WILLING"
	ResponseNotWilling = "NOT_WILLING"
)

// ShiftAdvertResponse is a worker's answer to a shift advert. One row
// per (advert, worker): a repeat response overwrites the previous one
// while the advert stays open. RosterID is stamped only on the response
// that got accepted.
type ShiftAdvertResponse struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ShiftAdvertID uint      `gorm:"not null;uniqueIndex:idx_advert_responder" json:"shift_advert_id"`
	CompanyUserID uint      `gorm:"not null;uniqueIndex:idx_advert_responder" json:"company_user_id"`
	Response      string    `gorm:"type:varchar(20);not null" json:"response"`
	RespondedAt   time.Time `gorm:"not null" json:"responded_at"`
	RosterID      *uint     `json:"roster_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ShiftAdvertResponse) TableName() string {
	return "shift_advert_responses"
}

// IsValidResponse reports whether value is a known response.
func IsValidResponse(value string) bool {
	return value == ResponseWilling || value == ResponseNotWilling
}
