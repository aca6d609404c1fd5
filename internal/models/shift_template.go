package models

import "time"

// ShiftTemplate is a reusable definition of a shift's wall-clock start,
// end and break. StartTime/EndTime hold "HH:MM"; an end at or before the
// start means the shift runs into the next day. Updating a template does
// not recompute rosters that already reference it.
type ShiftTemplate struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CompanyID    uint      `gorm:"not null;index" json:"company_id"`
	Name         string    `gorm:"not null" json:"name"`
	StartTime    string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime      string    `gorm:"type:varchar(5);not null" json:"end_time"`
	BreakMinutes int       `gorm:"not null;default:0" json:"break_minutes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ShiftTemplate) TableName() string {
	return "shift_templates"
}
