package models

import "time"

// Notification is a persisted message for one user. Rows are written
// inside the owning operation (or best-effort after it) and delivered
// asynchronously by the dispatcher, which flips IsSent.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	IsSent    bool      `gorm:"not null;default:false;index" json:"is_sent"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
