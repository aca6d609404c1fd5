package models

import "time"

// User is the minimal account record this core needs: notification
// targeting resolves a company membership to a user, and delivery needs
// the user's Telegram chat id. Auth itself lives outside this core.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ChatID    int64     `gorm:"index" json:"chat_id"`
	Username  string    `json:"username"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
