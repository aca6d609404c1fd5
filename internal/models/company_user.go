package models

import "time"

// Company roles
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// CompanyUser is a worker's membership record within one company. A
// single row per (user, company) is reused across leave/rejoin cycles:
// leaving flips IsActive and stamps LeftAt, rejoining reactivates the
// same row with IsRequested set for admin approval.
type CompanyUser struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_company" json:"user_id"`
	CompanyID   uint       `gorm:"not null;uniqueIndex:idx_user_company" json:"company_id"`
	Role        string     `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	JobTitle    string     `gorm:"not null" json:"job_title"`
	JobType     *string    `gorm:"type:varchar(20)" json:"job_type"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	IsRequested bool       `gorm:"not null;default:false" json:"is_requested"`
	LeftAt      *time.Time `json:"left_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CompanyUser) TableName() string {
	return "company_users"
}

// IsAdmin reports whether the member currently holds the admin role.
func (cu *CompanyUser) IsAdmin() bool {
	return cu.Role == RoleAdmin
}

// IsValidRole reports whether role is a known company role.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}
