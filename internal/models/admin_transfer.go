package models

import "time"

// AdminTransfer is an append-only audit record of an admin role
// hand-off within a company. Rows are never updated or deleted.
type AdminTransfer struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	CompanyID         uint      `gorm:"not null;index" json:"company_id"`
	FromCompanyUserID uint      `gorm:"not null" json:"from_company_user_id"`
	ToCompanyUserID   uint      `gorm:"not null" json:"to_company_user_id"`
	Reason            string    `gorm:"not null" json:"reason"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AdminTransfer) TableName() string {
	return "admin_transfers"
}
