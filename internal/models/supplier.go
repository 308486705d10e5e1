package models

import (
	"time"
)

// Supplier represents one normalized wholesale supplier record
type Supplier struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;index:idx_suppliers_name_category" json:"name"`
	Website       string    `json:"website"`
	Category      string    `gorm:"not null;index:idx_suppliers_name_category" json:"category"`
	AccountStatus string    `json:"account_status"`
	StatusDetail  string    `json:"status_detail"`
	Description   string    `gorm:"type:text" json:"description"`
	ContactName   string    `json:"contact_name"`
	ContactPhone  string    `json:"contact_phone"`
	ContactEmail  string    `json:"contact_email"`
	Address       string    `json:"address"`
	Username      string    `json:"username"`
	Password      string    `json:"-"` // opaque credential, stored as received
	CallFlag      string    `json:"call_flag"`
	Priority      int       `gorm:"default:3" json:"priority"` // 1 highest .. 5 lowest
	Comments      string    `gorm:"type:text" json:"comments"`
	Country       string    `gorm:"size:2" json:"country"`
	CreatedByID   uint      `json:"created_by_id"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}

// UploadEligible reports whether the record carries both required business
// keys. Ineligible records are counted by the projector, never dropped
// silently.
func (s *Supplier) UploadEligible() bool {
	return s.Name != "" && s.Category != ""
}
