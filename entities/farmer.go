package entities

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Farmer struct {
	FarmerID       uint    `gorm:"primaryKey" json:"id"`
	AccountID      uint    `gorm:"uniqueIndex" json:"account_id"`
	Name           string  `json:"name"`
	Phone          string  `gorm:"index" json:"phone"`
	Village        string  `json:"village"`
	District       string  `gorm:"index" json:"district"`
	State          string  `json:"state"`
	LandArea       float64 `json:"land_area"`
	ApprovalStatus string  `gorm:"index;default:pending" json:"approval_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
