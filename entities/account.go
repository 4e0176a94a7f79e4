package entities

import "time"

const (
	RoleFarmer = "farmer"
	RoleAdmin  = "admin"
)

// Account is the login identity. Farmers sign in by OTP, admins by password.
type Account struct {
	AccountID    uint   `gorm:"primaryKey" json:"id"`
	Phone        string `gorm:"uniqueIndex;size:15" json:"phone"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"index" json:"role"` // farmer|admin

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OTPCode backs the OTP store when redis is not configured.
type OTPCode struct {
	Phone     string    `gorm:"primaryKey;size:15"`
	Code      string    `gorm:"size:6"`
	Attempts  int       `gorm:"not null;default:0"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}
