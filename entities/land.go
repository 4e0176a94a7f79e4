package entities

import "time"

type Land struct {
	LandID         uint     `gorm:"primaryKey" json:"id"`
	FarmerID       uint     `gorm:"index" json:"farmer_id"`
	Country        string   `json:"country"`
	State          string   `json:"state"`
	District       string   `json:"district"`
	Village        string   `json:"village"`
	SurveyNumber   string   `json:"survey_number"`
	LandArea       float64  `json:"land_area"` // acres
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	SoilType       string   `json:"soil_type"`
	IrrigationType string   `json:"irrigation_type"`
	ApprovalStatus string   `gorm:"index;default:pending" json:"approval_status"`
	AdminRemark    string   `json:"admin_remark"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
