package entities

import "time"

type CropPlan struct {
	PlanID              uint             `gorm:"primaryKey" json:"id"`
	FarmerID            uint             `gorm:"index" json:"farmer_id"`
	LandID              uint             `gorm:"index" json:"land_id"`
	SoilType            string           `json:"soil_type"`
	Season              string           `json:"season"`
	IrrigationType      string           `json:"irrigation_type"`
	Notes               string           `json:"notes"`
	TotalAcresAllocated float64          `json:"total_acres_allocated"`
	ApprovalStatus      string           `gorm:"index;default:pending" json:"approval_status"`
	AdminRemark         string           `json:"admin_remark"`
	Crops               []CropAllocation `gorm:"foreignKey:CropPlanID;constraint:OnDelete:CASCADE" json:"crops"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CropAllocation is one crop line of a plan.
type CropAllocation struct {
	AllocationID         uint       `gorm:"primaryKey" json:"id"`
	CropPlanID           uint       `gorm:"index" json:"crop_plan_id"`
	CropName             string     `json:"crop_name"`
	Acres                float64    `json:"acres"`
	SeedVariety          string     `json:"seed_variety"`
	SowingDate           *time.Time `json:"sowing_date"`
	ExpectedHarvestDate  *time.Time `json:"expected_harvest_date"`
	ExpectedYield        *float64   `json:"expected_yield"`          // quintals, whole allocation
	ExpectedYieldPerAcre *float64   `json:"expected_yield_per_acre"` // quintals per acre

	CreatedAt time.Time `json:"created_at"`
}
