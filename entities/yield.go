package entities

import "time"

// CropYieldConfig overrides the per-acre yield for a crop. Empty soil,
// season or irrigation act as wildcards.
type CropYieldConfig struct {
	ConfigID       uint    `gorm:"primaryKey" json:"id"`
	CropName       string  `gorm:"index" json:"crop_name"`
	SoilType       string  `json:"soil_type"`
	Season         string  `json:"season"`
	IrrigationType string  `json:"irrigation_type"`
	YieldPerAcre   float64 `json:"yield_per_acre"` // quintals
	IsActive       bool    `gorm:"index" json:"is_active"`

	UpdatedAt time.Time `json:"updated_at"`
}
