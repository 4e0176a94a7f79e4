package types

// CreatePlanRequest is the crop-plan submission body shared by the planning
// client and the server.
type CreatePlanRequest struct {
	LandID              uint        `json:"land_id"`
	SoilType            string      `json:"soil_type"`
	Season              string      `json:"season"`
	IrrigationType      string      `json:"irrigation_type"`
	Notes               string      `json:"notes,omitempty"`
	TotalAcresAllocated float64     `json:"total_acres_allocated"`
	Crops               []CropEntry `json:"crops"`
}

type CropEntry struct {
	CropName            string  `json:"crop_name"`
	Acres               float64 `json:"acres"`
	SeedVariety         string  `json:"seed_variety"`
	SowingDate          string  `json:"sowing_date"`           // YYYY-MM-DD
	ExpectedHarvestDate string  `json:"expected_harvest_date"` // YYYY-MM-DD
	ExpectedYield       float64 `json:"expected_yield"`        // total quintals
}

// YieldEstimate is the yield-estimate response.
type YieldEstimate struct {
	Crop          string  `json:"crop"`
	District      string  `json:"district"`
	State         string  `json:"state"`
	Acres         float64 `json:"acres"`
	YieldPerAcre  float64 `json:"yield_per_acre"`
	ExpectedYield float64 `json:"expected_yield"`
	Unit          string  `json:"unit"`
	Source        string  `json:"source"`
}

// CalendarItem is one sowing or harvest event in the plan calendar.
type CalendarItem struct {
	AllocationID uint    `json:"allocation_id"`
	PlanID       uint    `json:"plan_id"`
	LandID       uint    `json:"land_id"`
	Type         string  `json:"type"` // sowing|harvest
	CropName     string  `json:"crop_name"`
	Acres        float64 `json:"acres"`
	Status       string  `json:"status"`
}
