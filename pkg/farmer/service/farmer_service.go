package service

import (
	"context"
	"errors"

	"alphafarm/entities"
	planrepo "alphafarm/pkg/plan/repository"
)

var ErrNotFound = errors.New("Farmer profile not found.")

// PlanRow is one line of the profile's crop plan table: an allocation, or a
// whole plan when the farmer has no allocations yet.
type PlanRow struct {
	ID             uint    `json:"id"`
	CropName       string  `json:"crop_name"`
	Acres          float64 `json:"acres"`
	ApprovalStatus string  `json:"approval_status"`
	Season         string  `json:"season"`
	SoilType       string  `json:"soil_type"`
	IrrigationType string  `json:"irrigation_type"`
	LandID         *uint   `json:"land_id"`
	LandVillage    string  `json:"land_village"`
	LandDistrict   string  `json:"land_district"`
	LandState      string  `json:"land_state"`
}

type Profile struct {
	Farmer    entities.Farmer `json:"farmer"`
	Lands     []entities.Land `json:"lands"`
	CropPlans []PlanRow       `json:"crop_plans"`
}

// ProfileInput is a partial update; nil fields are kept.
type ProfileInput struct {
	Name     *string  `json:"name"`
	Village  *string  `json:"village"`
	District *string  `json:"district"`
	State    *string  `json:"state"`
	LandArea *float64 `json:"land_area"`
}

// BenchmarkAcres is the market-wide acreage above which a crop counts as
// oversupplied.
const BenchmarkAcres = 100.0

// Recommendations splits crops by the acreage every farmer has planned for
// them: below BenchmarkAcres is good, at or above it is risky.
type Recommendations struct {
	GoodCrops      []string             `json:"good_crops"`
	RiskyCrops     []string             `json:"risky_crops"`
	BenchmarkAcres float64              `json:"benchmark_acres"`
	Crops          []planrepo.CropAcres `json:"crops"`
}

type FarmerService interface {
	Profile(ctx context.Context, farmerID uint) (*Profile, error)
	Recommendations(ctx context.Context, farmerID uint) (*Recommendations, error)
	Update(ctx context.Context, farmerID uint, in ProfileInput) (*entities.Farmer, error)
}
