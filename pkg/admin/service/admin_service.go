package service

import (
	"context"
	"errors"

	"alphafarm/entities"
	"alphafarm/pkg/admin/repository"
)

var (
	ErrLandNotFound  = errors.New("Land not found")
	ErrPlanNotFound  = errors.New("Crop plan not found")
	ErrInvalidStatus = errors.New("approval_status must be one of pending, approved, rejected")
)

type Dashboard struct {
	TotalUsers          int64                      `json:"total_users"`
	TotalFarmers        int64                      `json:"total_farmers"`
	ProfilesCompleted   int64                      `json:"profiles_completed"`
	FarmersByDistrict   []repository.DistrictCount `json:"farmers_by_district"`
	ChartLabels         []string                   `json:"chart_labels"`
	ChartValues         []int64                    `json:"chart_values"`
	LandApprovalSummary map[string]int64           `json:"land_approval_summary"`
	PendingFarmers      []entities.Farmer          `json:"pending_farmers"`
}

type LandApproval struct {
	ID             uint    `json:"id"`
	FarmerName     string  `json:"farmer_name"`
	FarmerPhone    string  `json:"farmer_phone"`
	Village        string  `json:"village"`
	District       string  `json:"district"`
	State          string  `json:"state"`
	LandArea       float64 `json:"land_area"`
	ApprovalStatus string  `json:"approval_status"`
	AdminRemark    string  `json:"admin_remark"`
}

type PlanApproval struct {
	ID             uint    `json:"id"`
	FarmerName     string  `json:"farmer_name"`
	FarmerPhone    string  `json:"farmer_phone"`
	Village        string  `json:"village"`
	District       string  `json:"district"`
	State          string  `json:"state"`
	CropName       string  `json:"crop_name"`
	Season         string  `json:"season"`
	PlannedArea    float64 `json:"planned_area"`
	ApprovalStatus string  `json:"approval_status"`
	AdminRemark    string  `json:"admin_remark"`
}

// Decision is the PATCH body of an approval. An empty status keeps the
// current one; a nil remark keeps the current remark.
type Decision struct {
	ApprovalStatus string  `json:"approval_status"`
	AdminRemark    *string `json:"admin_remark"`
}

type DecisionResult struct {
	Message        string `json:"message"`
	ApprovalStatus string `json:"approval_status"`
	AdminRemark    string `json:"admin_remark"`
}

type AdminService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	// Lands and CropPlans accept pending|approved|rejected; anything else lists all.
	Lands(ctx context.Context, status string) ([]LandApproval, error)
	DecideLand(ctx context.Context, adminID, landID uint, d Decision) (*DecisionResult, error)
	CropPlans(ctx context.Context, status string) ([]PlanApproval, error)
	DecidePlan(ctx context.Context, adminID, planID uint, d Decision) (*DecisionResult, error)
}
