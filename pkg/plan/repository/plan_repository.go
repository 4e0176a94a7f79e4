package repository

import (
	"context"

	"alphafarm/entities"
)

// CropAcres is the acreage planned for one crop across every farmer.
type CropAcres struct {
	CropName string  `json:"crop_name"`
	Acres    float64 `json:"acres"`
}

type PlanRepository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(tx PlanRepository) error) error
	// Create inserts the plan and its crops in one transaction.
	Create(ctx context.Context, p *entities.CropPlan) error
	// FindByID only matches plans owned by farmerID. Crops are preloaded.
	FindByID(ctx context.Context, id, farmerID uint) (*entities.CropPlan, error)
	// Get loads any plan with its crops; admin paths only.
	Get(ctx context.Context, id uint) (*entities.CropPlan, error)
	ListByFarmer(ctx context.Context, farmerID uint) ([]entities.CropPlan, error)
	ListByStatus(ctx context.Context, status string) ([]entities.CropPlan, error)
	UpdateStatus(ctx context.Context, id uint, status, remark string) error
	Delete(ctx context.Context, p *entities.CropPlan) error
	// CommittedAcres sums total_acres_allocated of non-rejected plans on the land.
	CommittedAcres(ctx context.Context, landID uint) (float64, error)
	// CommittedByLand is CommittedAcres for every land of the farmer.
	CommittedByLand(ctx context.Context, farmerID uint) (map[uint]float64, error)
	// AcresByCrop sums allocation acres per crop over non-rejected plans.
	AcresByCrop(ctx context.Context) ([]CropAcres, error)
}
