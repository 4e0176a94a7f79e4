package repository

import (
	"context"

	"alphafarm/entities"
)

type DistrictCount struct {
	District string `json:"district"`
	Count    int64  `json:"count"`
}

// AdminRepository holds the cross-table queries behind the admin console.
// Single-record land and plan access goes through their own repositories.
type AdminRepository interface {
	CountAccounts(ctx context.Context) (int64, error)
	// FarmerStats counts farmers owning at least one land, and those of them
	// with a village filled in.
	FarmerStats(ctx context.Context) (total, completed int64, err error)
	FarmersByDistrict(ctx context.Context) ([]DistrictCount, error)
	LandStatusCounts(ctx context.Context) (map[string]int64, error)
	PendingFarmers(ctx context.Context, limit int) ([]entities.Farmer, error)
	FarmersByIDs(ctx context.Context, ids []uint) (map[uint]entities.Farmer, error)
	LandsByIDs(ctx context.Context, ids []uint) (map[uint]entities.Land, error)
	SetFarmerStatus(ctx context.Context, farmerID uint, status string) error
}
