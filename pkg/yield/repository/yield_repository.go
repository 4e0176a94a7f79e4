package repository

import (
	"context"

	"alphafarm/entities"
)

type YieldConfigRepository interface {
	// ForCrop returns the active configs for a crop, in id order.
	ForCrop(ctx context.Context, crop string) ([]entities.CropYieldConfig, error)
	List(ctx context.Context) ([]entities.CropYieldConfig, error)
	// Upsert inserts or updates rows keyed by crop/soil/season/irrigation.
	Upsert(ctx context.Context, rows []entities.CropYieldConfig) (int, error)
}
