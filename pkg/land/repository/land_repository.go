package repository

import (
	"context"

	"alphafarm/entities"
)

type LandRepository interface {
	Create(ctx context.Context, l *entities.Land) error
	Save(ctx context.Context, l *entities.Land) error
	Delete(ctx context.Context, l *entities.Land) error
	// FindByID only matches lands owned by farmerID.
	FindByID(ctx context.Context, id, farmerID uint) (*entities.Land, error)
	// Get loads any land; admin paths only.
	Get(ctx context.Context, id uint) (*entities.Land, error)
	ListByFarmer(ctx context.Context, farmerID uint, onlyApproved bool) ([]entities.Land, error)
	ListByStatus(ctx context.Context, status string) ([]entities.Land, error)
}
