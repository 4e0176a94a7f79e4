package repository

import (
	"context"

	"alphafarm/entities"
)

type FarmerRepository interface {
	FindByID(ctx context.Context, id uint) (*entities.Farmer, error)
	Save(ctx context.Context, f *entities.Farmer) error
}
