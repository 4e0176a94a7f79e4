package repository

import (
	"context"

	"alphafarm/entities"
)

type AccountRepository interface {
	FindByPhone(ctx context.Context, phone string) (*entities.Account, error)
	FindByID(ctx context.Context, id uint) (*entities.Account, error)
	FirstAdmin(ctx context.Context) (*entities.Account, error)
	FarmerExists(ctx context.Context, phone string) (bool, error)
	FindFarmer(ctx context.Context, accountID uint) (*entities.Farmer, error)
	// CreateFarmerAccount inserts the account and its farmer profile together.
	CreateFarmerAccount(ctx context.Context, acc *entities.Account, f *entities.Farmer) error
	CreateFarmer(ctx context.Context, f *entities.Farmer) error
	// DeleteSignup removes the farmer profile and, for non-admins, the account.
	DeleteSignup(ctx context.Context, accountID uint) error
}
