package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/farmer/repository"
)

type farmerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmerRepository { return &farmerRepo{db} }

func (r *farmerRepo) FindByID(ctx context.Context, id uint) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.WithContext(ctx).Where("farmer_id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepo) Save(ctx context.Context, f *entities.Farmer) error {
	return r.db.WithContext(ctx).Save(f).Error
}
