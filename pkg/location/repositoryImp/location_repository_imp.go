package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/location/repository"
)

type locationRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LocationRepository { return &locationRepo{db} }

func (r *locationRepo) States(ctx context.Context) ([]entities.State, error) {
	var out []entities.State
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *locationRepo) Districts(ctx context.Context, stateID uint) ([]entities.District, error) {
	q := r.db.WithContext(ctx).Order("name")
	if stateID != 0 {
		q = q.Where("state_id = ?", stateID)
	}
	var out []entities.District
	err := q.Find(&out).Error
	return out, err
}

func (r *locationRepo) Villages(ctx context.Context, districtID uint) ([]entities.Village, error) {
	q := r.db.WithContext(ctx).Order("name")
	if districtID != 0 {
		q = q.Where("district_id = ?", districtID)
	}
	var out []entities.Village
	err := q.Find(&out).Error
	return out, err
}
