package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/land/repository"
)

type landRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LandRepository { return &landRepo{db} }

func (r *landRepo) Create(ctx context.Context, l *entities.Land) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *landRepo) Save(ctx context.Context, l *entities.Land) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *landRepo) Delete(ctx context.Context, l *entities.Land) error {
	return r.db.WithContext(ctx).Delete(l).Error
}

func (r *landRepo) FindByID(ctx context.Context, id, farmerID uint) (*entities.Land, error) {
	var l entities.Land
	if err := r.db.WithContext(ctx).Where("land_id = ? AND farmer_id = ?", id, farmerID).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *landRepo) Get(ctx context.Context, id uint) (*entities.Land, error) {
	var l entities.Land
	if err := r.db.WithContext(ctx).Where("land_id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *landRepo) ListByFarmer(ctx context.Context, farmerID uint, onlyApproved bool) ([]entities.Land, error) {
	q := r.db.WithContext(ctx).Where("farmer_id = ?", farmerID)
	if onlyApproved {
		q = q.Where("LOWER(approval_status) = ?", entities.StatusApproved)
	}
	var ls []entities.Land
	if err := q.Order("created_at DESC, land_id DESC").Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}

func (r *landRepo) ListByStatus(ctx context.Context, status string) ([]entities.Land, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, land_id DESC")
	if status != "" {
		q = q.Where("approval_status = ?", status)
	}
	var ls []entities.Land
	if err := q.Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}
