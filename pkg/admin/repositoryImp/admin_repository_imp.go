package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/admin/repository"
)

type adminRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AdminRepository { return &adminRepo{db} }

func (r *adminRepo) landOwners() *gorm.DB {
	return r.db.Model(&entities.Land{}).Select("farmer_id")
}

func (r *adminRepo) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Account{}).Count(&n).Error
	return n, err
}

func (r *adminRepo) FarmerStats(ctx context.Context) (total, completed int64, err error) {
	if err = r.db.WithContext(ctx).Model(&entities.Farmer{}).
		Where("farmer_id IN (?)", r.landOwners()).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&entities.Farmer{}).
		Where("farmer_id IN (?)", r.landOwners()).
		Where("village IS NOT NULL AND village <> ''").Count(&completed).Error
	return total, completed, err
}

func (r *adminRepo) FarmersByDistrict(ctx context.Context) ([]repository.DistrictCount, error) {
	var rows []repository.DistrictCount
	err := r.db.WithContext(ctx).Model(&entities.Farmer{}).
		Select("district, COUNT(*) AS count").
		Where("farmer_id IN (?)", r.landOwners()).
		Group("district").Order("count DESC, district").
		Scan(&rows).Error
	return rows, err
}

func (r *adminRepo) LandStatusCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&entities.Land{}).
		Select("approval_status AS status, COUNT(*) AS count").
		Group("approval_status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] += row.Count
	}
	return out, nil
}

func (r *adminRepo) PendingFarmers(ctx context.Context, limit int) ([]entities.Farmer, error) {
	pending := r.db.Model(&entities.Land{}).Select("farmer_id").Where("approval_status = ?", entities.StatusPending)
	var fs []entities.Farmer
	err := r.db.WithContext(ctx).Where("farmer_id IN (?)", pending).
		Order("farmer_id").Limit(limit).Find(&fs).Error
	return fs, err
}

func (r *adminRepo) FarmersByIDs(ctx context.Context, ids []uint) (map[uint]entities.Farmer, error) {
	out := make(map[uint]entities.Farmer, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var fs []entities.Farmer
	if err := r.db.WithContext(ctx).Where("farmer_id IN ?", ids).Find(&fs).Error; err != nil {
		return nil, err
	}
	for _, f := range fs {
		out[f.FarmerID] = f
	}
	return out, nil
}

func (r *adminRepo) LandsByIDs(ctx context.Context, ids []uint) (map[uint]entities.Land, error) {
	out := make(map[uint]entities.Land, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var ls []entities.Land
	if err := r.db.WithContext(ctx).Where("land_id IN ?", ids).Find(&ls).Error; err != nil {
		return nil, err
	}
	for _, l := range ls {
		out[l.LandID] = l
	}
	return out, nil
}

func (r *adminRepo) SetFarmerStatus(ctx context.Context, farmerID uint, status string) error {
	return r.db.WithContext(ctx).Model(&entities.Farmer{}).
		Where("farmer_id = ?", farmerID).Update("approval_status", status).Error
}
