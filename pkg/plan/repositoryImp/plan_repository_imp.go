package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/plan/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) Transaction(ctx context.Context, fn func(tx repository.PlanRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&planRepo{tx})
	})
}

func (r *planRepo) Create(ctx context.Context, p *entities.CropPlan) error {
	// gorm saves the Crops association in the same transaction
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *planRepo) FindByID(ctx context.Context, id, farmerID uint) (*entities.CropPlan, error) {
	var p entities.CropPlan
	err := r.db.WithContext(ctx).Preload("Crops").
		Where("plan_id = ? AND farmer_id = ?", id, farmerID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) Get(ctx context.Context, id uint) (*entities.CropPlan, error) {
	var p entities.CropPlan
	if err := r.db.WithContext(ctx).Preload("Crops").Where("plan_id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) ListByFarmer(ctx context.Context, farmerID uint) ([]entities.CropPlan, error) {
	var ps []entities.CropPlan
	err := r.db.WithContext(ctx).Preload("Crops").
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC, plan_id DESC").Find(&ps).Error
	return ps, err
}

func (r *planRepo) ListByStatus(ctx context.Context, status string) ([]entities.CropPlan, error) {
	q := r.db.WithContext(ctx).Preload("Crops").Order("created_at DESC, plan_id DESC")
	if status != "" {
		q = q.Where("approval_status = ?", status)
	}
	var ps []entities.CropPlan
	err := q.Find(&ps).Error
	return ps, err
}

func (r *planRepo) UpdateStatus(ctx context.Context, id uint, status, remark string) error {
	res := r.db.WithContext(ctx).Model(&entities.CropPlan{}).Where("plan_id = ?", id).
		Updates(map[string]any{"approval_status": status, "admin_remark": remark})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *planRepo) Delete(ctx context.Context, p *entities.CropPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("crop_plan_id = ?", p.PlanID).Delete(&entities.CropAllocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}

func (r *planRepo) CommittedAcres(ctx context.Context, landID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entities.CropPlan{}).
		Select("COALESCE(SUM(total_acres_allocated), 0)").
		Where("land_id = ? AND approval_status <> ?", landID, entities.StatusRejected).
		Scan(&total).Error
	return total, err
}

func (r *planRepo) CommittedByLand(ctx context.Context, farmerID uint) (map[uint]float64, error) {
	var rows []struct {
		LandID uint
		Total  float64
	}
	err := r.db.WithContext(ctx).Model(&entities.CropPlan{}).
		Select("land_id, COALESCE(SUM(total_acres_allocated), 0) AS total").
		Where("farmer_id = ? AND approval_status <> ?", farmerID, entities.StatusRejected).
		Group("land_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]float64, len(rows))
	for _, r := range rows {
		out[r.LandID] = r.Total
	}
	return out, nil
}

func (r *planRepo) AcresByCrop(ctx context.Context) ([]repository.CropAcres, error) {
	var out []repository.CropAcres
	err := r.db.WithContext(ctx).Table("crop_allocations AS a").
		Select("a.crop_name AS crop_name, COALESCE(SUM(a.acres), 0) AS acres").
		Joins("JOIN crop_plans AS p ON p.plan_id = a.crop_plan_id").
		Where("p.approval_status <> ?", entities.StatusRejected).
		Group("a.crop_name").Order("a.crop_name").
		Scan(&out).Error
	return out, err
}
