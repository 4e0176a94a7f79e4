package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/yield/repository"
)

type yieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.YieldConfigRepository { return &yieldRepo{db} }

func (r *yieldRepo) ForCrop(ctx context.Context, crop string) ([]entities.CropYieldConfig, error) {
	var rows []entities.CropYieldConfig
	err := r.db.WithContext(ctx).
		Where("crop_name = ? AND is_active = ?", crop, true).
		Order("config_id").Find(&rows).Error
	return rows, err
}

func (r *yieldRepo) List(ctx context.Context) ([]entities.CropYieldConfig, error) {
	var rows []entities.CropYieldConfig
	err := r.db.WithContext(ctx).Order("crop_name, config_id").Find(&rows).Error
	return rows, err
}

func (r *yieldRepo) Upsert(ctx context.Context, rows []entities.CropYieldConfig) (int, error) {
	n := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var cur entities.CropYieldConfig
			err := tx.Where("crop_name = ? AND soil_type = ? AND season = ? AND irrigation_type = ?",
				row.CropName, row.SoilType, row.Season, row.IrrigationType).First(&cur).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				row.ConfigID = 0
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				cur.YieldPerAcre, cur.IsActive = row.YieldPerAcre, row.IsActive
				if err := tx.Save(&cur).Error; err != nil {
					return err
				}
			}
			n++
		}
		return nil
	})
	return n, err
}
