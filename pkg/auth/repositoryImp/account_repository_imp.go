package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/auth/repository"
)

type accountRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AccountRepository { return &accountRepo{db} }

func (r *accountRepo) FindByPhone(ctx context.Context, phone string) (*entities.Account, error) {
	var a entities.Account
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepo) FindByID(ctx context.Context, id uint) (*entities.Account, error) {
	var a entities.Account
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepo) FirstAdmin(ctx context.Context) (*entities.Account, error) {
	var a entities.Account
	if err := r.db.WithContext(ctx).Where("role = ?", entities.RoleAdmin).Order("account_id").First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepo) FarmerExists(ctx context.Context, phone string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entities.Farmer{}).Where("phone = ?", phone).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *accountRepo) FindFarmer(ctx context.Context, accountID uint) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *accountRepo) CreateFarmerAccount(ctx context.Context, acc *entities.Account, f *entities.Farmer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc).Error; err != nil {
			return err
		}
		f.AccountID = acc.AccountID
		return tx.Create(f).Error
	})
}

func (r *accountRepo) CreateFarmer(ctx context.Context, f *entities.Farmer) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *accountRepo) DeleteSignup(ctx context.Context, accountID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&entities.Farmer{}).Error; err != nil {
			return err
		}
		return tx.Where("account_id = ? AND role <> ?", accountID, entities.RoleAdmin).Delete(&entities.Account{}).Error
	})
}
