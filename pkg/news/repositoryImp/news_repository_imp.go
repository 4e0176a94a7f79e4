package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/news/repository"
)

type newsRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.NewsRepository { return &newsRepo{db} }

func (r *newsRepo) Create(ctx context.Context, n *entities.News) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *newsRepo) Save(ctx context.Context, n *entities.News) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *newsRepo) Delete(ctx context.Context, n *entities.News) error {
	return r.db.WithContext(ctx).Delete(n).Error
}

func (r *newsRepo) FindByID(ctx context.Context, id uint) (*entities.News, error) {
	var n entities.News
	if err := r.db.WithContext(ctx).Where("news_id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *newsRepo) List(ctx context.Context) ([]entities.News, error) {
	var ns []entities.News
	err := r.db.WithContext(ctx).Order("created_at DESC, news_id DESC").Find(&ns).Error
	return ns, err
}

func (r *newsRepo) ListPublished(ctx context.Context) ([]entities.News, error) {
	var ns []entities.News
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND status = ?", true, entities.StatusApproved).
		Order("is_important DESC, created_at DESC, news_id DESC").
		Find(&ns).Error
	return ns, err
}
