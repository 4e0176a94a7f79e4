package repository

import (
	"context"

	"alphafarm/entities"
)

type NewsRepository interface {
	Create(ctx context.Context, n *entities.News) error
	Save(ctx context.Context, n *entities.News) error
	Delete(ctx context.Context, n *entities.News) error
	FindByID(ctx context.Context, id uint) (*entities.News, error)
	// List returns every item, newest first.
	List(ctx context.Context) ([]entities.News, error)
	// ListPublished returns active approved items, important ones first.
	ListPublished(ctx context.Context) ([]entities.News, error)
}
