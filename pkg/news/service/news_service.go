package service

import (
	"context"
	"errors"

	"alphafarm/entities"
)

var (
	ErrNotFound      = errors.New("Not found")
	ErrTitleRequired = errors.New("title is required")
	ErrURLRequired   = errors.New("url required")
)

type NewsInput struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	URL         string `json:"url"`
	Tags        string `json:"tags"`
	IsImportant bool   `json:"is_important"`
	IsActive    *bool  `json:"is_active"`
}

// ImportInput names a page to turn into a news item. Title overrides the
// scraped one when set.
type ImportInput struct {
	URL         string `json:"url"`
	Tags        string `json:"tags"`
	Title       string `json:"title"`
	IsImportant bool   `json:"is_important"`
}

type NewsService interface {
	List(ctx context.Context) ([]entities.News, error)
	// Create stores a pending item; the admin still has to approve it.
	Create(ctx context.Context, authorID uint, in NewsInput) (*entities.News, error)
	Import(ctx context.Context, authorID uint, in ImportInput) (*entities.News, error)
	Approve(ctx context.Context, adminID, id uint) error
	Reject(ctx context.Context, adminID, id uint) error
	Delete(ctx context.Context, id uint) error
	Published(ctx context.Context) ([]entities.News, error)
}
