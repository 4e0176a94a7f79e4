package serviceImp

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/event"
	"alphafarm/pkg/metrics"
	"alphafarm/pkg/news/repository"
	"alphafarm/pkg/news/scrape"
	"alphafarm/pkg/news/service"
)

// PageFetcher is satisfied by *scrape.Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*scrape.Page, error)
}

type newsSvc struct {
	repo    repository.NewsRepository
	fetch   PageFetcher
	events  event.Publisher
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewNewsService(r repository.NewsRepository, f PageFetcher, pub event.Publisher, m *metrics.Metrics, log *zap.Logger) service.NewsService {
	return &newsSvc{repo: r, fetch: f, events: pub, metrics: m, log: log}
}

func (s *newsSvc) List(ctx context.Context) ([]entities.News, error) { return s.repo.List(ctx) }

func (s *newsSvc) Published(ctx context.Context) ([]entities.News, error) {
	return s.repo.ListPublished(ctx)
}

func author(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func (s *newsSvc) Create(ctx context.Context, authorID uint, in service.NewsInput) (*entities.News, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, service.ErrTitleRequired
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	n := &entities.News{
		Title:       strings.TrimSpace(in.Title),
		Summary:     in.Summary,
		Content:     in.Content,
		ImageURL:    in.ImageURL,
		URL:         in.URL,
		Tags:        strings.TrimSpace(in.Tags),
		IsImportant: in.IsImportant,
		IsActive:    active,
		Status:      entities.StatusPending,
		AuthorID:    author(authorID),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *newsSvc) Import(ctx context.Context, authorID uint, in service.ImportInput) (*entities.News, error) {
	if strings.TrimSpace(in.URL) == "" {
		return nil, service.ErrURLRequired
	}
	page, err := s.fetch.Fetch(ctx, in.URL)
	if err != nil {
		return nil, err
	}
	title := page.Title
	if in.Title != "" {
		title = in.Title
	}
	n, err := s.Create(ctx, authorID, service.NewsInput{
		Title: title, Summary: page.Summary, Content: page.Content, ImageURL: page.ImageURL,
		URL: strings.TrimSpace(in.URL), Tags: in.Tags, IsImportant: in.IsImportant,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("news imported", zap.Uint("news_id", n.NewsID), zap.String("url", n.URL))
	return n, nil
}

func (s *newsSvc) find(ctx context.Context, id uint) (*entities.News, error) {
	n, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	return n, err
}

func (s *newsSvc) decide(ctx context.Context, adminID, id uint, status string) error {
	n, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	n.Status = status
	n.IsActive = status == entities.StatusApproved
	if err := s.repo.Save(ctx, n); err != nil {
		return err
	}
	s.metrics.ObserveDecision(event.KindNews, status)
	if s.events != nil {
		ev := event.Approval{Kind: event.KindNews, ID: n.NewsID, Status: status, DecidedBy: adminID, At: time.Now()}
		if err := s.events.PublishApproval(ctx, ev); err != nil {
			s.log.Warn("publish news event failed", zap.Uint("news_id", n.NewsID), zap.Error(err))
		}
	}
	return nil
}

func (s *newsSvc) Approve(ctx context.Context, adminID, id uint) error {
	return s.decide(ctx, adminID, id, entities.StatusApproved)
}

func (s *newsSvc) Reject(ctx context.Context, adminID, id uint) error {
	return s.decide(ctx, adminID, id, entities.StatusRejected)
}

func (s *newsSvc) Delete(ctx context.Context, id uint) error {
	n, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, n)
}
