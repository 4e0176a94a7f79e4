package serviceImp

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"

	"go.uber.org/zap"

	"alphafarm/entities"
	"alphafarm/pkg/catalog"
	"alphafarm/pkg/metrics"
	"alphafarm/pkg/plan/types"
	"alphafarm/pkg/yield/external"
	"alphafarm/pkg/yield/importer"
	"alphafarm/pkg/yield/repository"
	"alphafarm/pkg/yield/service"
)

// Upstream is satisfied by *external.Client.
type Upstream interface {
	YieldPerAcre(ctx context.Context, q external.Query) (float64, string, error)
}

type yieldSvc struct {
	repo     repository.YieldConfigRepository
	upstream Upstream // nil when no API is configured
	factors  catalog.Factors
	metrics  *metrics.Metrics
	log      *zap.Logger
}

func NewYieldService(r repository.YieldConfigRepository, up Upstream, f catalog.Factors, m *metrics.Metrics, log *zap.Logger) service.YieldService {
	return &yieldSvc{repo: r, upstream: up, factors: f, metrics: m, log: log}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Estimate tries the external API, then stored configs, then the catalog
// factor table.
func (s *yieldSvc) Estimate(ctx context.Context, q service.Query) (*types.YieldEstimate, error) {
	q.Crop = strings.TrimSpace(q.Crop)
	if q.Crop == "" || !(q.Acres > 0) {
		return nil, service.ErrBadQuery
	}
	if q.District == "" {
		q.District = "Kolar"
	}
	if q.State == "" {
		q.State = "Karnataka"
	}

	perAcre, source, err := s.perAcre(ctx, q)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveYield(source)
	return &types.YieldEstimate{
		Crop:          q.Crop,
		District:      q.District,
		State:         q.State,
		Acres:         q.Acres,
		YieldPerAcre:  round(perAcre, 2),
		ExpectedYield: round(perAcre*q.Acres, 1),
		Unit:          service.Unit,
		Source:        source,
	}, nil
}

func (s *yieldSvc) perAcre(ctx context.Context, q service.Query) (float64, string, error) {
	if s.upstream != nil {
		v, src, err := s.upstream.YieldPerAcre(ctx, external.Query{
			Crop: q.Crop, District: q.District, State: q.State,
			SoilType: q.SoilType, Season: q.Season, IrrigationType: q.IrrigationType,
		})
		if err == nil {
			return v, src, nil
		}
		if !errors.Is(err, external.ErrNoData) {
			s.log.Warn("yield api failed, using local data", zap.String("crop", q.Crop), zap.Error(err))
		}
	}

	cfgs, err := s.repo.ForCrop(ctx, q.Crop)
	if err != nil {
		return 0, "", err
	}
	if cfg := Pick(cfgs, q.SoilType, q.Season, q.IrrigationType); cfg != nil {
		return cfg.YieldPerAcre, service.SourceConfig, nil
	}
	return s.factors.YieldPerAcre(q.Crop, q.SoilType, q.Season, q.IrrigationType), service.SourceFallback, nil
}

// Pick finds the best config: exact match first, then irrigation, season
// and soil are dropped to wildcards in that order.
func Pick(cfgs []entities.CropYieldConfig, soil, season, irrigation string) *entities.CropYieldConfig {
	tries := [][3]string{
		{soil, season, irrigation},
		{soil, season, ""},
		{soil, "", ""},
		{"", "", ""},
	}
	for _, t := range tries {
		for i := range cfgs {
			c := &cfgs[i]
			if c.SoilType == t[0] && c.Season == t[1] && c.IrrigationType == t[2] {
				return c
			}
		}
	}
	return nil
}

func (s *yieldSvc) Configs(ctx context.Context) ([]entities.CropYieldConfig, error) {
	return s.repo.List(ctx)
}

func (s *yieldSvc) Import(ctx context.Context, r io.Reader, ext string) (int, error) {
	rows, err := importer.Load(r, ext)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.Upsert(ctx, rows)
	if err != nil {
		return 0, err
	}
	s.log.Info("yield configs imported", zap.Int("rows", n))
	return n, nil
}
