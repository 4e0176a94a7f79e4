package serviceImp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/catalog"
	landrepo "alphafarm/pkg/land/repository"
	"alphafarm/pkg/metrics"
	planrepo "alphafarm/pkg/plan/repository"
	"alphafarm/pkg/plan/service"
	"alphafarm/pkg/plan/types"
)

const dateLayout = "2006-01-02"

type PlanSvc struct {
	// held across the capacity check and insert
	capMu   sync.Mutex
	plans   planrepo.PlanRepository
	lands   landrepo.LandRepository
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewPlanService(pr planrepo.PlanRepository, lr landrepo.LandRepository, m *metrics.Metrics, log *zap.Logger) *PlanSvc {
	return &PlanSvc{plans: pr, lands: lr, metrics: m, log: log}
}

var _ service.PlanService = (*PlanSvc)(nil)

func (s *PlanSvc) Create(ctx context.Context, farmerID uint, req types.CreatePlanRequest) (*entities.CropPlan, error) {
	p, err := s.create(ctx, farmerID, req)
	outcome := "accepted"
	var capErr *service.CapacityError
	switch {
	case errors.As(err, &capErr):
		outcome = "over_capacity"
	case err != nil:
		outcome = "rejected"
	}
	s.metrics.ObservePlan(outcome)
	return p, err
}

func (s *PlanSvc) create(ctx context.Context, farmerID uint, req types.CreatePlanRequest) (*entities.CropPlan, error) {
	if req.LandID == 0 {
		return nil, service.ErrLandRequired
	}
	land, err := s.lands.FindByID(ctx, req.LandID, farmerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrInvalidLand
	}
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(land.ApprovalStatus, entities.StatusApproved) {
		return nil, service.ErrLandNotApproved
	}

	var requested float64
	for _, c := range req.Crops {
		if c.Acres > 0 {
			requested += c.Acres
		}
	}

	soil := req.SoilType
	if soil == "" {
		soil = land.SoilType
	}
	p := &entities.CropPlan{
		FarmerID:            farmerID,
		LandID:              land.LandID,
		SoilType:            soil,
		Season:              req.Season,
		IrrigationType:      req.IrrigationType,
		Notes:               req.Notes,
		TotalAcresAllocated: requested,
		ApprovalStatus:      entities.StatusPending,
	}
	for _, c := range req.Crops {
		if a, ok := allocation(c); ok {
			p.Crops = append(p.Crops, a)
		}
	}

	s.capMu.Lock()
	defer s.capMu.Unlock()
	err = s.plans.Transaction(ctx, func(tx planrepo.PlanRepository) error {
		committed, err := tx.CommittedAcres(ctx, land.LandID)
		if err != nil {
			return err
		}
		if err := service.CheckCapacity(land.LandArea, committed, requested); err != nil {
			return err
		}
		return tx.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("crop plan created",
		zap.Uint("plan_id", p.PlanID), zap.Uint("land_id", p.LandID),
		zap.Float64("acres", requested), zap.Int("crops", len(p.Crops)))
	return p, nil
}

// allocation converts a request line; lines without a name or acres are skipped.
func allocation(c types.CropEntry) (entities.CropAllocation, bool) {
	name := strings.TrimSpace(c.CropName)
	if name == "" || c.Acres <= 0 {
		return entities.CropAllocation{}, false
	}
	a := entities.CropAllocation{CropName: name, Acres: c.Acres, SeedVariety: strings.TrimSpace(c.SeedVariety)}
	if d, err := time.Parse(dateLayout, c.SowingDate); err == nil {
		a.SowingDate = &d
	}
	if d, err := time.Parse(dateLayout, c.ExpectedHarvestDate); err == nil {
		a.ExpectedHarvestDate = &d
	} else if a.SowingDate != nil {
		h := a.SowingDate.AddDate(0, 0, catalog.ProfileFor(name).Days())
		a.ExpectedHarvestDate = &h
	}
	if c.ExpectedYield > 0 {
		y := c.ExpectedYield
		per := y / c.Acres
		a.ExpectedYield, a.ExpectedYieldPerAcre = &y, &per
	}
	return a, true
}

func (s *PlanSvc) List(ctx context.Context, farmerID uint) ([]entities.CropPlan, error) {
	return s.plans.ListByFarmer(ctx, farmerID)
}

func (s *PlanSvc) Get(ctx context.Context, farmerID, id uint) (*entities.CropPlan, error) {
	p, err := s.plans.FindByID(ctx, id, farmerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	return p, err
}

func (s *PlanSvc) Delete(ctx context.Context, farmerID, id uint) error {
	p, err := s.Get(ctx, farmerID, id)
	if err != nil {
		return err
	}
	return s.plans.Delete(ctx, p)
}

func (s *PlanSvc) Calendar(ctx context.Context, farmerID uint, from, to string) (service.Calendar, error) {
	var lo, hi time.Time
	var err error
	if from != "" {
		if lo, err = time.Parse(dateLayout, from); err != nil {
			return nil, service.ErrBadDate
		}
	}
	if to != "" {
		if hi, err = time.Parse(dateLayout, to); err != nil {
			return nil, service.ErrBadDate
		}
	}
	inRange := func(d time.Time) bool {
		return (lo.IsZero() || !d.Before(lo)) && (hi.IsZero() || !d.After(hi))
	}

	plans, err := s.plans.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	cal := service.Calendar{} // "YYYY-MM-DD" -> items
	add := func(d *time.Time, kind string, p entities.CropPlan, a entities.CropAllocation) {
		if d == nil || !inRange(*d) {
			return
		}
		ds := d.Format(dateLayout)
		cal[ds] = append(cal[ds], types.CalendarItem{
			AllocationID: a.AllocationID, PlanID: p.PlanID, LandID: p.LandID,
			Type: kind, CropName: a.CropName, Acres: a.Acres, Status: p.ApprovalStatus,
		})
	}
	for _, p := range plans {
		if p.ApprovalStatus == entities.StatusRejected {
			continue
		}
		for _, a := range p.Crops {
			add(a.SowingDate, "sowing", p, a)
			add(a.ExpectedHarvestDate, "harvest", p, a)
		}
	}
	return cal, nil
}
