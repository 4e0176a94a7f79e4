package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"alphafarm/entities"
	farmerrepo "alphafarm/pkg/farmer/repository"
	"alphafarm/pkg/farmer/service"
	landrepo "alphafarm/pkg/land/repository"
	planrepo "alphafarm/pkg/plan/repository"
)

type farmerSvc struct {
	farmers farmerrepo.FarmerRepository
	lands   landrepo.LandRepository
	plans   planrepo.PlanRepository
}

func NewFarmerService(fr farmerrepo.FarmerRepository, lr landrepo.LandRepository, pr planrepo.PlanRepository) service.FarmerService {
	return &farmerSvc{farmers: fr, lands: lr, plans: pr}
}

func (s *farmerSvc) find(ctx context.Context, id uint) (*entities.Farmer, error) {
	f, err := s.farmers.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	return f, err
}

func (s *farmerSvc) Profile(ctx context.Context, farmerID uint) (*service.Profile, error) {
	f, err := s.find(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	lands, err := s.lands.ListByFarmer(ctx, farmerID, false)
	if err != nil {
		return nil, err
	}
	plans, err := s.plans.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	return &service.Profile{Farmer: *f, Lands: lands, CropPlans: planRows(plans, lands)}, nil
}

// planRows lists every allocation in id order. Farmers whose plans carry no
// allocations get one row per plan instead, newest first.
func planRows(plans []entities.CropPlan, lands []entities.Land) []service.PlanRow {
	byID := make(map[uint]entities.Land, len(lands))
	for _, l := range lands {
		byID[l.LandID] = l
	}
	row := func(id uint, crop string, acres float64, p entities.CropPlan) service.PlanRow {
		r := service.PlanRow{
			ID: id, CropName: crop, Acres: acres,
			ApprovalStatus: p.ApprovalStatus, Season: p.Season,
			SoilType: p.SoilType, IrrigationType: p.IrrigationType,
		}
		if l, ok := byID[p.LandID]; ok {
			landID := l.LandID
			r.LandID = &landID
			r.LandVillage, r.LandDistrict, r.LandState = l.Village, l.District, l.State
		}
		return r
	}

	out := []service.PlanRow{}
	for _, p := range plans {
		for _, a := range p.Crops {
			out = append(out, row(a.AllocationID, a.CropName, a.Acres, p))
		}
	}
	if len(out) > 0 {
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out
	}
	for _, p := range plans {
		acres := p.TotalAcresAllocated
		if acres == 0 {
			acres = byID[p.LandID].LandArea
		}
		out = append(out, row(p.PlanID, fmt.Sprintf("Crop plan #%d", p.PlanID), acres, p))
	}
	return out
}

func (s *farmerSvc) Recommendations(ctx context.Context, farmerID uint) (*service.Recommendations, error) {
	if _, err := s.find(ctx, farmerID); err != nil {
		return nil, err
	}
	totals, err := s.plans.AcresByCrop(ctx)
	if err != nil {
		return nil, err
	}
	out := &service.Recommendations{
		GoodCrops: []string{}, RiskyCrops: []string{},
		BenchmarkAcres: service.BenchmarkAcres, Crops: totals,
	}
	if out.Crops == nil {
		out.Crops = []planrepo.CropAcres{}
	}
	for _, t := range totals {
		if t.Acres < service.BenchmarkAcres {
			out.GoodCrops = append(out.GoodCrops, t.CropName)
		} else {
			out.RiskyCrops = append(out.RiskyCrops, t.CropName)
		}
	}
	return out, nil
}

func (s *farmerSvc) Update(ctx context.Context, farmerID uint, in service.ProfileInput) (*entities.Farmer, error) {
	f, err := s.find(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&f.Name, in.Name)
	set(&f.Village, in.Village)
	set(&f.District, in.District)
	set(&f.State, in.State)
	if in.LandArea != nil {
		f.LandArea = *in.LandArea
	}
	if err := s.farmers.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
