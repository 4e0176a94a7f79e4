package serviceImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"alphafarm/entities"
	repo "alphafarm/pkg/land/repository"
	"alphafarm/pkg/land/service"
)

type landSvc struct{ r repo.LandRepository }

func NewLandService(r repo.LandRepository) service.LandService { return &landSvc{r} }

func (s *landSvc) List(ctx context.Context, farmerID uint, onlyApproved bool) ([]entities.Land, error) {
	return s.r.ListByFarmer(ctx, farmerID, onlyApproved)
}

func (s *landSvc) Create(ctx context.Context, farmerID uint, in service.LandInput) (*entities.Land, error) {
	if in.LandArea == nil || *in.LandArea <= 0 {
		return nil, service.ErrInvalidArea
	}
	l := &entities.Land{FarmerID: farmerID, Country: "India", ApprovalStatus: entities.StatusPending}
	apply(l, in)
	if err := s.r.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *landSvc) Get(ctx context.Context, farmerID, id uint) (*entities.Land, error) {
	l, err := s.r.FindByID(ctx, id, farmerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	return l, err
}

// Update applies the patch. Changing any field on an approved land sends it
// back for review.
func (s *landSvc) Update(ctx context.Context, farmerID, id uint, in service.LandInput) (*entities.Land, error) {
	l, err := s.Get(ctx, farmerID, id)
	if err != nil {
		return nil, err
	}
	if in.LandArea != nil && *in.LandArea <= 0 {
		return nil, service.ErrInvalidArea
	}
	if apply(l, in) && l.ApprovalStatus == entities.StatusApproved {
		l.ApprovalStatus = entities.StatusPending
	}
	if err := s.r.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *landSvc) Delete(ctx context.Context, farmerID, id uint) error {
	l, err := s.Get(ctx, farmerID, id)
	if err != nil {
		return err
	}
	return s.r.Delete(ctx, l)
}

// apply copies set fields into l and reports whether anything changed.
func apply(l *entities.Land, in service.LandInput) bool {
	changed := false
	str := func(dst *string, v *string) {
		if v != nil && *dst != *v {
			*dst, changed = *v, true
		}
	}
	num := func(dst *float64, v *float64) {
		if v != nil && *dst != *v {
			*dst, changed = *v, true
		}
	}
	opt := func(dst **float64, v *float64) {
		if v == nil {
			return
		}
		if *dst == nil || **dst != *v {
			x := *v
			*dst, changed = &x, true
		}
	}
	str(&l.Country, in.Country)
	str(&l.State, in.State)
	str(&l.District, in.District)
	str(&l.Village, in.Village)
	str(&l.SurveyNumber, in.SurveyNumber)
	num(&l.LandArea, in.LandArea)
	opt(&l.Latitude, in.Latitude)
	opt(&l.Longitude, in.Longitude)
	str(&l.SoilType, in.SoilType)
	str(&l.IrrigationType, in.IrrigationType)
	return changed
}
