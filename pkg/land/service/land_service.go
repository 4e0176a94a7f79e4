package service

import (
	"context"
	"errors"

	"alphafarm/entities"
)

var (
	ErrNotFound    = errors.New("Not found")
	ErrInvalidArea = errors.New("land_area must be greater than 0")
)

// LandInput carries farmer-editable fields. Nil fields are left unchanged on
// update.
type LandInput struct {
	Country        *string  `json:"country"`
	State          *string  `json:"state"`
	District       *string  `json:"district"`
	Village        *string  `json:"village"`
	SurveyNumber   *string  `json:"survey_number"`
	LandArea       *float64 `json:"land_area"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	SoilType       *string  `json:"soil_type"`
	IrrigationType *string  `json:"irrigation_type"`
}

type LandService interface {
	List(ctx context.Context, farmerID uint, onlyApproved bool) ([]entities.Land, error)
	Create(ctx context.Context, farmerID uint, in LandInput) (*entities.Land, error)
	Get(ctx context.Context, farmerID, id uint) (*entities.Land, error)
	Update(ctx context.Context, farmerID, id uint, in LandInput) (*entities.Land, error)
	Delete(ctx context.Context, farmerID, id uint) error
}
