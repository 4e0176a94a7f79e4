package service

import (
	"context"
	"errors"
	"fmt"

	"alphafarm/entities"
	"alphafarm/pkg/plan/types"
)

var (
	ErrLandRequired    = errors.New("land_id required")
	ErrInvalidLand     = errors.New("Invalid land")
	ErrLandNotApproved = errors.New("Land not approved yet")
	ErrNotFound        = errors.New("Not found")
	ErrBadDate         = errors.New("dates must be YYYY-MM-DD")
)

// CapacityError rejects a plan that would allocate more acres than remain
// on the land.
type CapacityError struct {
	AllowedRemaining float64 `json:"allowed_remaining"`
	Requested        float64 `json:"requested"`
	AlreadyPlanned   float64 `json:"already_planned"`
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Total crop allocation exceeds limit: requested %.2f, remaining %.2f", e.Requested, e.AllowedRemaining)
}

// Body is the 400 response for a capacity rejection.
func (e *CapacityError) Body() map[string]any {
	return map[string]any{
		"detail":            "Total crop allocation exceeds limit",
		"allowed_remaining": e.AllowedRemaining,
		"requested":         e.Requested,
		"already_planned":   e.AlreadyPlanned,
	}
}

// CheckCapacity returns a *CapacityError when requested acres do not fit in
// what the land has left after committed acres.
func CheckCapacity(landArea, committed, requested float64) error {
	remaining := landArea - committed
	if requested > remaining+1e-9 {
		return &CapacityError{AllowedRemaining: remaining, Requested: requested, AlreadyPlanned: committed}
	}
	return nil
}

// Calendar maps YYYY-MM-DD to the events on that day.
type Calendar map[string][]types.CalendarItem

type PlanService interface {
	Create(ctx context.Context, farmerID uint, req types.CreatePlanRequest) (*entities.CropPlan, error)
	List(ctx context.Context, farmerID uint) ([]entities.CropPlan, error)
	Get(ctx context.Context, farmerID, id uint) (*entities.CropPlan, error)
	Delete(ctx context.Context, farmerID, id uint) error
	// Calendar lists sowing and harvest events; from/to are optional YYYY-MM-DD bounds.
	Calendar(ctx context.Context, farmerID uint, from, to string) (Calendar, error)
}
