package repository

import (
	"context"

	"alphafarm/entities"
)

// LocationRepository lists the seeded location tables. A zero parent id
// lists everything.
type LocationRepository interface {
	States(ctx context.Context) ([]entities.State, error)
	Districts(ctx context.Context, stateID uint) ([]entities.District, error)
	Villages(ctx context.Context, districtID uint) ([]entities.Village, error)
}
