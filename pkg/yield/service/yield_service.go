package service

import (
	"context"
	"errors"
	"io"

	"alphafarm/entities"
	"alphafarm/pkg/plan/types"
)

const (
	SourceConfig   = "db_crop_yield_config"
	SourceFallback = "local_fallback_table"
	Unit           = "quintals"
)

var ErrBadQuery = errors.New("crop and valid acres (>0) are required")

type Query struct {
	Crop           string
	Acres          float64
	SoilType       string
	Season         string
	IrrigationType string
	District       string
	State          string
}

type YieldService interface {
	Estimate(ctx context.Context, q Query) (*types.YieldEstimate, error)
	Configs(ctx context.Context) ([]entities.CropYieldConfig, error)
	// Import loads configs from an .xlsx or .csv stream and returns the row count.
	Import(ctx context.Context, r io.Reader, ext string) (int, error)
}
