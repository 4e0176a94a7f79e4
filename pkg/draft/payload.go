package draft

import (
	"alphafarm/pkg/catalog"
	"alphafarm/pkg/plan/types"
)

// BuildSubmissionPayload serializes the draft into the crop-plan request.
// The plan season is the first row's derived season.
func (d PlanDraft) BuildSubmissionPayload() types.CreatePlanRequest {
	req := types.CreatePlanRequest{
		IrrigationType:      d.IrrigationType,
		Notes:               d.Notes,
		TotalAcresAllocated: d.TotalAllocated(),
		Crops:               make([]types.CropEntry, 0, len(d.Rows)),
	}
	if d.Land != nil {
		req.LandID = d.Land.ID
		req.SoilType = d.Land.SoilType
	}
	for _, r := range d.Rows {
		if req.Season == "" && r.Season != catalog.SeasonNone {
			req.Season = r.Season.String()
		}
		e := types.CropEntry{
			CropName:    r.Crop.String(),
			Acres:       r.Acres,
			SeedVariety: r.SeedVariety,
		}
		if !r.SowingDate.IsZero() {
			e.SowingDate = r.SowingDate.Format(DateLayout)
		}
		if !r.HarvestDate.IsZero() {
			e.ExpectedHarvestDate = r.HarvestDate.Format(DateLayout)
		}
		if r.ExpectedYield != nil {
			e.ExpectedYield = *r.ExpectedYield
		}
		req.Crops = append(req.Crops, e)
	}
	return req
}
