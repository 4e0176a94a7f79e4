package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alphafarm/entities"
)

func TestCropLabel(t *testing.T) {
	plan := func(names ...string) entities.CropPlan {
		p := entities.CropPlan{PlanID: 12}
		for _, n := range names {
			p.Crops = append(p.Crops, entities.CropAllocation{CropName: n})
		}
		return p
	}
	assert.Equal(t, "Crop plan #12", CropLabel(plan()))
	assert.Equal(t, "Crop plan #12", CropLabel(plan("")))
	assert.Equal(t, "Ragi", CropLabel(plan("Ragi", "Ragi")))
	assert.Equal(t, "Maize + Paddy + Ragi", CropLabel(plan("Ragi", "Paddy", "Maize")))
	assert.Equal(t, "Beans + Maize + Paddy (+2 more)", CropLabel(plan("Ragi", "Paddy", "Maize", "Tomato", "Beans")))
}

func TestPlannedAreaFallbacks(t *testing.T) {
	land := entities.Land{LandArea: 4}
	assert.Equal(t, 2.5, plannedArea(entities.CropPlan{TotalAcresAllocated: 2.5}, land))
	assert.Equal(t, 3.0, plannedArea(entities.CropPlan{Crops: []entities.CropAllocation{{Acres: 1}, {Acres: 2}}}, land))
	assert.Equal(t, 4.0, plannedArea(entities.CropPlan{}, land))
}
