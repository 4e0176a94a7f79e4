package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var SoilTypes = []string{
	"Alluvial", "Black", "Red", "Laterite", "Desert", "Mountain", "Sandy Loam", "Clay Loam",
}

var IrrigationTypes = []string{"Rainfed", "Canal", "Tube well", "Drip", "Sprinkler"}

// Factors scale a crop's base yield per acre. Missing keys count as 1.0.
type Factors struct {
	Soil       map[string]float64 `yaml:"soil"`
	Season     map[string]float64 `yaml:"season"`
	Irrigation map[string]float64 `yaml:"irrigation"`
}

func DefaultFactors() Factors {
	return Factors{
		Soil: map[string]float64{
			"Alluvial":   1.05,
			"Black":      1.05,
			"Red":        1.0,
			"Laterite":   0.9,
			"Desert":     0.7,
			"Mountain":   0.85,
			"Sandy Loam": 0.95,
			"Clay Loam":  1.0,
		},
		Season: map[string]float64{
			Kharif.String():    1.0,
			Rabi.String():      1.05,
			Zaid.String():      0.9,
			Perennial.String(): 1.0,
		},
		Irrigation: map[string]float64{
			"Rainfed":   0.85,
			"Canal":     1.05,
			"Tube well": 1.0,
			"Drip":      1.1,
			"Sprinkler": 1.05,
		},
	}
}

func factor(m map[string]float64, k string) float64 {
	if v, ok := m[k]; ok && v > 0 {
		return v
	}
	return 1.0
}

// YieldPerAcre applies soil, season and irrigation factors to the crop's
// base yield.
func (f Factors) YieldPerAcre(crop, soil, season, irrigation string) float64 {
	base := ProfileFor(crop).YieldPerAcre()
	return base * factor(f.Soil, soil) * factor(f.Season, season) * factor(f.Irrigation, irrigation)
}

// LoadFactors reads a YAML override file and merges it over the defaults.
func LoadFactors(path string) (Factors, error) {
	f := DefaultFactors()
	if path == "" {
		return f, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read factors %s: %w", path, err)
	}
	var over Factors
	if err := yaml.Unmarshal(b, &over); err != nil {
		return f, fmt.Errorf("parse factors %s: %w", path, err)
	}
	merge := func(dst, src map[string]float64) {
		for k, v := range src {
			dst[k] = v
		}
	}
	merge(f.Soil, over.Soil)
	merge(f.Season, over.Season)
	merge(f.Irrigation, over.Irrigation)
	return f, nil
}
