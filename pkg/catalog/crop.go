package catalog

import "strings"

// Crop is the closed set of crops a plan can allocate land to.
type Crop int

const (
	CropNone Crop = iota
	CropUnknown
	Ragi
	Paddy
	Maize
	Tur
	HorseGram
	Cowpea
	Groundnut
	Pulses
	Sugarcane
	Tomato
	Potato
	Onion
	Beans
	Cabbage
	Cauliflower
	Brinjal
	Chilli
	Carrot
	Radish
	Capsicum
	LeafyVegetables
)

const (
	DefaultHarvestDays = 100
	DefaultBaseYield   = 5.0 // quintals per acre
)

// Profile holds the per-crop agronomy constants used for derived fields.
type Profile struct {
	Name        string
	HarvestDays int     // sowing -> harvest
	BaseYield   float64 // quintals per acre before factors
}

// Days returns the harvest duration, falling back to DefaultHarvestDays.
func (p Profile) Days() int {
	if p.HarvestDays <= 0 {
		return DefaultHarvestDays
	}
	return p.HarvestDays
}

// YieldPerAcre returns the base yield, falling back to DefaultBaseYield.
func (p Profile) YieldPerAcre() float64 {
	if p.BaseYield <= 0 {
		return DefaultBaseYield
	}
	return p.BaseYield
}

var profiles = map[Crop]Profile{
	// field crops
	Ragi:      {Name: "Ragi", HarvestDays: 120, BaseYield: 5.6},
	Paddy:     {Name: "Paddy", HarvestDays: 120, BaseYield: 8.2},
	Maize:     {Name: "Maize", HarvestDays: 110, BaseYield: 9.7},
	Tur:       {Name: "Tur", HarvestDays: 160, BaseYield: 3.2},
	HorseGram: {Name: "Horse Gram", HarvestDays: 100, BaseYield: 2.4},
	Cowpea:    {Name: "Cowpea", HarvestDays: 90, BaseYield: 2.8},
	Groundnut: {Name: "Groundnut", HarvestDays: 110, BaseYield: 3.2},
	Pulses:    {Name: "Pulses", HarvestDays: 90, BaseYield: 2.6},
	Sugarcane: {Name: "Sugarcane", HarvestDays: 365, BaseYield: 360.0},

	// vegetables
	Tomato:          {Name: "Tomato", HarvestDays: 120, BaseYield: 100.0},
	Potato:          {Name: "Potato", HarvestDays: 110, BaseYield: 100.0},
	Onion:           {Name: "Onion", HarvestDays: 120, BaseYield: 80.0},
	Beans:           {Name: "Beans", HarvestDays: 75, BaseYield: 32.0},
	Cabbage:         {Name: "Cabbage", HarvestDays: 90, BaseYield: 92.0},
	Cauliflower:     {Name: "Cauliflower", HarvestDays: 100, BaseYield: 76.0},
	Brinjal:         {Name: "Brinjal", HarvestDays: 130, BaseYield: 72.0},
	Chilli:          {Name: "Chilli", HarvestDays: 180, BaseYield: 12.0},
	Carrot:          {Name: "Carrot", HarvestDays: 110, BaseYield: 100.0},
	Radish:          {Name: "Radish", HarvestDays: 60, BaseYield: 80.0},
	Capsicum:        {Name: "Capsicum", HarvestDays: 140, BaseYield: 120.0},
	LeafyVegetables: {Name: "Leafy Vegetables", HarvestDays: 45, BaseYield: 60.0},
}

var byName = func() map[string]Crop {
	m := make(map[string]Crop, len(profiles))
	for c, p := range profiles {
		m[normalize(p.Name)] = c
	}
	return m
}()

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParseCrop maps a catalog name (case and spacing insensitive) to its Crop.
// Empty input yields CropNone; anything outside the catalog yields CropUnknown.
func ParseCrop(name string) Crop {
	n := normalize(name)
	if n == "" {
		return CropNone
	}
	if c, ok := byName[n]; ok {
		return c
	}
	return CropUnknown
}

// Known reports whether c is a catalog crop.
func (c Crop) Known() bool {
	_, ok := profiles[c]
	return ok
}

// Profile returns the crop's constants. CropNone and CropUnknown get the
// default profile.
func (c Crop) Profile() Profile {
	if p, ok := profiles[c]; ok {
		return p
	}
	return Profile{Name: c.String()}
}

func (c Crop) String() string {
	switch c {
	case CropNone:
		return ""
	case CropUnknown:
		return "Unknown"
	}
	return profiles[c].Name
}

// Crops lists the catalog in declaration order.
func Crops() []Crop {
	out := make([]Crop, 0, len(profiles))
	for c := Ragi; c <= LeafyVegetables; c++ {
		out = append(out, c)
	}
	return out
}

// ProfileFor looks up a free-form crop name, returning the default profile
// (named after the input) when the crop is outside the catalog.
func ProfileFor(name string) Profile {
	c := ParseCrop(name)
	if c.Known() {
		return c.Profile()
	}
	return Profile{Name: strings.TrimSpace(name)}
}
