// Package draft holds the in-progress crop plan for one land parcel.
//
// A PlanDraft is a plain value: every transition returns a new draft and
// leaves the receiver untouched, so the form state can be copied, compared
// and tested without any UI or network. Session wraps a draft for callers
// that need the asynchronous yield lookups.
package draft

import (
	"strconv"
	"strings"
	"time"

	"alphafarm/pkg/catalog"
)

const DateLayout = "2006-01-02"

// Used in yield queries when the land has no location recorded.
const (
	DefaultDistrict = "Kolar"
	DefaultState    = "Karnataka"
)

// LandInfo is the read-only copy of an approved land the draft plans against.
type LandInfo struct {
	ID            uint    `json:"id"`
	TotalArea     float64 `json:"land_area"`
	CommittedArea float64 `json:"committed_area"` // acres already in earlier plans
	SoilType      string  `json:"soil_type"`
	District      string  `json:"district"`
	State         string  `json:"state"`
}

// Row is one crop allocation. HarvestDate, Season and ExpectedYield are
// derived; Revision increases on every edit so late yield responses can be
// matched against the inputs they were computed for.
type Row struct {
	ID            int            `json:"id"`
	Revision      int            `json:"revision"`
	Crop          catalog.Crop   `json:"crop"`
	Acres         float64        `json:"acres"`
	SeedVariety   string         `json:"seed_variety"`
	SowingDate    time.Time      `json:"sowing_date"`
	HarvestDate   time.Time      `json:"harvest_date"`
	Season        catalog.Season `json:"season"`
	ExpectedYield *float64       `json:"expected_yield,omitempty"`
}

// Field names an editable row attribute.
type Field int

const (
	FieldCrop Field = iota
	FieldAcres
	FieldSowingDate
	FieldSeedVariety
)

// YieldQuery is issued when a row has every input the estimator needs.
type YieldQuery struct {
	RowID          int
	Revision       int
	Crop           string
	Acres          float64
	SoilType       string
	Season         string
	IrrigationType string
	District       string
	State          string
}

type PlanDraft struct {
	Lands          []LandInfo `json:"lands"`
	Land           *LandInfo  `json:"land,omitempty"`
	IrrigationType string     `json:"irrigation_type"`
	Notes          string     `json:"notes"`
	Rows           []Row      `json:"rows"`
	Seq            int        `json:"seq"` // last row id handed out
}

// New starts a draft over the fetched lands with no land selected.
func New(lands []LandInfo) PlanDraft {
	d := PlanDraft{Lands: append([]LandInfo(nil), lands...)}
	d.Rows = []Row{d.newRow()}
	return d
}

func (d *PlanDraft) newRow() Row {
	d.Seq++
	return Row{ID: d.Seq}
}

func (d PlanDraft) clone() PlanDraft {
	d.Rows = append([]Row(nil), d.Rows...)
	return d
}

// SelectLand makes landID the active parcel and resets the rows to a single
// empty one. Ids outside the fetched lands are ignored.
func (d PlanDraft) SelectLand(landID uint) PlanDraft {
	for _, l := range d.Lands {
		if l.ID != landID {
			continue
		}
		out := d.clone()
		land := l
		out.Land = &land
		out.Rows = []Row{out.newRow()}
		return out
	}
	return d
}

// Reset clears the selection and rows after a successful submission. Row ids
// keep increasing so in-flight lookups never match a fresh row.
func (d PlanDraft) Reset() PlanDraft {
	out := d.clone()
	out.Land = nil
	out.IrrigationType = ""
	out.Notes = ""
	out.Rows = []Row{out.newRow()}
	return out
}

func (d PlanDraft) AddRow() PlanDraft {
	if d.Land == nil || d.RemainingCapacity() <= capacityEpsilon {
		return d
	}
	out := d.clone()
	out.Rows = append(out.Rows, out.newRow())
	return out
}

// RemoveRow deletes the row at index; the last row always stays.
func (d PlanDraft) RemoveRow(index int) PlanDraft {
	if len(d.Rows) <= 1 || index < 0 || index >= len(d.Rows) {
		return d
	}
	out := d.clone()
	out.Rows = append(out.Rows[:index], out.Rows[index+1:]...)
	return out
}

// UpdateRowField merges value into the row, re-derives harvest date and
// season, and returns a yield query when the row is complete.
func (d PlanDraft) UpdateRowField(index int, field Field, value string) (PlanDraft, *YieldQuery) {
	if index < 0 || index >= len(d.Rows) {
		return d, nil
	}
	out := d.clone()
	r := out.Rows[index]
	value = strings.TrimSpace(value)

	switch field {
	case FieldCrop:
		r.Crop = catalog.ParseCrop(value)
		if !r.Crop.Known() {
			r.Crop = catalog.CropNone
		}
	case FieldAcres:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 {
			v = 0
		}
		r.Acres = v
	case FieldSowingDate:
		t, err := time.Parse(DateLayout, value)
		if err != nil {
			t = time.Time{}
		}
		r.SowingDate = t
	case FieldSeedVariety:
		r.SeedVariety = value
	default:
		return d, nil
	}

	r.Revision++
	derive(&r)
	out.Rows[index] = r
	return out, out.query(r)
}

// SetIrrigationType changes the plan-wide irrigation and re-queries every
// complete row.
func (d PlanDraft) SetIrrigationType(value string) (PlanDraft, []YieldQuery) {
	out := d.clone()
	out.IrrigationType = strings.TrimSpace(value)
	var qs []YieldQuery
	for i := range out.Rows {
		out.Rows[i].Revision++
		derive(&out.Rows[i])
		if q := out.query(out.Rows[i]); q != nil {
			qs = append(qs, *q)
		}
	}
	return out, qs
}

func (d PlanDraft) SetNotes(notes string) PlanDraft {
	d.Notes = notes
	return d
}

// ApplyYield stores an estimation result if the row still exists and has not
// been edited since the query was issued.
func (d PlanDraft) ApplyYield(rowID, revision int, value float64) (PlanDraft, bool) {
	for i, r := range d.Rows {
		if r.ID != rowID {
			continue
		}
		if r.Revision != revision {
			return d, false
		}
		out := d.clone()
		v := value
		out.Rows[i].ExpectedYield = &v
		return out, true
	}
	return d, false
}

func derive(r *Row) {
	r.HarvestDate = time.Time{}
	if r.Crop != catalog.CropNone && !r.SowingDate.IsZero() {
		r.HarvestDate = r.SowingDate.AddDate(0, 0, r.Crop.Profile().Days())
	}
	r.Season = catalog.SeasonForDate(r.SowingDate)
}

func (d PlanDraft) query(r Row) *YieldQuery {
	if d.Land == nil || d.Land.SoilType == "" || d.IrrigationType == "" {
		return nil
	}
	if r.Crop == catalog.CropNone || r.Acres <= 0 || r.SowingDate.IsZero() || r.Season == catalog.SeasonNone {
		return nil
	}
	district, state := d.Land.District, d.Land.State
	if district == "" {
		district = DefaultDistrict
	}
	if state == "" {
		state = DefaultState
	}
	return &YieldQuery{
		RowID:          r.ID,
		Revision:       r.Revision,
		Crop:           r.Crop.String(),
		Acres:          r.Acres,
		SoilType:       d.Land.SoilType,
		Season:         r.Season.String(),
		IrrigationType: d.IrrigationType,
		District:       district,
		State:          state,
	}
}

// Treats float noise from committed areas as zero.
const capacityEpsilon = 1e-9

func (d PlanDraft) TotalAllocated() float64 {
	var sum float64
	for _, r := range d.Rows {
		sum += r.Acres
	}
	return sum
}

// RemainingCapacity is total - committed - allocated. Negative means the
// draft is over-allocated.
func (d PlanDraft) RemainingCapacity() float64 {
	var total, committed float64
	if d.Land != nil {
		total, committed = d.Land.TotalArea, d.Land.CommittedArea
	}
	return total - committed - d.TotalAllocated()
}

func (d PlanDraft) OverAllocated() bool {
	return d.RemainingCapacity() < -capacityEpsilon
}

// TotalExpectedYield sums the rows' yields that have arrived.
func (d PlanDraft) TotalExpectedYield() float64 {
	var sum float64
	for _, r := range d.Rows {
		if r.ExpectedYield != nil {
			sum += *r.ExpectedYield
		}
	}
	return sum
}
