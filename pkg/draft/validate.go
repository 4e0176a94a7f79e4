package draft

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"alphafarm/pkg/catalog"
)

// Errors maps a field key ("land", "irrigation", "row-0-crop", "total", ...)
// to a message. An empty map means the draft can be submitted.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Has(key string) bool {
	_, ok := e[key]
	return ok
}

const AcreStep = 0.5

func RowKey(index int, field string) string {
	return fmt.Sprintf("row-%d-%s", index, field)
}

// onStep reports whether v is a multiple of AcreStep within float noise.
func onStep(v float64) bool {
	q := v / AcreStep
	return math.Abs(q-math.Round(q)) < 1e-6
}

// Validate returns every blocking problem with the draft.
func (d PlanDraft) Validate() Errors {
	errs := Errors{}
	if d.Land == nil {
		errs["land"] = "select a land"
	} else if d.Land.SoilType == "" {
		errs["soil"] = "land has no soil type"
	}
	if d.IrrigationType == "" {
		errs["irrigation"] = "select an irrigation type"
	}
	for i, r := range d.Rows {
		if r.Crop == catalog.CropNone {
			errs[RowKey(i, "crop")] = "select a crop"
		}
		switch {
		case r.Acres <= 0:
			errs[RowKey(i, "acres")] = "enter acres"
		case !onStep(r.Acres):
			errs[RowKey(i, "acres")] = "acres must be in steps of 0.5"
		}
		if r.SowingDate.IsZero() {
			errs[RowKey(i, "sowing")] = "select a sowing date"
		}
	}
	if d.Land != nil && d.OverAllocated() {
		errs["total"] = fmt.Sprintf("allocated %.1f acres exceeds available %.1f acres",
			d.TotalAllocated(), d.Land.TotalArea-d.Land.CommittedArea)
	}
	return errs
}
