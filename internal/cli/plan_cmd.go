package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"alphafarm/pkg/draft"
)

var errPlanInvalid = errors.New("plan has errors")

// rowSpec is one --row value: crop:acres:YYYY-MM-DD[:variety].
type rowSpec struct {
	Crop, Acres, Sowing, Variety string
}

func parseRow(s string) (rowSpec, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return rowSpec{}, fmt.Errorf("row %q: want crop:acres:YYYY-MM-DD[:variety]", s)
	}
	if _, err := strconv.ParseFloat(parts[1], 64); err != nil {
		return rowSpec{}, fmt.Errorf("row %q: bad acres", s)
	}
	r := rowSpec{Crop: parts[0], Acres: parts[1], Sowing: parts[2]}
	if len(parts) == 4 {
		r.Variety = parts[3]
	}
	return r, nil
}

type rowSummary struct {
	Crop          string   `yaml:"crop"`
	Acres         float64  `yaml:"acres"`
	SeedVariety   string   `yaml:"seed_variety,omitempty"`
	SowingDate    string   `yaml:"sowing_date,omitempty"`
	HarvestDate   string   `yaml:"harvest_date,omitempty"`
	Season        string   `yaml:"season,omitempty"`
	ExpectedYield *float64 `yaml:"expected_yield_quintals,omitempty"`
}

type planSummary struct {
	LandID             uint              `yaml:"land_id"`
	Rows               []rowSummary      `yaml:"rows"`
	TotalAllocated     float64           `yaml:"total_allocated"`
	Remaining          float64           `yaml:"remaining"`
	TotalExpectedYield float64           `yaml:"total_expected_yield"`
	Errors             map[string]string `yaml:"errors,omitempty"`
}

func summarize(d draft.PlanDraft, errs draft.Errors) planSummary {
	out := planSummary{
		TotalAllocated:     d.TotalAllocated(),
		Remaining:          d.RemainingCapacity(),
		TotalExpectedYield: d.TotalExpectedYield(),
	}
	if d.Land != nil {
		out.LandID = d.Land.ID
	}
	if len(errs) > 0 {
		out.Errors = errs
	}
	for _, r := range d.Rows {
		rs := rowSummary{
			Crop:          r.Crop.String(),
			Acres:         r.Acres,
			SeedVariety:   r.SeedVariety,
			ExpectedYield: r.ExpectedYield,
		}
		if !r.SowingDate.IsZero() {
			rs.SowingDate = r.SowingDate.Format("2006-01-02")
			rs.HarvestDate = r.HarvestDate.Format("2006-01-02")
			rs.Season = r.Season.String()
		}
		out.Rows = append(out.Rows, rs)
	}
	return out
}

func newPlanCmd(app *App) *cobra.Command {
	var (
		landID     uint
		irrigation string
		rows       []string
		notes      string
		dryRun     bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Draft and submit a crop plan for one land",
		Example: `  planctl plan --land 7 --irrigation Drip --row Maize:2:2024-06-10 --row Ragi:1.5:2024-07-01:MR-6
  planctl plan --land 7 --irrigation Drip --row Tomato:1:2024-09-01 --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireToken(); err != nil {
				return err
			}
			specs := make([]rowSpec, 0, len(rows))
			for _, r := range rows {
				rs, err := parseRow(r)
				if err != nil {
					return err
				}
				specs = append(specs, rs)
			}

			ctx := cmd.Context()
			c := app.client()
			lands, err := c.Lands(ctx)
			if err != nil {
				return fmt.Errorf("load lands: %w", err)
			}

			s := draft.NewSession(ctx, lands, c, c, app.Log)
			s.SelectLand(landID)
			s.SetIrrigationType(irrigation)
			s.SetNotes(notes)
			for i, rs := range specs {
				if i > 0 {
					s.AddRow()
					if d := s.Draft(); len(d.Rows) <= i {
						s.Wait()
						errs := draft.Errors{"total": fmt.Sprintf(
							"no room for row %d (%s): %.1f acres remaining", i+1, rs.Crop, d.RemainingCapacity())}
						_ = yaml.NewEncoder(app.Out).Encode(summarize(s.Draft(), errs))
						return errPlanInvalid
					}
				}
				s.UpdateRowField(i, draft.FieldCrop, rs.Crop)
				s.UpdateRowField(i, draft.FieldSowingDate, rs.Sowing)
				s.UpdateRowField(i, draft.FieldSeedVariety, rs.Variety)
				s.UpdateRowField(i, draft.FieldAcres, rs.Acres)
			}
			s.Wait()

			if dryRun {
				d := s.Draft()
				return yaml.NewEncoder(app.Out).Encode(summarize(d, d.Validate()))
			}

			err = s.Submit(ctx)
			var verrs draft.Errors
			if errors.As(err, &verrs) {
				_ = yaml.NewEncoder(app.Out).Encode(summarize(s.Draft(), verrs))
				return errPlanInvalid
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Crop plan submitted for approval.")
			return nil
		},
	}
	cmd.Flags().UintVar(&landID, "land", 0, "approved land id (see planctl lands)")
	cmd.Flags().StringVar(&irrigation, "irrigation", "", "irrigation type, e.g. Drip")
	cmd.Flags().StringArrayVar(&rows, "row", nil, "crop:acres:YYYY-MM-DD[:variety], repeatable")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the draft without submitting")
	_ = cmd.MarkFlagRequired("land")
	return cmd
}
