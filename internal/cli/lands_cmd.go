package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLandsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lands",
		Short: "List approved lands and their free acreage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireToken(); err != nil {
				return err
			}
			lands, err := app.client().Lands(cmd.Context())
			if err != nil {
				return err
			}
			if len(lands) == 0 {
				fmt.Fprintln(app.Out, "No approved lands.")
				return nil
			}
			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDISTRICT\tSOIL\tAREA\tPLANNED\tFREE")
			for _, l := range lands {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
					l.ID, l.District, l.SoilType, l.TotalArea, l.CommittedArea, l.TotalArea-l.CommittedArea)
			}
			return w.Flush()
		},
	}
}
