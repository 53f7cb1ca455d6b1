package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/service"
)

var rankingLevels = []models.RankingLevel{
	models.LevelTeachers,
	models.LevelHeads,
	models.LevelFaculties,
	models.LevelDeans,
	models.LevelEducational,
	models.LevelScientific,
	models.LevelOrganizational,
}

// PlacesCmd prints a ranked table
func PlacesCmd(app *AppContext) *cobra.Command {
	var periodTitle string
	names := make([]string, len(rankingLevels))
	for i, l := range rankingLevels {
		names[i] = string(l)
	}
	cmd := &cobra.Command{
		Use:       "places <level>",
		Short:     "Print computed places for a ranking level",
		Long:      "Print computed places. Levels: " + strings.Join(names, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.Services.Periods.Resolve(app.Ctx, periodTitle)
			if err != nil {
				return err
			}
			entries, err := app.Services.Rankings.Places(app.Ctx, period, models.RankingLevel(args[0]))
			if err != nil {
				return err
			}
			return printPlaces(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().StringVar(&periodTitle, "period", "", "report period title (defaults to the active period)")
	return cmd
}

func printPlaces(out io.Writer, entries []models.RankingEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLACE\tNAME\tSCORE")
	for _, e := range entries {
		place := "-"
		if e.Place != nil {
			place = strconv.Itoa(*e.Place)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", place, e.Name, e.Score)
	}
	return w.Flush()
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func drainContext(app *AppContext) (context.Context, context.CancelFunc) {
	return context.WithTimeout(app.Ctx, service.DrainTimeout)
}
