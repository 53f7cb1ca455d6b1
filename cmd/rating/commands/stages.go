package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/academic-rating/internal/service"
)

const concurrencyNote = `
Batch stages must not run while submissions for the same period are being accepted.`

var stageDescriptions = map[string]string{
	service.StageRawCalc:       "Score every category report and aggregate generic results",
	service.StageTeacherPlaces: "Rank category reports and combine places per person",
	service.StageHeads:         "Rank heads of departments against their departments",
	service.StageFaculty:       "Rank faculties by the average combined places of their staff",
	service.StageDeans:         "Rank deans by their own and their faculty's places",
}

// StageCmds creates one command per pipeline stage
func StageCmds(app *AppContext) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(service.StageOrder))
	for _, name := range service.StageOrder {
		cmds = append(cmds, stageCmd(app, name))
	}
	return cmds
}

func stageCmd(app *AppContext, name string) *cobra.Command {
	var periodTitle string
	cmd := &cobra.Command{
		Use:   name,
		Short: stageDescriptions[name],
		Long:  stageDescriptions[name] + "." + concurrencyNote,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.Services.Periods.Resolve(app.Ctx, periodTitle)
			if err != nil {
				return err
			}
			reports, err := app.Services.Pipeline.Run(app.Ctx, period, name)
			printReports(cmd.OutOrStdout(), reports)
			return err
		},
	}
	cmd.Flags().StringVar(&periodTitle, "period", "", "report period title (defaults to the active period)")
	return cmd
}

// PipelineCmd runs every stage, or the listed ones, in order
func PipelineCmd(app *AppContext) *cobra.Command {
	var periodTitle string
	var stages []string
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the ranking stages in order",
		Long:  "Run raw-calc, teacher-places, heads, faculty and deans in order, stopping at the first failure." + concurrencyNote,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.Services.Periods.Resolve(app.Ctx, periodTitle)
			if err != nil {
				return err
			}
			reports, err := app.Services.Pipeline.Run(app.Ctx, period, stages...)
			printReports(cmd.OutOrStdout(), reports)
			return err
		},
	}
	cmd.Flags().StringVar(&periodTitle, "period", "", "report period title (defaults to the active period)")
	cmd.Flags().StringSliceVar(&stages, "stages", nil, "subset of stages to run")
	return cmd
}

// RefreshHeadsCmd re-blends every head and dean with their peers
func RefreshHeadsCmd(app *AppContext) *cobra.Command {
	var periodTitle string
	cmd := &cobra.Command{
		Use:   "refresh-heads",
		Short: "Recalculate cumulative results of heads and deans from stored category results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.Services.Periods.Resolve(app.Ctx, periodTitle)
			if err != nil {
				return err
			}
			report, err := app.Services.HeadsRefresh.Run(app.Ctx, period)
			printReports(cmd.OutOrStdout(), []service.StageReport{report})
			return err
		},
	}
	cmd.Flags().StringVar(&periodTitle, "period", "", "report period title (defaults to the active period)")
	return cmd
}

func printReports(out io.Writer, reports []service.StageReport) {
	for _, r := range reports {
		fmt.Fprintf(out, "%-15s processed=%d skipped=%d failed=%d duration=%s\n",
			r.Stage, r.Processed, r.Skipped, r.Failed, r.Duration.Round(time.Millisecond))
	}
}
