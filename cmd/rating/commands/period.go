package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/academic-rating/internal/service"
)

// PeriodCmd groups report period management
func PeriodCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Manage report periods",
	}
	cmd.AddCommand(periodCreateCmd(app), periodActivateCmd(app))
	return cmd
}

func periodCreateCmd(app *AppContext) *cobra.Command {
	var workload float64
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create an inactive report period, e.g. 2024/2025",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.Services.Periods.Create(app.Ctx, service.CreatePeriodRequest{Title: args[0], AnnualWorkload: workload})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Period %s created (id %d, annual workload %.0f h)\n", period.Title, period.ID, period.AnnualWorkload)
			return nil
		},
	}
	cmd.Flags().Float64Var(&workload, "workload", 600, "annual workload in hours")
	return cmd
}

func periodActivateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <title>",
		Short: "Make a report period the only active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.Services.Periods.Activate(app.Ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Period %s is now active\n", period.Title)
			return nil
		},
	}
}
