package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/service"
)

// Submission is one YAML document of a submissions file.
type Submission struct {
	ProfileID      int64                       `yaml:"profile_id"`
	Period         string                      `yaml:"period"`
	Generic        *service.GenericInput       `yaml:"generic"`
	Educational    *models.EducationalInput    `yaml:"educational"`
	Scientific     *models.ScientificInput     `yaml:"scientific"`
	Organizational *models.OrganizationalInput `yaml:"organizational"`
}

// Activities returns the category inputs present in the document.
func (s Submission) Activities() []models.Activity {
	var out []models.Activity
	if s.Educational != nil {
		out = append(out, s.Educational)
	}
	if s.Scientific != nil {
		out = append(out, s.Scientific)
	}
	if s.Organizational != nil {
		out = append(out, s.Organizational)
	}
	return out
}

// ParseSubmissions decodes every document of a multi-document YAML stream.
func ParseSubmissions(r io.Reader) ([]Submission, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out []Submission
	for i := 1; ; i++ {
		var s Submission
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if s.ProfileID <= 0 {
			return nil, fmt.Errorf("document %d: profile_id is required", i)
		}
		out = append(out, s)
	}
}

// SubmitCmd loads report submissions from a YAML file
func SubmitCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <file.yaml>",
		Short: "Submit generic and category reports from a YAML file",
		Long: `Submit reports for the active period. Each YAML document holds one person's
profile_id, an optional period title and any of the generic, educational,
scientific and organizational sections. Cumulative results of heads and deans
are refreshed before the command exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open submissions: %w", err)
			}
			defer f.Close()

			subs, err := ParseSubmissions(f)
			if err != nil {
				return err
			}

			svc := app.Services
			svc.HeadsRefresh.Start(app.Ctx)

			out := cmd.OutOrStdout()
			var failed int
			for _, s := range subs {
				if err := submitOne(app, s); err != nil {
					failed++
					fmt.Fprintf(out, "profile %d: %v\n", s.ProfileID, err)
					continue
				}
				fmt.Fprintf(out, "profile %d: accepted\n", s.ProfileID)
			}

			ctx, cancel := drainContext(app)
			defer cancel()
			if err := svc.HeadsRefresh.Drain(ctx); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d submissions rejected", failed, len(subs))
			}
			return nil
		},
	}
}

func submitOne(app *AppContext, s Submission) error {
	reports := app.Services.Reports
	if s.Generic != nil {
		if _, err := reports.SubmitGeneric(app.Ctx, s.ProfileID, s.Period, *s.Generic); err != nil {
			return err
		}
	}
	for _, activity := range s.Activities() {
		if _, err := reports.SubmitCategory(app.Ctx, s.ProfileID, s.Period, activity); err != nil {
			return fmt.Errorf("%s: %w", activity.Kind(), err)
		}
	}
	return nil
}

// CloseCmd freezes a person's report
func CloseCmd(app *AppContext) *cobra.Command {
	var periodTitle string
	cmd := &cobra.Command{
		Use:   "close <profile_id>",
		Short: "Close a person's report for further editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Services.Reports.Close(app.Ctx, id, periodTitle); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report of profile %d closed\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&periodTitle, "period", "", "report period title (defaults to the active period)")
	return cmd
}
