package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/cli/config"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

var (
	headerColor = color.New(color.Bold, color.Underline)
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
)

func categoryColor(c types.RiskCategory) *color.Color {
	switch c {
	case types.RiskCategoryHigh:
		return highColor
	case types.RiskCategoryMedium:
		return mediumColor
	default:
		return lowColor
	}
}

func cmdSummary() *cli.Command {
	var backendCfg config.Backend
	var risk string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "risk",
			Usage:       "Also list the students of this category [All|High|Medium|Low] (full labels such as \"High Risk\" are accepted)",
			Sources:     cli.EnvVars("RISKBOARD_SUMMARY_RISK"),
			Destination: &risk,
		},
	}
	flags = append(flags, backendCfg.Flags()...)

	return &cli.Command{
		Name:  "summary",
		Usage: "Print the risk counts of the dashboard to the terminal",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var filter types.RiskFilter
			if risk != "" {
				f, err := types.ParseRiskFilter(risk)
				if err != nil {
					return goerr.Wrap(usecase.ErrInvalidFilter, err.Error(), goerr.V("risk", risk))
				}
				filter = f
			}

			role, err := backendCfg.Role()
			if err != nil {
				return err
			}
			api, err := backendCfg.Configure()
			if err != nil {
				return err
			}

			dashboard := usecase.NewDashboard(api, role, backendCfg.MentorName())
			dashboard.Load(ctx)

			return printSummary(os.Stdout, dashboard, filter)
		},
	}
}

// printSummary writes the loaded sections of dashboard to w. A failed section
// prints its placeholder; the returned error reports how many failed.
func printSummary(w io.Writer, dashboard *usecase.Dashboard, filter types.RiskFilter) error {
	failed := 0

	title := "Student Risk Summary"
	if dashboard.Role().IsMentor() {
		title = "My Students"
		if name := dashboard.MentorName(); name != "" {
			title += " (" + name + ")"
		}
	}
	_, _ = headerColor.Fprintln(w, title)

	if stats, err := dashboard.Statistics(); err != nil {
		failed++
		_, _ = errorColor.Fprintln(w, "Failed to load statistics.")
	} else {
		_, _ = fmt.Fprintf(w, "  %-8s %d\n", "Total", stats.Total)
		_, _ = highColor.Fprintf(w, "  %-8s %d\n", "High", stats.High)
		_, _ = mediumColor.Fprintf(w, "  %-8s %d\n", "Medium", stats.Medium)
		_, _ = lowColor.Fprintf(w, "  %-8s %d\n", "Low", stats.Low)
	}

	if !dashboard.Role().IsMentor() {
		_, _ = fmt.Fprintln(w)
		_, _ = headerColor.Fprintln(w, "Mentor Workload")
		mentors, err := dashboard.MentorWorkloads()
		switch {
		case err != nil:
			failed++
			_, _ = errorColor.Fprintln(w, "Failed to load mentor stats.")
		case len(mentors) == 0:
			_, _ = fmt.Fprintln(w, "No mentor data available.")
		default:
			_, _ = fmt.Fprintf(w, "  %-24s %6s %6s %6s %6s\n", "Mentor", "Total", "High", "Medium", "Low")
			for _, m := range mentors {
				_, _ = fmt.Fprintf(w, "  %-24s %6d %6d %6d %6d\n", m.MentorName, m.Total, m.High, m.Medium, m.Low)
			}
		}
	}

	if filter != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = headerColor.Fprintf(w, "Students (%s)\n", filter)
		students, err := dashboard.Students(filter)
		switch {
		case err != nil:
			failed++
			_, _ = errorColor.Fprintln(w, "Failed to load student data.")
		case len(students) == 0:
			_, _ = fmt.Fprintf(w, "No students found for the %q category.\n", filter.String())
		default:
			for _, s := range students {
				_, _ = categoryColor(s.Category).Fprintf(w, "  %-10s %-24s %6.2f %s\n",
					s.ID, s.Name, s.FinalRiskScore, s.Category)
			}
		}
	}

	if failed > 0 {
		return goerr.New("some dashboard sections failed to load", goerr.V("failed_sections", failed))
	}
	return nil
}
