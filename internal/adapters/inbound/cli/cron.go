package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/workwayco/workway-validate/internal/adapters/outbound/schedule"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/tui"
	"github.com/workwayco/workway-validate/internal/application"
)

func newCronCmd() *cobra.Command {
	var (
		jsonOutput bool
		next       int
	)

	cmd := &cobra.Command{
		Use:   "cron <expression>",
		Short: "Check a cron expression and preview when it fires",
		Long: "Check a five-field cron expression (minute hour day month weekday) with the same rules " +
			"used for schedule() triggers, then list its next fire times.",
		Example: "  workway-validate cron '0 8 * * *' --next 3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Unquoted expressions arrive as one argument per field.
			expr := strings.Join(args, " ")

			svc := application.NewCronService(schedule.New(), newLogger(cmd))
			report := svc.Check(expr, time.Now(), next)

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCron(report.Expression, report.Error, report.Next))
			}

			if !report.Valid {
				return errors.New("invalid cron expression")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the check as JSON")
	cmd.Flags().IntVar(&next, "next", 5, fmt.Sprintf("Number of upcoming fire times to list (max %d)", schedule.MaxRuns))

	return cmd
}
