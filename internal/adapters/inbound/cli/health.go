package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the validation engine is usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !workflow.HealthCheck() {
				return errors.New("validation engine is not healthy")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
