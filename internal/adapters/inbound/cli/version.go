package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show workway-validate version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "workway-validate %s (%s), engine %s\n", version, commit, workflow.Version)
			return nil
		},
	}
}
