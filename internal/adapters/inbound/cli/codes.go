package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workwayco/workway-validate/internal/adapters/outbound/tui"
	"github.com/workwayco/workway-validate/internal/domain"
)

func newCodesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List every finding code and its severity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				return renderJSON(cmd, domain.Catalog)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCodes(domain.Catalog))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the catalog as JSON")

	return cmd
}
