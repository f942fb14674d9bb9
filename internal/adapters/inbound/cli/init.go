package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/workwayco/workway-validate/internal/adapters/outbound/config"
	"github.com/workwayco/workway-validate/internal/domain"
)

const configHeader = `# workway-validate configuration
#
# include:        file suffixes treated as workflow sources
# exclude_paths:  directory names or paths (relative to this file) to skip
# ignore_codes:   warning codes to suppress (error codes cannot be ignored)
# strict:         fail the run on warnings
# max_workers:    files validated in parallel
# max_file_bytes: larger files are reported instead of validated

`

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a " + config.FileName + " configuration file",
		Long:  "Create a " + config.FileName + " with the default settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			data, err := config.Marshal(domain.DefaultConfig())
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}

			if err := os.WriteFile(dest, append([]byte(configHeader), data...), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing "+config.FileName)

	return cmd
}
