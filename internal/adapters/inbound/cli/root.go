package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/workwayco/workway-validate/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workway-validate",
		Short: "Static checks for WORKWAY workflow definitions",
		Long: "workway-validate checks WORKWAY workflow source files for missing structure, " +
			"Workers runtime incompatibilities and common mistakes before they are published.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default $"+logger.EnvLevel+" or warn)")
	cmd.PersistentFlags().String("log-format", logger.FormatConsole, "Log format: console or json")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newCronCmd())
	cmd.AddCommand(newCodesCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// newLogger builds the stderr logger from the persistent log flags.
func newLogger(cmd *cobra.Command) *zap.SugaredLogger {
	level, format := "", logger.FormatConsole
	if f := cmd.Flag("log-level"); f != nil {
		level = f.Value.String()
	}
	if f := cmd.Flag("log-format"); f != nil {
		format = f.Value.String()
	}
	return logger.New(logger.ResolveLevel(level), format)
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI. Interrupts cancel the command context so watch mode
// and in-flight validation stop cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
