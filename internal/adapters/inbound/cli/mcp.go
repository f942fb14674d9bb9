package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpadapter "github.com/workwayco/workway-validate/internal/adapters/inbound/mcp"
	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol host bridge",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve validator tools over stdio",
		Long: `Serve the validator over MCP on stdin/stdout. Editors and agents get the
workway_validate, workway_validate_file, workway_check_cron and
workway_health tools plus the code catalog as a resource.

Logs go to stderr; stdout carries protocol frames only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			info, err := os.Stat(root)
			if err != nil {
				return fmt.Errorf("project path: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("project path %s is not a directory", root)
			}

			log := newLogger(cmd)
			defer func() { _ = log.Sync() }()

			stdio := server.NewStdioServer(mcpadapter.NewWorkwayMCPServer(root, log))
			stdio.SetErrorLogger(zap.NewStdLog(log.Desugar()))

			log.Infow("mcp server listening", "project", root, "engine", workflow.Version)
			err = stdio.Listen(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root whose .workway.yaml applies")

	return cmd
}
