package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	cacheAdapter "github.com/workwayco/workway-validate/internal/adapters/outbound/cache"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/config"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/gitinfo"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/history"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/scanner"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/tui"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/watcher"
	"github.com/workwayco/workway-validate/internal/application"
	"github.com/workwayco/workway-validate/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		jsonOutput  bool
		strict      bool
		changed     bool
		watch       bool
		noCache     bool
		showHistory bool
		fromStdin   bool
		projectPath string
	)

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate workflow definitions",
		Long: "Validate workflow source files. Directories are searched for files matching the configured " +
			"include suffixes. With no paths, the project root is validated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			log := newLogger(cmd)
			defer func() { _ = log.Sync() }()

			svc := application.NewValidateService(
				scanner.New(),
				config.New(),
				cacheAdapter.New(),
				gitinfo.New(),
				history.New(),
				log,
			)
			opts := application.ValidateOptions{Strict: strict, NoCache: noCache, RecordHistory: true}

			switch {
			case showHistory:
				entries, err := svc.History(absPath)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil

			case fromStdin:
				content, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				report, err := svc.ValidateSource(absPath, "stdin", string(content), opts)
				if err != nil {
					return err
				}
				batch := &domain.BatchReport{Files: []domain.FileReport{*report}}
				batch.Summarize()
				if err := renderBatch(cmd, batch, jsonOutput); err != nil {
					return err
				}
				return batchError(batch)

			case changed:
				report, err := svc.ValidateChanged(cmd.Context(), absPath, opts)
				if err != nil {
					return fmt.Errorf("validation failed: %w", err)
				}
				if err := renderBatch(cmd, report, jsonOutput); err != nil {
					return err
				}
				return batchError(report)
			}

			if len(args) == 0 {
				args = []string{absPath}
			}

			report, err := svc.ValidatePaths(cmd.Context(), absPath, args, opts)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			if err := renderBatch(cmd, report, jsonOutput); err != nil {
				return err
			}

			if watch {
				return watchAndValidate(cmd, svc, absPath, args, opts, jsonOutput)
			}
			return batchError(report)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings")
	cmd.Flags().BoolVar(&changed, "changed", false, "Validate only files changed in the git worktree")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-validate files as they change")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignore and clear the result cache")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show validation history")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Validate workflow source read from stdin")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root holding "+config.FileName+" and .workway/")
	cmd.MarkFlagsMutuallyExclusive("stdin", "changed", "watch", "history")

	return cmd
}

func watchAndValidate(cmd *cobra.Command, svc *application.ValidateService, projectPath string, paths []string, opts application.ValidateOptions, jsonOutput bool) error {
	cfg, err := svc.LoadConfig(projectPath)
	if err != nil {
		return err
	}
	dirs, err := watcher.Dirs(paths)
	if err != nil {
		return fmt.Errorf("resolving watch paths: %w", err)
	}

	log := newLogger(cmd)
	opts.RecordHistory = false
	w := watcher.New(dirs, cfg.Matches, func(changed []string) {
		report, err := svc.ValidatePaths(cmd.Context(), projectPath, changed, opts)
		if err != nil {
			log.Errorw("re-validation failed", "err", err)
			return
		}
		if err := renderBatch(cmd, report, jsonOutput); err != nil {
			log.Errorw("rendering report", "err", err)
		}
	}, watcher.WithLogger(log))

	if err := w.Start(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes. Press Ctrl+C to stop.")
	<-cmd.Context().Done()
	return w.Stop()
}

// renderBatch prints a single-file run as a full report and larger runs as
// a summary table. JSON for a single file is the bare validation result.
func renderBatch(cmd *cobra.Command, report *domain.BatchReport, jsonOutput bool) error {
	if len(report.Files) == 1 {
		return renderFileReport(cmd, &report.Files[0], jsonOutput)
	}
	if jsonOutput {
		return renderJSON(cmd, report.Files)
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderBatch(report))
	return nil
}

func renderFileReport(cmd *cobra.Command, report *domain.FileReport, jsonOutput bool) error {
	if jsonOutput {
		if report.Result != nil {
			return renderJSON(cmd, report.Result)
		}
		return renderJSON(cmd, report)
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderFileReport(*report))
	return nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func batchError(report *domain.BatchReport) error {
	if report.Status != domain.StatusFail {
		return nil
	}
	return fmt.Errorf("validation failed: %d error(s), %d warning(s) across %d file(s)",
		report.ErrorCount, report.WarningCount, len(report.Files))
}
