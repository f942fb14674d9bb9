package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/workwayco/workway-validate/internal/domain"
	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

// ErrNotGitRepo is returned by ValidateChanged outside a git repository.
var ErrNotGitRepo = errors.New("not a git repository")

// ValidateOptions are per-run overrides on top of .workway.yaml.
type ValidateOptions struct {
	Strict        bool // warnings fail the run, in addition to config.strict
	NoCache       bool // ignore and drop the result cache
	RecordHistory bool // append the run to .workway/history
}

// ValidateService orchestrates a validation run:
// load config → expand paths → read + validate in parallel → cache → summarize → history.
type ValidateService struct {
	scanner      domain.SourceScanner
	configLoader domain.ConfigLoader
	cache        domain.CacheStore
	git          domain.GitInfo
	history      domain.RunHistory
	logger       *zap.SugaredLogger
	now          func() time.Time
}

// NewValidateService creates a new ValidateService with all required dependencies.
func NewValidateService(
	scanner domain.SourceScanner,
	configLoader domain.ConfigLoader,
	cache domain.CacheStore,
	git domain.GitInfo,
	history domain.RunHistory,
	logger *zap.SugaredLogger,
) *ValidateService {
	return &ValidateService{
		scanner: scanner, configLoader: configLoader, cache: cache,
		git: git, history: history, logger: logger,
		now: time.Now,
	}
}

// LoadConfig returns the project's configuration.
func (s *ValidateService) LoadConfig(projectPath string) (domain.ProjectConfig, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// ValidateSource validates in-memory content, such as stdin or an MCP
// request. name is only used to label the report.
func (s *ValidateService) ValidateSource(projectPath, name, content string, opts ValidateOptions) (*domain.FileReport, error) {
	cfg, err := s.LoadConfig(projectPath)
	if err != nil {
		return nil, err
	}
	report := s.buildReport(cfg, opts, name, workflow.Validate(content))
	return &report, nil
}

// ValidateChanged validates the workflow sources that git reports as
// modified or untracked under projectPath.
func (s *ValidateService) ValidateChanged(ctx context.Context, projectPath string, opts ValidateOptions) (*domain.BatchReport, error) {
	cfg, err := s.LoadConfig(projectPath)
	if err != nil {
		return nil, err
	}

	if !s.git.IsGitRepo(projectPath) {
		return nil, fmt.Errorf("listing changed files in %s: %w", projectPath, ErrNotGitRepo)
	}

	changed, err := s.git.ChangedFiles(projectPath)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	absProject, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	var files []string
	for _, f := range changed {
		if within(absProject, f) && cfg.Matches(f) {
			files = append(files, f)
		}
	}
	s.logger.Debugw("changed sources", "count", len(files), "changed", len(changed))

	return s.run(ctx, projectPath, cfg, files, opts)
}

// ValidatePaths validates files and directories. Directories are expanded
// with the scanner; explicit files are validated even when they do not
// match the include suffixes. An empty paths list means projectPath.
// Report order follows the expanded input order.
func (s *ValidateService) ValidatePaths(ctx context.Context, projectPath string, paths []string, opts ValidateOptions) (*domain.BatchReport, error) {
	cfg, err := s.LoadConfig(projectPath)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []string{projectPath}
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := s.scanner.Scan(p, cfg)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		files = append(files, found...)
	}

	return s.run(ctx, projectPath, cfg, files, opts)
}

// History returns the recorded runs for projectPath, oldest first.
func (s *ValidateService) History(projectPath string) ([]domain.RunEntry, error) {
	entries, err := s.history.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}

func (s *ValidateService) run(ctx context.Context, projectPath string, cfg domain.ProjectConfig, files []string, opts ValidateOptions) (*domain.BatchReport, error) {
	cfg = cfg.WithDefaults()
	rc := s.loadCache(projectPath, opts.NoCache)

	reports := make([]domain.FileReport, len(files))
	var (
		mu    sync.Mutex
		dirty bool
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxWorkers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := readSource(path, cfg.MaxFileBytes)
			if err != nil {
				s.logger.Debugw("unreadable source", "file", path, "err", err)
				reports[i] = domain.FileReport{Path: path, Status: domain.StatusFail, ReadError: err.Error()}
				return nil
			}

			key := domain.ContentKey(content)
			var result domain.ValidationResult
			cached := false
			if rc != nil {
				mu.Lock()
				if r, ok := rc.Results[key]; ok && r != nil {
					result, cached = *r, true
				}
				mu.Unlock()
			}
			if !cached {
				result = workflow.Validate(string(content))
				if rc != nil {
					mu.Lock()
					rc.Results[key] = &result
					dirty = true
					mu.Unlock()
				}
			}

			reports[i] = s.buildReport(cfg, opts, path, result)
			reports[i].Cached = cached
			s.logger.Debugw("validated", "file", path, "status", reports[i].Status, "cached", cached)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if rc != nil && dirty {
		if err := s.cache.Save(projectPath, rc); err != nil {
			s.logger.Warnw("saving result cache", "err", err)
		}
	}

	batch := &domain.BatchReport{Files: reports}
	if hash, err := s.git.CommitHash(projectPath); err == nil {
		batch.CommitHash = hash
	}
	batch.Summarize()

	s.logger.Infow("validation finished",
		"files", len(reports), "status", batch.Status,
		"errors", batch.ErrorCount, "warnings", batch.WarningCount)

	if opts.RecordHistory {
		entry := domain.RunEntry{
			Timestamp:  s.now().Format(time.RFC3339),
			CommitHash: batch.CommitHash,
			Files:      len(reports),
			Errors:     batch.ErrorCount,
			Warnings:   batch.WarningCount,
			Status:     batch.Status,
		}
		if err := s.history.Save(projectPath, entry); err != nil {
			s.logger.Warnw("saving history", "err", err) // best-effort
		}
	}

	return batch, nil
}

// loadCache returns the cache to use for this run, or nil when caching is off.
func (s *ValidateService) loadCache(projectPath string, noCache bool) *domain.ResultCache {
	if noCache {
		if err := s.cache.Invalidate(projectPath); err != nil {
			s.logger.Warnw("invalidating result cache", "err", err)
		}
		return nil
	}

	rc, err := s.cache.Load(projectPath)
	if err != nil {
		s.logger.Warnw("ignoring unreadable result cache", "err", err)
		rc = nil
	}
	if rc == nil || rc.IsInvalidated(workflow.Version) {
		rc = domain.NewResultCache(workflow.Version)
	}
	return rc
}

func (s *ValidateService) buildReport(cfg domain.ProjectConfig, opts ValidateOptions, path string, result domain.ValidationResult) domain.FileReport {
	result = result.WithoutWarnings(cfg.IgnoreCodes)

	name := result.Metadata.Name
	if name == "" {
		name = s.scanner.DisplayName(path)
	}

	return domain.FileReport{
		Path:        path,
		DisplayName: name,
		Status:      domain.StatusFor(&result, cfg.Strict || opts.Strict),
		Result:      &result,
	}
}

// readSource reads path, refusing files larger than limit bytes. At most
// limit+1 bytes are ever read.
func readSource(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if limit <= 0 {
		return io.ReadAll(f)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file is over max_file_bytes (%d)", limit)
	}
	return data, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
