package domain

import "time"

// SourceScanner expands a project directory into workflow source paths.
type SourceScanner interface {
	Scan(root string, cfg ProjectConfig) ([]string, error)
	DisplayName(path string) string
}

// ConfigLoader reads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// CacheStore persists validation results keyed by content hash.
type CacheStore interface {
	Load(projectPath string) (*ResultCache, error)
	Save(projectPath string, cache *ResultCache) error
	Invalidate(projectPath string) error
}

// GitInfo exposes repository facts used to select and annotate runs.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath string) ([]string, error)
}

// RunHistory records one entry per validation run.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// SchedulePlanner computes upcoming fire times for a cron expression.
type SchedulePlanner interface {
	Next(expr string, from time.Time, n int) ([]time.Time, error)
}
