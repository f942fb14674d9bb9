package domain

import (
	"fmt"
	"strings"
)

// DefaultInclude lists the file suffixes treated as workflow sources.
var DefaultInclude = []string{".ts", ".js", ".mts"}

const (
	DefaultMaxWorkers   = 8
	DefaultMaxFileBytes = 1 << 20 // 1 MiB
)

// ProjectConfig holds project-level configuration loaded from .workway.yaml.
type ProjectConfig struct {
	Include      []string `yaml:"include"        json:"include,omitempty"`
	ExcludePaths []string `yaml:"exclude_paths"  json:"exclude_paths,omitempty"`
	IgnoreCodes  []Code   `yaml:"ignore_codes"   json:"ignore_codes,omitempty"`
	Strict       bool     `yaml:"strict"         json:"strict,omitempty"`
	MaxWorkers   int      `yaml:"max_workers"    json:"max_workers,omitempty"`
	MaxFileBytes int64    `yaml:"max_file_bytes" json:"max_file_bytes,omitempty"`
}

// DefaultConfig returns the configuration used when no .workway.yaml exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Include:      append([]string(nil), DefaultInclude...),
		MaxWorkers:   DefaultMaxWorkers,
		MaxFileBytes: DefaultMaxFileBytes,
	}
}

// WithDefaults fills zero-valued limits and an empty include list from
// DefaultConfig. Explicit values always win.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if len(c.Include) == 0 {
		c.Include = d.Include
	}
	if c.MaxWorkers == 0 {
		c.MaxWorkers = d.MaxWorkers
	}
	if c.MaxFileBytes == 0 {
		c.MaxFileBytes = d.MaxFileBytes
	}
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	for _, inc := range c.Include {
		if !strings.HasPrefix(inc, ".") {
			return fmt.Errorf("include entry %q must be a file suffix starting with '.'", inc)
		}
	}

	// Only warnings may be silenced; errors always block acceptance.
	for _, code := range c.IgnoreCodes {
		sev, ok := SeverityOf(code)
		if !ok {
			return fmt.Errorf("unknown code %q in ignore_codes", code)
		}
		if sev == SeverityError {
			return fmt.Errorf("cannot ignore error code %q (only warnings may be ignored)", code)
		}
	}

	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must be >= 0, 0 means default (got %d)", c.MaxWorkers)
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0, 0 means default (got %d)", c.MaxFileBytes)
	}
	return nil
}

// Matches reports whether path has one of the configured include suffixes.
func (c ProjectConfig) Matches(path string) bool {
	include := c.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, suffix := range include {
		if strings.HasSuffix(path, suffix) && !strings.HasSuffix(path, ".d.ts") {
			return true
		}
	}
	return false
}
