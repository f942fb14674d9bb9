package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/workwayco/workway-validate/internal/domain"
)

const historyFile = ".workway/history/runs.json"

// DefaultMaxEntries bounds runs.json; older runs are dropped first.
const DefaultMaxEntries = 200

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct {
	maxEntries int
}

// Option configures a FileHistory.
type Option func(*FileHistory)

// WithMaxEntries sets how many runs are kept. n <= 0 keeps everything.
func WithMaxEntries(n int) Option {
	return func(h *FileHistory) { h.maxEntries = n }
}

func New(opts ...Option) *FileHistory {
	h := &FileHistory{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Save appends entry, trims the oldest runs past the cap and replaces
// runs.json through a temp file in the same directory.
func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if h.maxEntries > 0 && len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fp), "runs-*.json")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp.Name(), fp); err != nil {
		return fmt.Errorf("replacing %s: %w", historyFile, err)
	}
	return nil
}

// Load returns the recorded runs, oldest first, or nil when none exist.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}
	return entries, nil
}
