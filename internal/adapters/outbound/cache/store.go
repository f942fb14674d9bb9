package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/workwayco/workway-validate/internal/domain"
)

// Store is a file-based implementation of domain.CacheStore.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the result cache from disk. Returns (nil, nil) if no cache exists.
func (s *Store) Load(projectPath string) (*domain.ResultCache, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var cache domain.ResultCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	if cache.Results == nil {
		cache.Results = make(map[string]*domain.ValidationResult)
	}
	return &cache, nil
}

// Save writes the result cache to disk, creating directories as needed.
func (s *Store) Save(projectPath string, cache *domain.ResultCache) error {
	if err := os.MkdirAll(cacheDir(projectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath(projectPath), data, 0644)
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".workway", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "results.json")
}
