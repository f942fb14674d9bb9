package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/workwayco/workway-validate/internal/domain"
)

// FileName is the project configuration file looked up in the project root.
const FileName = ".workway.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .workway.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .workway.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate the raw input so zero limits are not masked by defaults.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg.WithDefaults(), nil
}

// Marshal renders cfg as .workway.yaml content.
func Marshal(cfg domain.ProjectConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
