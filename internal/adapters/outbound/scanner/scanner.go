package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/workwayco/workway-validate/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".workway":     true,
	".wrangler":    true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
}

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns the workflow sources under root in lexical order. Returned
// paths are joined onto root so they can be opened directly.
func (s *FileScanner) Scan(root string, cfg domain.ProjectConfig) ([]string, error) {
	exclude := make(map[string]bool, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		exclude[filepath.Clean(strings.TrimSuffix(p, "/"))] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(root, path)
		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || exclude[d.Name()] || exclude[relPath]) {
				return filepath.SkipDir
			}
			return nil
		}

		if exclude[relPath] || !cfg.Matches(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// DisplayName derives a human label from a workflow file name, for sources
// that do not declare a name: "stripeToNotion.ts" becomes "Stripe To Notion".
func (s *FileScanner) DisplayName(path string) string {
	return DisplayName(path)
}

func DisplayName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}

	var words []string
	for _, chunk := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	}) {
		for _, w := range camelcase.Split(chunk) {
			words = append(words, capitalize(w))
		}
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
