package scanner_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workwayco/workway-validate/internal/adapters/outbound/scanner"
	"github.com/workwayco/workway-validate/internal/domain"
)

const fixtureDir = "../../../../testdata/workflows"

func relNames(t *testing.T, files []string) []string {
	t.Helper()
	var names []string
	for _, f := range files {
		rel, err := filepath.Rel(fixtureDir, f)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	return names
}

func TestFileScanner_Scan(t *testing.T) {
	s := scanner.New()
	files, err := s.Scan(fixtureDir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"fixtures/sample.ts",
		"invalid/broken.ts",
		"valid/daily-digest.ts",
		"valid/stripeToNotion.ts",
	}, relNames(t, files))
}

func TestFileScanner_SkipsNodeModulesAndDeclarations(t *testing.T) {
	files, err := scanner.New().Scan(fixtureDir, domain.DefaultConfig())
	require.NoError(t, err)

	for _, f := range files {
		assert.NotContains(t, f, "node_modules")
		assert.NotContains(t, f, ".d.ts")
		assert.NotContains(t, f, "README")
	}
}

func TestFileScanner_ExcludePaths(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.ExcludePaths = []string{"fixtures/", "invalid/broken.ts"}

	files, err := scanner.New().Scan(fixtureDir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"valid/daily-digest.ts", "valid/stripeToNotion.ts"}, relNames(t, files))
}

func TestFileScanner_MissingRoot(t *testing.T) {
	_, err := scanner.New().Scan(filepath.Join(t.TempDir(), "nope"), domain.DefaultConfig())
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"workflows/stripeToNotion.ts", "Stripe To Notion"},
		{"daily-digest.ts", "Daily Digest"},
		{"sync_hubspot_leads.workflow.ts", "Sync Hubspot Leads"},
		{"GmailToSlack.js", "Gmail To Slack"},
		{"index.ts", "Index"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, scanner.DisplayName(tt.path))
		})
	}
}
