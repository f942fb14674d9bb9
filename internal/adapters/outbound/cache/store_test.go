package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workwayco/workway-validate/internal/adapters/outbound/cache"
	"github.com/workwayco/workway-validate/internal/domain"
	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

func TestStore_SaveAndLoad(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	source := []byte("export default {}")
	result := workflow.Validate(string(source))

	original := domain.NewResultCache(workflow.Version)
	original.Results[domain.ContentKey(source)] = &result

	require.NoError(t, store.Save(projectPath, original))

	loaded, err := store.Load(projectPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, workflow.Version, loaded.EngineVersion)
	require.Contains(t, loaded.Results, domain.ContentKey(source))
	got := loaded.Results[domain.ContentKey(source)]
	assert.Equal(t, result.Valid, got.Valid)
	assert.Len(t, got.Errors, len(result.Errors))
	assert.Len(t, got.Warnings, len(result.Warnings))
}

func TestStore_LoadNonExistent(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	loaded, err := store.Load(projectPath)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_Invalidate(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	require.NoError(t, store.Save(projectPath, domain.NewResultCache("0.1.0")))
	require.NoError(t, store.Invalidate(projectPath))

	loaded, err := store.Load(projectPath)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, store.Invalidate(projectPath), "invalidating twice is fine")
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	cacheDir := filepath.Join(projectPath, ".workway", "cache")
	_, err := os.Stat(cacheDir)
	require.True(t, os.IsNotExist(err), "cache directory should not exist before save")

	require.NoError(t, store.Save(projectPath, domain.NewResultCache("0.1.0")))

	info, err := os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
