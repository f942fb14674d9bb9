package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workwayco/workway-validate/internal/adapters/outbound/gitinfo"
)

// initRepo creates a repository with one committed file and returns its
// root. t.TempDir may be behind a symlink, so the path is resolved.
func initRepo(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	writeFile(t, dir, "committed.ts", "export default {}")
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("committed.ts")
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGitInfo_IsGitRepo(t *testing.T) {
	gi := gitinfo.New()
	assert.True(t, gi.IsGitRepo(initRepo(t)))
	assert.False(t, gi.IsGitRepo(t.TempDir()))
}

func TestGitInfo_CommitHash_ReturnsHash(t *testing.T) {
	gi := gitinfo.New()
	hash, err := gi.CommitHash(initRepo(t))
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	gi := gitinfo.New()
	_, err := gi.CommitHash(t.TempDir())
	assert.Error(t, err)
}

func TestGitInfo_ChangedFiles(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "committed.ts", "export default { name: 'changed' }")
	writeFile(t, dir, "workflows/new.ts", "export default {}")

	files, err := gitinfo.New().ChangedFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "committed.ts"),
		filepath.Join(dir, "workflows", "new.ts"),
	}, files)
}

func TestGitInfo_ChangedFiles_SkipsDeleted(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "committed.ts")))

	files, err := gitinfo.New().ChangedFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGitInfo_ChangedFiles_CleanTree(t *testing.T) {
	files, err := gitinfo.New().ChangedFiles(initRepo(t))
	require.NoError(t, err)
	assert.Empty(t, files)
}
