package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workwayco/workway-validate/internal/adapters/inbound/cli"
)

const fixtureDir = "../../../../testdata/workflows"

var (
	validFile   = filepath.Join(fixtureDir, "valid", "stripeToNotion.ts")
	warnFile    = filepath.Join(fixtureDir, "valid", "daily-digest.ts")
	invalidFile = filepath.Join(fixtureDir, "invalid", "broken.ts")
)

// runValidate executes "validate" with a throwaway project root so cache and
// history files never land in testdata.
func runValidate(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append([]string{"validate", "--path", t.TempDir()}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateCommand_ValidFile(t *testing.T) {
	out, err := runValidate(t, validFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Stripe to Notion")
	assert.Contains(t, out, "No issues found.")
}

func TestValidateCommand_InvalidFileFails(t *testing.T) {
	out, err := runValidate(t, invalidFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "BLOCKED_NODE_MODULE")
	assert.Contains(t, out, "fs")
}

func TestValidateCommand_WarningsPassUnlessStrict(t *testing.T) {
	out, err := runValidate(t, warnFile)
	require.NoError(t, err)
	assert.Contains(t, out, "MISSING_PRICING")

	_, err = runValidate(t, warnFile, "--strict")
	assert.Error(t, err)
}

func TestValidateCommand_JSONSingleFile(t *testing.T) {
	out, err := runValidate(t, validFile, "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["valid"])
	assert.Equal(t, []any{}, result["errors"])
	assert.Equal(t, []any{}, result["warnings"])

	meta, ok := result["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Stripe to Notion", meta["name"])
	assert.Equal(t, "webhook", meta["trigger"])
	assert.Equal(t, false, meta["hasAi"])
}

func TestValidateCommand_JSONDirectory(t *testing.T) {
	out, err := runValidate(t, fixtureDir, "--json")
	require.Error(t, err, "the fixtures include an invalid workflow")

	var files []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	assert.Len(t, files, 4)
	for _, f := range files {
		assert.Contains(t, f, "path")
		assert.Contains(t, f, "status")
	}
}

func TestValidateCommand_DirectorySummary(t *testing.T) {
	out, _ := runValidate(t, filepath.Join(fixtureDir, "valid"))
	assert.Contains(t, out, "Workflows")
	assert.Contains(t, out, "daily-digest.ts")
	assert.Contains(t, out, "stripeToNotion.ts")
	assert.NotContains(t, out, "types.d.ts")
}

func TestValidateCommand_Stdin(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("export default { name: 'test' }"))
	cmd.SetArgs([]string{"validate", "--path", t.TempDir(), "--stdin", "--json"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"MISSING_SDK_IMPORT"`)
	assert.Contains(t, buf.String(), `"name": "test"`)
}

func TestValidateCommand_ConfigIgnoresWarnings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".workway.yaml"),
		[]byte("strict: true\nignore_codes: [MISSING_PRICING]\n"), 0644))

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", "--path", dir, warnFile})
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, buf.String(), "MISSING_PRICING")
}

func TestValidateCommand_BadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".workway.yaml"),
		[]byte("ignore_codes: [HARDCODED_SECRET]\n"), 0644))

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", "--path", dir, validFile})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot ignore error code")
}

func TestValidateCommand_History(t *testing.T) {
	dir := t.TempDir()

	run := func(args ...string) string {
		cmd := cli.NewRootCmdForTest()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs(append([]string{"validate", "--path", dir}, args...))
		_ = cmd.Execute()
		return buf.String()
	}

	run(validFile)
	run(invalidFile)
	out := run("--history")
	assert.Contains(t, out, "Validation History")
	assert.Contains(t, out, "pass")
	assert.Contains(t, out, "fail")

	_, err := os.Stat(filepath.Join(dir, ".workway", "cache", "results.json"))
	assert.NoError(t, err, "results are cached under the project root")
}

func TestValidateCommand_MissingPath(t *testing.T) {
	_, err := runValidate(t, filepath.Join(fixtureDir, "nope.ts"))
	assert.Error(t, err)
}

func TestValidateCommand_ExclusiveModes(t *testing.T) {
	_, err := runValidate(t, "--stdin", "--changed")
	assert.Error(t, err)
}

func TestValidateCommand_ChangedOutsideGit(t *testing.T) {
	_, err := runValidate(t, "--changed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}
