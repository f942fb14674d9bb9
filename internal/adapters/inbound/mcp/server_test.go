package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/workwayco/workway-validate/internal/adapters/inbound/mcp"
	"github.com/workwayco/workway-validate/internal/logger"
)

func TestNewWorkwayMCPServer(t *testing.T) {
	s := mcpadapter.NewWorkwayMCPServer(".", logger.Nop())
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewWorkwayMCPServer(".", logger.Nop())

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"workway_validate",
		"workway_validate_file",
		"workway_check_cron",
		"workway_health",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}

// call sends one JSON-RPC request through the server and returns the
// marshaled response.
func call(t *testing.T, projectPath, method string, params any) string {
	t.Helper()
	s := mcpadapter.NewWorkwayMCPServer(projectPath, logger.Nop())

	p, err := json.Marshal(params)
	require.NoError(t, err)
	msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":%q,"params":%s}`, method, p)

	resp := s.HandleMessage(context.Background(), json.RawMessage(msg))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestValidateTool(t *testing.T) {
	out := call(t, t.TempDir(), "tools/call", map[string]any{
		"name":      "workway_validate",
		"arguments": map[string]any{"content": "export default { name: 'test' }"},
	})
	assert.Contains(t, out, "MISSING_SDK_IMPORT")
	assert.Contains(t, out, "MISSING_TRIGGER")
}

func TestValidateTool_RequiresContent(t *testing.T) {
	out := call(t, t.TempDir(), "tools/call", map[string]any{
		"name":      "workway_validate",
		"arguments": map[string]any{},
	})
	assert.Contains(t, out, `"isError":true`)
}

func TestValidateFileTool(t *testing.T) {
	dir := t.TempDir()
	src := "import fs from 'fs';\nexport default {}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flow.ts"), []byte(src), 0644))

	out := call(t, dir, "tools/call", map[string]any{
		"name":      "workway_validate_file",
		"arguments": map[string]any{"file": "flow.ts"},
	})
	assert.Contains(t, out, "BLOCKED_NODE_MODULE")
	assert.Contains(t, out, "flow.ts")
}

func TestValidateFileTool_RejectsEscapingPath(t *testing.T) {
	out := call(t, t.TempDir(), "tools/call", map[string]any{
		"name":      "workway_validate_file",
		"arguments": map[string]any{"file": "../secret.ts"},
	})
	assert.Contains(t, out, `"isError":true`)
	assert.Contains(t, out, "relative to the project root")
}

func TestValidateFileTool_RejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export default {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ts"), []byte("export default {}"), 0644))

	for _, file := range []string{"sub", "."} {
		t.Run(file, func(t *testing.T) {
			var out string
			require.NotPanics(t, func() {
				out = call(t, dir, "tools/call", map[string]any{
					"name":      "workway_validate_file",
					"arguments": map[string]any{"file": file},
				})
			})
			assert.Contains(t, out, `"isError":true`)
			assert.Contains(t, out, "is a directory")
		})
	}
}

func TestValidateFileTool_MissingFile(t *testing.T) {
	out := call(t, t.TempDir(), "tools/call", map[string]any{
		"name":      "workway_validate_file",
		"arguments": map[string]any{"file": "nope.ts"},
	})
	assert.Contains(t, out, `"isError":true`)
	assert.Contains(t, out, "nope.ts")
}

func TestCheckCronTool(t *testing.T) {
	out := call(t, ".", "tools/call", map[string]any{
		"name":      "workway_check_cron",
		"arguments": map[string]any{"expression": "0 25 * * *"},
	})
	assert.Contains(t, out, `\"valid\": false`)
	assert.Contains(t, out, "hour")
}

func TestHealthTool(t *testing.T) {
	out := call(t, ".", "tools/call", map[string]any{"name": "workway_health"})
	assert.Contains(t, out, `\"healthy\": true`)
}

func TestCodesResource(t *testing.T) {
	out := call(t, ".", "resources/read", map[string]any{"uri": "workway://codes"})
	assert.Contains(t, out, "HARDCODED_SECRET")
	assert.Contains(t, out, "EMPTY_CATCH")
}

func TestIntegrationsResource(t *testing.T) {
	out := call(t, ".", "resources/read", map[string]any{"uri": "workway://integrations"})
	assert.Contains(t, out, "google-sheets")
}
