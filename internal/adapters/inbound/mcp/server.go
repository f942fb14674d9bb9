package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

// NewWorkwayMCPServer creates a new MCP server with all validator tools and
// resources registered. The projectPath is the root whose .workway.yaml
// applies and against which relative file paths resolve.
func NewWorkwayMCPServer(projectPath string, log *zap.SugaredLogger) *server.MCPServer {
	s := server.NewMCPServer(
		"workway-validate",
		workflow.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
	)

	registerTools(s, projectPath, log)
	registerResources(s)

	return s
}
