package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	cacheAdapter "github.com/workwayco/workway-validate/internal/adapters/outbound/cache"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/config"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/gitinfo"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/history"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/scanner"
	"github.com/workwayco/workway-validate/internal/adapters/outbound/schedule"
	"github.com/workwayco/workway-validate/internal/application"
	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

const defaultCronRuns = 5

// registerTools registers all validator MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, log *zap.SugaredLogger) {
	// 1. workway_validate
	s.AddTool(
		mcplib.NewTool("workway_validate",
			mcplib.WithDescription("Validate WORKWAY workflow source text. Returns valid, errors, warnings and extracted metadata as JSON."),
			mcplib.WithString("content",
				mcplib.Required(),
				mcplib.Description("Full source text of the workflow definition"),
			),
			mcplib.WithBoolean("strict", mcplib.Description("Report warnings as failing")),
		),
		handleValidate(projectPath, log),
	)

	// 2. workway_validate_file
	s.AddTool(
		mcplib.NewTool("workway_validate_file",
			mcplib.WithDescription("Validate a workflow file in the project and return its report"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the workflow file, relative to the project root"),
			),
			mcplib.WithBoolean("strict", mcplib.Description("Report warnings as failing")),
		),
		handleValidateFile(projectPath, log),
	)

	// 3. workway_check_cron
	s.AddTool(
		mcplib.NewTool("workway_check_cron",
			mcplib.WithDescription("Check a five-field cron expression and preview its next fire times"),
			mcplib.WithString("expression",
				mcplib.Required(),
				mcplib.Description("Cron expression, e.g. '0 8 * * *'"),
			),
			mcplib.WithNumber("next", mcplib.Description("Number of upcoming fire times to return (default 5)")),
		),
		handleCheckCron(log),
	)

	// 4. workway_health
	s.AddTool(
		mcplib.NewTool("workway_health",
			mcplib.WithDescription("Report validator health and engine version"),
		),
		handleHealth(),
	)
}

// newValidateService creates the standard set of outbound adapters and the service.
func newValidateService(log *zap.SugaredLogger) *application.ValidateService {
	return application.NewValidateService(
		scanner.New(),
		config.New(),
		cacheAdapter.New(),
		gitinfo.New(),
		history.New(),
		log,
	)
}

func handleValidate(projectPath string, log *zap.SugaredLogger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		strict, _ := request.GetArguments()["strict"].(bool)

		report, err := newValidateService(log).ValidateSource(projectPath, "workflow", content,
			application.ValidateOptions{Strict: strict})
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report.Result)
	}
}

func handleValidateFile(projectPath string, log *zap.SugaredLogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		strict, _ := request.GetArguments()["strict"].(bool)

		if filepath.IsAbs(file) || strings.HasPrefix(filepath.Clean(file), "..") {
			return errorResult(fmt.Sprintf("file %q must be relative to the project root", file)), nil
		}

		path := filepath.Join(projectPath, file)
		info, err := os.Stat(path)
		if err != nil {
			return errorResult(fmt.Sprintf("reading %s: %v", file, err)), nil
		}
		if info.IsDir() {
			return errorResult(fmt.Sprintf("%s is a directory; pass a single workflow file", file)), nil
		}

		batch, err := newValidateService(log).ValidatePaths(ctx, projectPath,
			[]string{path}, application.ValidateOptions{Strict: strict})
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		if len(batch.Files) != 1 {
			return errorResult(fmt.Sprintf("expected one report for %s, got %d", file, len(batch.Files))), nil
		}
		return jsonResult(batch.Files[0])
	}
}

func handleCheckCron(log *zap.SugaredLogger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		expr, err := request.RequireString("expression")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		n := defaultCronRuns
		if v, ok := request.GetArguments()["next"].(float64); ok {
			n = int(v)
		}

		svc := application.NewCronService(schedule.New(), log)
		return jsonResult(svc.Check(expr, time.Now(), n))
	}
}

func handleHealth() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(map[string]any{
			"healthy": workflow.HealthCheck(),
			"version": workflow.Version,
		})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
