package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/workwayco/workway-validate/internal/domain"
	"github.com/workwayco/workway-validate/internal/domain/workflow"
)

// registerResources registers the static reference data on the given server.
func registerResources(s *server.MCPServer) {
	// 1. workway://codes - finding code catalog
	s.AddResource(
		mcplib.NewResource(
			"workway://codes",
			"Finding Codes",
			mcplib.WithResourceDescription("Every code the validator can report, with its severity and check group"),
			mcplib.WithMIMEType("application/json"),
		),
		jsonResource("workway://codes", domain.Catalog),
	)

	// 2. workway://integrations - known integration names
	s.AddResource(
		mcplib.NewResource(
			"workway://integrations",
			"Known Integrations",
			mcplib.WithResourceDescription("Integration service names the validator recognizes"),
			mcplib.WithMIMEType("application/json"),
		),
		jsonResource("workway://integrations", workflow.KnownIntegrations),
	)
}

func jsonResource(uri string, v any) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", uri, err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
