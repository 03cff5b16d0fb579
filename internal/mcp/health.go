package mcp

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HealthCheckInput is the (empty) input for the health_check tool.
type HealthCheckInput struct{}

// HealthStatus is the health_check result payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Server  string `json:"server"`
	Version string `json:"version"`
}

func (s *Server) registerHealthTool() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "health_check",
		Description: "Check that the server is alive. Returns server name and version. Makes no Twitter API call.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
		},
	}, s.handleHealthCheck)
}

func (s *Server) handleHealthCheck(ctx context.Context, req *mcp.CallToolRequest, in HealthCheckInput) (*mcp.CallToolResult, any, error) {
	return jsonResult(HealthStatus{
		Status:  "ok",
		Server:  s.name,
		Version: s.version,
	}), nil, nil
}
