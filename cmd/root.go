// Package cmd provides the CLI commands for the Twitter MCP server.
//
// Commands:
//   - serve: HTTP server exposing the MCP endpoint (default)
//   - stdio: MCP server on stdin/stdout for desktop clients
//   - version: build information
//
// Signal handling and graceful shutdown are implemented for both
// server modes via context cancellation.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// serverName identifies this server to MCP clients and in the health
// payload.
const serverName = "twitter-mcp-server"

var rootCmd = &cobra.Command{
	Use:   "twitter-mcp-server",
	Short: "Read-only Twitter access for MCP clients",
	Long: `twitter-mcp-server bridges the Twitter API v2 to LLM clients over the
Model Context Protocol. It exposes read-only search and lookup tools;
nothing is ever posted.

Running without a subcommand starts the HTTP server, matching how the
container image invokes the binary.

Configuration comes from environment variables, an optional .env file,
or config.yaml:

  TWITTER_BEARER_TOKEN  Required: Twitter API v2 bearer token
  MCP_API_KEY           Optional: shared secret for POST /mcp
  PORT                  Optional: HTTP listen port (default 3000)
  LOG_LEVEL             Optional: debug, info, warn, error
  LOG_JSON              Optional: JSON log output (default true)
  MCP_RATE_BURST        Optional: per-IP burst; 0 disables limiting
  MCP_TRUST_PROXY       Optional: trust X-Forwarded-For/X-Real-IP
  OTLP_ENDPOINT         Optional: OTLP collector for traces`,
	// main prints the returned error once; keep cobra from printing
	// usage and the error again on runtime failures.
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command. It is the only entry point main
// calls.
func Execute() error {
	// A .env file is a development convenience; deployments set real
	// environment variables and no file exists.
	_ = godotenv.Load()

	return rootCmd.Execute()
}
