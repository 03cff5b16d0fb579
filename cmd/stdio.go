package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/config"
	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/mcp"
	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/twitter"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStdio()
	},
}

func init() {
	rootCmd.AddCommand(stdioCmd)
}

// runStdio starts the MCP server on the stdio transport for desktop
// clients that spawn the binary directly. The HTTP layer, and with it
// the API key gate, is not involved; process access is the boundary.
func runStdio() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout carries JSON-RPC frames, so logs must stay on stderr.
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := twitter.New(cfg.BearerToken,
		twitter.WithBaseURL(cfg.BaseURL),
		twitter.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating twitter client: %w", err)
	}

	mcpServer, err := mcp.NewServer(mcp.Config{
		Name:    serverName,
		Version: Version,
		Client:  client,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	logger.Info("MCP server ready", "name", serverName, "version", Version, "transport", "stdio")

	if err := mcpServer.Run(ctx, &mcpSdk.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	logger.Info("MCP server shut down gracefully")
	return nil
}
