package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/api"
	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/config"
	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/log"
	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/mcp"
	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/observability"
	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/twitter"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// Server timeout configuration.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 2 * time.Minute // a tool call can wait on a slow upstream
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 30 * time.Second
)

// runServe initializes and starts the HTTP server.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting twitter-mcp-server", "version", Version, "config", cfg)

	shutdownTracing, err := observability.Setup(ctx, observability.Config{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    serverName,
		ServiceVersion: Version,
	})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("trace flush error", "error", err)
		}
	}()

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

	apiServer, err := api.NewServer(api.ServerConfig{
		Logger:     logger,
		MCPHandler: mcpServer.HTTPHandler(),
		APIKey:     cfg.APIKey,
		ServerName: serverName,
		Version:    Version,
		RateBurst:  cfg.RateBurst,
		TrustProxy: cfg.TrustProxy,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	// otelhttp records a span per inbound request. It is a noop until
	// observability.Setup installs a real tracer provider.
	handler := otelhttp.NewHandler(apiServer.Handler(), "server")

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	logger.Info("HTTP server ready",
		"addr", cfg.Addr(),
		"mcp", "/mcp",
		"health", "/health",
		"auth", cfg.Auth().Enabled,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server: %w", err)
	}
}

// newLogger builds the process logger from configuration. Output goes
// to stderr in both server modes.
func newLogger(cfg *config.Config) (log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.New(log.Config{Level: level, JSON: cfg.LogJSON}), nil
}
