package api

import (
	"errors"
	"log/slog"
	"net/http"
)

// ServerConfig contains configuration for creating the HTTP server.
type ServerConfig struct {
	Logger     *slog.Logger
	MCPHandler http.Handler // Required: the protocol adapter's HTTP binding
	APIKey     string       // Empty disables the auth gate on /mcp
	ServerName string       // Reported by the health endpoint
	Version    string       // Reported by the health endpoint
	RateBurst  int          // Per-IP burst size; 0 disables rate limiting
	TrustProxy bool         // Trust X-Real-IP/X-Forwarded-For (behind reverse proxy)
}

// Server is the HTTP transport in front of the MCP protocol adapter.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates the HTTP server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.MCPHandler == nil {
		return nil, errors.New("mcp handler is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// The auth gate wraps only the tool-call route. Method rejections
	// are routed by the mux before auth runs, so a GET on /mcp is 405
	// no matter what headers it carries.
	mcpHandler := cfg.MCPHandler
	if cfg.APIKey != "" {
		mcpHandler = authMiddleware(cfg.APIKey, logger)(mcpHandler)
	}

	mux := http.NewServeMux()
	mux.Handle("POST /mcp", mcpHandler)
	mux.HandleFunc("/mcp", methodNotAllowed)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → RateLimit → mux
	// RequestID must be before Logging so request_id is available in
	// log attributes.
	var handler http.Handler = mux
	if cfg.RateBurst > 0 {
		rl := newRateLimiter(1.0, cfg.RateBurst)
		handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	}
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Top-level mux separates the health probe from the middleware
	// stack: probes skip auth, logging, and rate limiting.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health(cfg.ServerName, cfg.Version))
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// methodNotAllowed rejects non-POST methods on the tool-call endpoint
// with a JSON-RPC-shaped error.
func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	writeRPCError(w, http.StatusMethodNotAllowed, codeServerError, "Method not allowed.")
}
