package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/twitter"
)

// TwitterClient is the slice of the Twitter API client the tool
// handlers need. Declared here so tests can stub upstream behavior.
type TwitterClient interface {
	GetMe(ctx context.Context) (*twitter.User, error)
	GetUserByUsername(ctx context.Context, username string) (*twitter.User, error)
	GetUserTweets(ctx context.Context, userID string, limit int) ([]twitter.Tweet, error)
	GetTweet(ctx context.Context, id string) (*twitter.Tweet, error)
	SearchTweets(ctx context.Context, query string, limit int) ([]twitter.Tweet, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]twitter.User, error)
}

// Server wraps the MCP SDK server and the Twitter client behind it.
type Server struct {
	mcpServer *mcp.Server
	client    TwitterClient
	logger    *slog.Logger
	name      string
	version   string
}

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
	Client  TwitterClient
	Logger  *slog.Logger
}

// NewServer creates an MCP server with the full tool set registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("twitter client is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		client:  cfg.Client,
		logger:  cfg.Logger,
		name:    cfg.Name,
		version: cfg.Version,
	}
	s.registerTools()

	return s, nil
}

// Run starts the MCP server on the given transport. This is a
// blocking call that handles all MCP protocol communication.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

// HTTPHandler returns the streamable HTTP binding for this server.
// It runs stateless with plain JSON responses: every POST carries a
// complete JSON-RPC exchange and no session survives the request. The
// single server instance is reused across requests.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, &mcp.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: true,
	})
}

func (s *Server) registerTools() {
	s.registerHealthTool()
	s.registerTweetTools()
	s.registerUserTools()
}
