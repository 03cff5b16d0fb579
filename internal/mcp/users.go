package mcp

import (
	"context"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/twitter"
)

const (
	defaultUserLimit = 10
	maxUserLimit     = 25
)

// SearchUsersInput is the input for the search_users tool.
type SearchUsersInput struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

// MyProfileInput is the (empty) input for the get_my_profile tool.
type MyProfileInput struct{}

// SearchUsersResult is the search_users result payload.
type SearchUsersResult struct {
	Query string         `json:"query"`
	Count int            `json:"count"`
	Users []twitter.User `json:"users"`
}

// registerUserTools registers search_users and get_my_profile.
func (s *Server) registerUserTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_users",
		Description: "Search Twitter accounts matching a query. Returns profiles with bio, follower counts, and profile URL.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Account search query, e.g. a name or topic",
				},
				"limit": {
					Type:        "integer",
					Description: "Number of accounts to return (1-25, default 10)",
				},
			},
			Required: []string{"query"},
		},
	}, s.handleSearchUsers)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_my_profile",
		Description: "Get the profile of the account behind the configured Twitter credential.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
		},
	}, s.handleMyProfile)
}

func (s *Server) handleSearchUsers(ctx context.Context, req *mcp.CallToolRequest, in SearchUsersInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(in.Query) == "" {
		return errorResult("query must be a non-empty string"), nil, nil
	}
	limit, err := limitOrDefault(in.Limit, defaultUserLimit, maxUserLimit)
	if err != nil {
		return errorResult("%v", err), nil, nil
	}

	users, err := s.client.SearchUsers(ctx, in.Query, limit)
	if err != nil {
		return s.upstreamError("search_users", err), nil, nil
	}

	return jsonResult(SearchUsersResult{
		Query: in.Query,
		Count: len(users),
		Users: users,
	}), nil, nil
}

func (s *Server) handleMyProfile(ctx context.Context, req *mcp.CallToolRequest, in MyProfileInput) (*mcp.CallToolResult, any, error) {
	user, err := s.client.GetMe(ctx)
	if err != nil {
		return s.upstreamError("get_my_profile", err), nil, nil
	}

	return jsonResult(user), nil, nil
}
