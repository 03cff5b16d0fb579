package mcp

import (
	"context"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/twitter"
)

const (
	defaultTweetLimit = 10
	maxTweetLimit     = 50
)

// SearchTweetsInput is the input for the search_tweets tool. Limit is
// a pointer so an absent argument is distinguishable from zero.
type SearchTweetsInput struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

// UserTweetsInput is the input for the get_user_tweets tool.
type UserTweetsInput struct {
	Username string `json:"username"`
	Limit    *int   `json:"limit,omitempty"`
}

// TweetByIDInput is the input for the get_tweet_by_id tool.
type TweetByIDInput struct {
	ID string `json:"id"`
}

// SearchTweetsResult is the search_tweets result payload.
type SearchTweetsResult struct {
	Query  string          `json:"query"`
	Count  int             `json:"count"`
	Tweets []twitter.Tweet `json:"tweets"`
}

// UserTweetsResult is the get_user_tweets result payload.
type UserTweetsResult struct {
	Username string          `json:"username"`
	Count    int             `json:"count"`
	Tweets   []twitter.Tweet `json:"tweets"`
}

// registerTweetTools registers search_tweets, get_user_tweets, and
// get_tweet_by_id.
func (s *Server) registerTweetTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_tweets",
		Description: "Search recent tweets matching a full-text query. Returns tweets with author, engagement metrics, and permalink, in the order the Twitter API returns them.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Search query, e.g. \"golang generics\" or \"from:golang -is:retweet\"",
				},
				"limit": {
					Type:        "integer",
					Description: "Number of tweets to return (1-50, default 10)",
				},
			},
			Required: []string{"query"},
		},
	}, s.handleSearchTweets)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_user_tweets",
		Description: "Get a user's recent tweets by their handle, newest first. The handle is resolved to an account first, so an unknown handle fails without a timeline lookup.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"username": {
					Type:        "string",
					Description: "The user's handle, with or without the leading @",
				},
				"limit": {
					Type:        "integer",
					Description: "Number of tweets to return (1-50, default 10)",
				},
			},
			Required: []string{"username"},
		},
	}, s.handleUserTweets)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_tweet_by_id",
		Description: "Get a single tweet by its ID, with author and engagement metrics.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id": {
					Type:        "string",
					Description: "The tweet ID, e.g. \"1846987139428635138\"",
				},
			},
			Required: []string{"id"},
		},
	}, s.handleTweetByID)
}

func (s *Server) handleSearchTweets(ctx context.Context, req *mcp.CallToolRequest, in SearchTweetsInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(in.Query) == "" {
		return errorResult("query must be a non-empty string"), nil, nil
	}
	limit, err := limitOrDefault(in.Limit, defaultTweetLimit, maxTweetLimit)
	if err != nil {
		return errorResult("%v", err), nil, nil
	}

	tweets, err := s.client.SearchTweets(ctx, in.Query, limit)
	if err != nil {
		return s.upstreamError("search_tweets", err), nil, nil
	}

	return jsonResult(SearchTweetsResult{
		Query:  in.Query,
		Count:  len(tweets),
		Tweets: tweets,
	}), nil, nil
}

func (s *Server) handleUserTweets(ctx context.Context, req *mcp.CallToolRequest, in UserTweetsInput) (*mcp.CallToolResult, any, error) {
	username := strings.TrimPrefix(strings.TrimSpace(in.Username), "@")
	if username == "" {
		return errorResult("username must be a non-empty string"), nil, nil
	}
	limit, err := limitOrDefault(in.Limit, defaultTweetLimit, maxTweetLimit)
	if err != nil {
		return errorResult("%v", err), nil, nil
	}

	// Two sequential upstream calls: resolve the handle, then fetch
	// the timeline by account ID. A failed resolution stops here.
	user, err := s.client.GetUserByUsername(ctx, username)
	if err != nil {
		return s.upstreamError("get_user_tweets", err), nil, nil
	}

	tweets, err := s.client.GetUserTweets(ctx, user.ID, limit)
	if err != nil {
		return s.upstreamError("get_user_tweets", err), nil, nil
	}

	return jsonResult(UserTweetsResult{
		Username: user.Username,
		Count:    len(tweets),
		Tweets:   tweets,
	}), nil, nil
}

func (s *Server) handleTweetByID(ctx context.Context, req *mcp.CallToolRequest, in TweetByIDInput) (*mcp.CallToolResult, any, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return errorResult("id must be a non-empty string"), nil, nil
	}

	tweet, err := s.client.GetTweet(ctx, id)
	if err != nil {
		return s.upstreamError("get_tweet_by_id", err), nil, nil
	}

	return jsonResult(tweet), nil, nil
}
