package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/twitter"
)

// TestSearchTweets_RoundTrip verifies that a search result carries the
// query, a count matching the stubbed upstream, and the tweets in
// upstream order.
func TestSearchTweets_RoundTrip(t *testing.T) {
	stub := &stubClient{
		searchTweetsFunc: func(ctx context.Context, query string, limit int) ([]twitter.Tweet, error) {
			return sampleTweets(5), nil
		},
	}
	session := connectServer(t, stub)

	result := callTool(t, session, "search_tweets", map[string]any{
		"query": "openai",
		"limit": 5,
	})

	var payload SearchTweetsResult
	decodeResult(t, result, &payload)

	if payload.Query != "openai" {
		t.Errorf("query = %q, want %q", payload.Query, "openai")
	}
	if payload.Count != 5 {
		t.Errorf("count = %d, want 5", payload.Count)
	}
	if len(payload.Tweets) != 5 {
		t.Fatalf("len(tweets) = %d, want 5", len(payload.Tweets))
	}
	for i, tw := range payload.Tweets {
		wantID := sampleTweets(5)[i].ID
		if tw.ID != wantID {
			t.Errorf("tweets[%d].ID = %q, want %q (upstream order preserved)", i, tw.ID, wantID)
		}
	}
}

// TestSearchTweets_DefaultLimit verifies that an absent limit falls
// back to 10.
func TestSearchTweets_DefaultLimit(t *testing.T) {
	var gotLimit int
	stub := &stubClient{
		searchTweetsFunc: func(ctx context.Context, query string, limit int) ([]twitter.Tweet, error) {
			gotLimit = limit
			return []twitter.Tweet{}, nil
		},
	}
	session := connectServer(t, stub)

	callTool(t, session, "search_tweets", map[string]any{"query": "golang"})

	if gotLimit != defaultTweetLimit {
		t.Errorf("client received limit %d, want default %d", gotLimit, defaultTweetLimit)
	}
}

// TestSearchTweets_InvalidArguments verifies that argument problems
// come back as error results before any upstream call is made.
func TestSearchTweets_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{
			name:    "empty query",
			args:    map[string]any{"query": ""},
			wantMsg: "query must be a non-empty string",
		},
		{
			name:    "whitespace query",
			args:    map[string]any{"query": "   "},
			wantMsg: "query must be a non-empty string",
		},
		{
			name:    "limit zero",
			args:    map[string]any{"query": "go", "limit": 0},
			wantMsg: "limit must be between 1 and 50",
		},
		{
			name:    "limit above maximum",
			args:    map[string]any{"query": "go", "limit": 51},
			wantMsg: "limit must be between 1 and 50",
		},
		{
			name:    "limit negative",
			args:    map[string]any{"query": "go", "limit": -3},
			wantMsg: "limit must be between 1 and 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{}
			session := connectServer(t, stub)

			result := callTool(t, session, "search_tweets", tt.args)

			if !result.IsError {
				t.Fatal("expected error result")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.wantMsg) {
				t.Errorf("error text = %q, want to contain %q", text, tt.wantMsg)
			}
			if n := stub.calls(); n != 0 {
				t.Errorf("made %d upstream calls, want 0", n)
			}
		})
	}
}

// TestSearchTweets_RateLimited verifies that an upstream 429 becomes
// the friendly rate-limit message, not the raw upstream body.
func TestSearchTweets_RateLimited(t *testing.T) {
	stub := &stubClient{
		searchTweetsFunc: func(ctx context.Context, query string, limit int) ([]twitter.Tweet, error) {
			return nil, &twitter.Error{Kind: twitter.KindRateLimited, StatusCode: 429, Message: "Too Many Requests"}
		},
	}
	session := connectServer(t, stub)

	result := callTool(t, session, "search_tweets", map[string]any{"query": "go"})

	if !result.IsError {
		t.Fatal("expected error result")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "rate limit") {
		t.Errorf("error text = %q, want rate-limit phrasing", text)
	}
	if strings.Contains(text, "Too Many Requests") {
		t.Errorf("error text = %q, raw upstream body should be replaced", text)
	}
}

// TestSearchTweets_UpstreamError verifies the upstream-error prefix on
// ordinary client failures.
func TestSearchTweets_UpstreamError(t *testing.T) {
	stub := &stubClient{
		searchTweetsFunc: func(ctx context.Context, query string, limit int) ([]twitter.Tweet, error) {
			return nil, &twitter.Error{Kind: twitter.KindHTTP, StatusCode: 500, Message: "Internal Server Error"}
		},
	}
	session := connectServer(t, stub)

	result := callTool(t, session, "search_tweets", map[string]any{"query": "go"})

	if !result.IsError {
		t.Fatal("expected error result")
	}
	text := resultText(t, result)
	if !strings.HasPrefix(text, "Twitter API error: ") {
		t.Errorf("error text = %q, want %q prefix", text, "Twitter API error: ")
	}
	if !strings.Contains(text, "Internal Server Error") {
		t.Errorf("error text = %q, want upstream message included", text)
	}
}

// TestGetUserTweets_ResolvesHandleFirst verifies the two-step flow:
// the handle resolves to an account ID, and the timeline is fetched
// for that ID.
func TestGetUserTweets_ResolvesHandleFirst(t *testing.T) {
	var gotUserID string
	stub := &stubClient{
		getUserByUsernameFunc: func(ctx context.Context, username string) (*twitter.User, error) {
			return &twitter.User{ID: "100", Name: "Gopher", Username: "gopher"}, nil
		},
		getUserTweetsFunc: func(ctx context.Context, userID string, limit int) ([]twitter.Tweet, error) {
			gotUserID = userID
			return sampleTweets(3), nil
		},
	}
	session := connectServer(t, stub)

	result := callTool(t, session, "get_user_tweets", map[string]any{"username": "gopher"})

	var payload UserTweetsResult
	decodeResult(t, result, &payload)

	if gotUserID != "100" {
		t.Errorf("timeline fetched for ID %q, want %q", gotUserID, "100")
	}
	if payload.Username != "gopher" {
		t.Errorf("username = %q, want %q", payload.Username, "gopher")
	}
	if payload.Count != 3 {
		t.Errorf("count = %d, want 3", payload.Count)
	}
}

// TestGetUserTweets_StripsAtPrefix verifies that a leading @ on the
// handle is accepted and stripped before the lookup.
func TestGetUserTweets_StripsAtPrefix(t *testing.T) {
	var gotUsername string
	stub := &stubClient{
		getUserByUsernameFunc: func(ctx context.Context, username string) (*twitter.User, error) {
			gotUsername = username
			return &twitter.User{ID: "100", Username: "gopher"}, nil
		},
	}
	session := connectServer(t, stub)

	callTool(t, session, "get_user_tweets", map[string]any{"username": "@gopher"})

	if gotUsername != "gopher" {
		t.Errorf("lookup received %q, want %q", gotUsername, "gopher")
	}
}

// TestGetUserTweets_UnknownHandle verifies that a failed handle
// resolution stops the flow: the timeline endpoint is never called.
func TestGetUserTweets_UnknownHandle(t *testing.T) {
	stub := &stubClient{
		getUserByUsernameFunc: func(ctx context.Context, username string) (*twitter.User, error) {
			return nil, &twitter.Error{Kind: twitter.KindNotFound, Message: "Could not find user with username: [ghost]."}
		},
	}
	session := connectServer(t, stub)

	result := callTool(t, session, "get_user_tweets", map[string]any{"username": "ghost"})

	if !result.IsError {
		t.Fatal("expected error result")
	}
	if text := resultText(t, result); !strings.Contains(text, "Could not find user") {
		t.Errorf("error text = %q, want upstream not-found message", text)
	}
	if stub.getUserTweetsCalls != 0 {
		t.Errorf("timeline endpoint called %d times, want 0", stub.getUserTweetsCalls)
	}
}

// TestGetUserTweets_EmptyUsername verifies validation before any call.
func TestGetUserTweets_EmptyUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
	}{
		{name: "empty", username: ""},
		{name: "bare at sign", username: "@"},
		{name: "whitespace", username: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{}
			session := connectServer(t, stub)

			result := callTool(t, session, "get_user_tweets", map[string]any{"username": tt.username})

			if !result.IsError {
				t.Fatal("expected error result")
			}
			if n := stub.calls(); n != 0 {
				t.Errorf("made %d upstream calls, want 0", n)
			}
		})
	}
}

// TestGetTweetByID covers the single-tweet lookup paths.
func TestGetTweetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubClient{
			getTweetFunc: func(ctx context.Context, id string) (*twitter.Tweet, error) {
				return &twitter.Tweet{
					ID:   id,
					Text: "hello world",
					URL:  "https://x.com/gopher/status/" + id,
					Author: &twitter.User{
						ID: "100", Name: "Gopher", Username: "gopher",
					},
				}, nil
			},
		}
		session := connectServer(t, stub)

		result := callTool(t, session, "get_tweet_by_id", map[string]any{"id": "42"})

		var tweet twitter.Tweet
		decodeResult(t, result, &tweet)

		if tweet.ID != "42" {
			t.Errorf("id = %q, want %q", tweet.ID, "42")
		}
		if tweet.Author == nil || tweet.Author.Username != "gopher" {
			t.Errorf("author = %+v, want gopher", tweet.Author)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		stub := &stubClient{}
		session := connectServer(t, stub)

		result := callTool(t, session, "get_tweet_by_id", map[string]any{"id": ""})

		if !result.IsError {
			t.Fatal("expected error result")
		}
		if n := stub.calls(); n != 0 {
			t.Errorf("made %d upstream calls, want 0", n)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubClient{
			getTweetFunc: func(ctx context.Context, id string) (*twitter.Tweet, error) {
				return nil, &twitter.Error{Kind: twitter.KindNotFound, Message: "Could not find tweet with id: [99]."}
			},
		}
		session := connectServer(t, stub)

		result := callTool(t, session, "get_tweet_by_id", map[string]any{"id": "99"})

		if !result.IsError {
			t.Fatal("expected error result")
		}
		if text := resultText(t, result); !strings.Contains(text, "Could not find tweet") {
			t.Errorf("error text = %q, want upstream message", text)
		}
	})
}
