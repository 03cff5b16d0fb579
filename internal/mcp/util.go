package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DevSkits916/Twitter-mcp-sever-beta-1/internal/twitter"
)

// rateLimitMessage replaces the raw upstream body on 429 so the
// calling model gets actionable advice instead of an error dump.
const rateLimitMessage = "Twitter API rate limit exceeded. Please wait a moment and try again."

// jsonResult marshals data as the text content of a successful tool
// result. All payloads become JSON text; clients parse it.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.Marshal(data)
	if err != nil {
		return errorResult("marshaling result: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}
}

// errorResult wraps a message as an IsError tool result. Failures stay
// inside the result envelope; the protocol layer never sees them.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// upstreamError converts a failed client call into a tool result and
// logs it. Rate limiting gets its own message; everything else is
// prefixed so the caller can tell upstream failures from argument
// mistakes.
func (s *Server) upstreamError(tool string, err error) *mcp.CallToolResult {
	s.logger.Warn("tool call failed", "tool", tool, "error", err)

	if twitter.IsRateLimited(err) {
		return errorResult(rateLimitMessage)
	}

	msg := err.Error()
	var apiErr *twitter.Error
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	return errorResult("Twitter API error: %s", msg)
}

// limitOrDefault resolves an optional result-count argument. An absent
// limit falls back to def; an out-of-range value is an error so the
// handler can reject the call before any upstream request is issued.
func limitOrDefault(limit *int, def, max int) (int, error) {
	if limit == nil {
		return def, nil
	}
	if *limit < 1 || *limit > max {
		return 0, fmt.Errorf("limit must be between 1 and %d, got %d", max, *limit)
	}
	return *limit, nil
}
