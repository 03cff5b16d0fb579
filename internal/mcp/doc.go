// Package mcp implements the Model Context Protocol (MCP) server that
// exposes read-only Twitter query tools to LLM clients.
//
// # Overview
//
// The server registers a fixed set of tools on the official MCP SDK
// server and serves them over either transport:
//
//   - stdio, for clients that spawn the server as a subprocess
//   - streamable HTTP, for network deployments behind the API layer
//
// Tool handlers translate validated arguments into calls on the
// Twitter client, then wrap the normalized results as JSON text
// content. The HTTP handler runs stateless with plain JSON responses,
// so no protocol session state survives a request.
//
// # Tools
//
//   - health_check: liveness and identity, no upstream call
//   - search_tweets: full-text search over recent tweets
//   - get_user_tweets: a user's timeline, resolved from their handle
//   - get_tweet_by_id: one tweet with author and metrics
//   - search_users: account search
//   - get_my_profile: the account behind the configured credential
//
// # Error Handling
//
// Handlers never let a failure escape to the protocol layer. Argument
// problems and upstream failures both come back as text results with
// IsError set, so the calling model sees a readable message instead of
// a JSON-RPC fault. Rate limiting gets a distinct message telling the
// caller to back off.
//
// Input schemas deliberately carry no numeric bounds: the SDK would
// reject out-of-range arguments at the protocol layer before the
// handler runs, and the contract here is that validation failures are
// tool results, not protocol errors. Bounds live in the handlers.
package mcp
