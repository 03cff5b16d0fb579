// Package api provides the HTTP transport for the MCP server.
//
// The server mounts the protocol adapter's streamable HTTP handler at
// /mcp behind a middleware stack, and a liveness probe at /health that
// bypasses the stack entirely:
//
//	GET  /health          liveness probe, no auth
//	POST /mcp             JSON-RPC tool calls
//	*    /mcp             405 with a JSON-RPC-shaped error
//
// The middleware stack, outermost first:
//
//	Recovery → RequestID → Logging → RateLimit (optional) → mux
//
// The auth gate wraps only the POST /mcp route: when an API key is
// configured, requests must carry it in the X-API-Key header or they
// are rejected with 401 before the body is read. Method rejections
// happen before auth, so a GET is always 405 regardless of headers.
//
// Transport-level rejections (401, 405, 429, 500) are written as
// JSON-RPC error envelopes so MCP clients get a parseable failure
// instead of a bare status line.
package api
