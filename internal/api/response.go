package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// JSON-RPC error codes used by transport-level rejections.
const (
	codeServerError  = -32000
	codeUnauthorized = -32001
)

// rpcError is the error member of a JSON-RPC response.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcErrorResponse is a JSON-RPC-shaped error envelope. Rejections
// happen before a request ID is known, so ID is always null.
type rpcErrorResponse struct {
	JSONRPC string   `json:"jsonrpc"`
	Error   rpcError `json:"error"`
	ID      any      `json:"id"`
}

// writeJSON writes a JSON response with the given status code.
// Uses buffer-first strategy to ensure headers are only sent after
// successful encoding. This allows returning a proper 500 error if
// JSON encoding fails.
func writeJSON(w http.ResponseWriter, status int, data any) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Client disconnects are common and expected
		slog.Debug("failed to write response body", "error", err)
	}
}

// writeRPCError writes a JSON-RPC error envelope with the given HTTP
// status.
func writeRPCError(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, rpcErrorResponse{
		JSONRPC: "2.0",
		Error:   rpcError{Code: code, Message: message},
		ID:      nil,
	})
}
