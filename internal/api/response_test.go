package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"message": "hello"}
	writeJSON(w, 200, data)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "hello", result["message"])
}

func TestWriteRPCError(t *testing.T) {
	w := httptest.NewRecorder()

	writeRPCError(w, http.StatusUnauthorized, codeUnauthorized, "Unauthorized: invalid or missing API key")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var envelope struct {
		JSONRPC string `json:"jsonrpc"`
		Error   struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		ID *string `json:"id"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "2.0", envelope.JSONRPC)
	assert.Equal(t, codeUnauthorized, envelope.Error.Code)
	assert.Equal(t, "Unauthorized: invalid or missing API key", envelope.Error.Message)
	assert.Nil(t, envelope.ID)
}
