package api

import "net/http"

// healthPayload is the static liveness response. Name and version are
// fixed at server construction.
type healthPayload struct {
	Status  string `json:"status"`
	Server  string `json:"server"`
	Version string `json:"version"`
}

// health returns a liveness handler for container probes and external
// monitors. It answers synchronously and sits outside the middleware
// stack, so it needs no API key and is never rate limited.
func health(serverName, version string) http.HandlerFunc {
	payload := healthPayload{
		Status:  "ok",
		Server:  serverName,
		Version: version,
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, payload)
	}
}
