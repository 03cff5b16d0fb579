package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"slices"
)

// validLogLevels are the accepted log_level values.
var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks configuration values and returns sentinel errors
// that can be inspected with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	// The upstream credential is the one hard requirement.
	if c.BearerToken == "" {
		return fmt.Errorf("%w: TWITTER_BEARER_TOKEN environment variable is required\n"+
			"Create one at: https://developer.x.com/en/portal/dashboard",
			ErrMissingBearerToken)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: PORT must be between 1 and 65535, got %d", ErrInvalidPort, c.Port)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: TWITTER_API_BASE_URL %q: %v", ErrInvalidBaseURL, c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: TWITTER_API_BASE_URL %q must be an absolute http(s) URL",
			ErrInvalidBaseURL, c.BaseURL)
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("%w: %q is not valid, must be one of: %v",
			ErrInvalidLogLevel, c.LogLevel, validLogLevels)
	}

	if c.RateBurst < 0 {
		return fmt.Errorf("%w: MCP_RATE_BURST must be >= 0, got %d", ErrInvalidRateBurst, c.RateBurst)
	}

	// Running without an inbound secret is a deliberate deployment
	// posture, but worth a loud note.
	if c.APIKey == "" {
		slog.Warn("MCP_API_KEY not set, inbound authentication is DISABLED",
			"hint", "set MCP_API_KEY to require x-api-key on POST /mcp")
	}

	return nil
}
