// Package config loads and validates server configuration.
//
// Sources, highest priority first:
//  1. Environment variables
//  2. config.yaml in the working directory (optional)
//  3. Defaults
//
// Error handling uses sentinel errors checked with errors.Is(), wrapped
// via fmt.Errorf("%w: details", ErrXxx). Sensitive fields (the upstream
// bearer token and the inbound API key) are masked in MarshalJSON and
// String so the loaded configuration can be logged at startup.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingBearerToken indicates the upstream API credential is not set.
	ErrMissingBearerToken = errors.New("missing bearer token")

	// ErrInvalidPort indicates the listen port is out of range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidBaseURL indicates the upstream base URL override is malformed.
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// ErrInvalidLogLevel indicates the log level is not a known name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidRateBurst indicates the rate-limit burst is negative.
	ErrInvalidRateBurst = errors.New("invalid rate burst")
)

const (
	// DefaultPort is the listen port when PORT is unset.
	DefaultPort = 3000

	// DefaultBaseURL is the production Twitter API v2 root.
	DefaultBaseURL = "https://api.twitter.com/2"
)

// Config stores server configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
// When adding new secrets, update MarshalJSON.
type Config struct {
	// Port is the HTTP listen port.
	Port int `mapstructure:"port" json:"port"`

	// BearerToken authenticates outbound Twitter API requests.
	BearerToken string `mapstructure:"bearer_token" json:"bearer_token"` // SENSITIVE: masked in MarshalJSON

	// APIKey is the inbound shared secret for POST /mcp. Empty disables
	// the auth gate.
	APIKey string `mapstructure:"api_key" json:"api_key"` // SENSITIVE: masked in MarshalJSON

	// BaseURL overrides the upstream API root (tests, proxies).
	BaseURL string `mapstructure:"base_url" json:"base_url"`

	// Logging configuration.
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`

	// RateBurst enables per-IP rate limiting on /mcp when positive.
	// 0 keeps the limiter off, matching the upstream bridge's behavior.
	RateBurst int `mapstructure:"rate_burst" json:"rate_burst"`

	// TrustProxy honors X-Real-IP/X-Forwarded-For when resolving client
	// IPs. Set true only behind a reverse proxy.
	TrustProxy bool `mapstructure:"trust_proxy" json:"trust_proxy"`

	// OTLPEndpoint enables trace export when set (host:port of an
	// OTLP/HTTP collector).
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint"`
}

// Auth is the inbound authentication posture, resolved once at load
// time so request handling never re-inspects raw configuration.
type Auth struct {
	Enabled bool
	Secret  string
}

// Auth returns the resolved authentication posture: enabled exactly
// when an API key is configured.
func (c *Config) Auth() Auth {
	return Auth{Enabled: c.APIKey != "", Secret: c.APIKey}
}

// Addr returns the listen address for http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from defaults, an optional config.yaml in
// the working directory, and the environment, then validates it.
// Failure here is fatal at process start; there are no retries.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; defaults plus environment cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("no config.yaml found, using defaults and environment")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("port", DefaultPort)
	viper.SetDefault("base_url", DefaultBaseURL)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_json", true)
	viper.SetDefault("rate_burst", 0)
	viper.SetDefault("trust_proxy", false)
	viper.SetDefault("otlp_endpoint", "")
}

// bindEnvVariables binds each config key to its environment variable.
func bindEnvVariables() {
	// Hardcoded keys cannot fail to bind; a panic here is a bug, not a
	// runtime condition.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("port", "PORT")
	mustBind("bearer_token", "TWITTER_BEARER_TOKEN")
	mustBind("api_key", "MCP_API_KEY")
	mustBind("base_url", "TWITTER_API_BASE_URL")
	mustBind("log_level", "LOG_LEVEL")
	mustBind("log_json", "LOG_JSON")
	mustBind("rate_burst", "MCP_RATE_BURST")
	mustBind("trust_proxy", "MCP_TRUST_PROXY")
	mustBind("otlp_endpoint", "OTLP_ENDPOINT")
}

// maskedValue is the placeholder for masked sensitive data. Full-width
// blocks avoid accidental substring matches against real secrets.
const maskedValue = "████████"

// maskSecret masks a secret for safe logging. Secrets of 8 characters
// or fewer are fully masked; longer ones keep the first and last two
// characters for debugging. This guards against accidental log leaks,
// not against an attacker who already has the logs.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON masks the bearer token and API key.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.BearerToken = maskSecret(a.BearerToken)
	a.APIKey = maskSecret(a.APIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer so printing a Config never leaks secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
