// Package config loads service configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds service configuration
type Config struct {
	// Port is the HTTP listen port
	Port string
	// ReadTimeout bounds reading of inbound requests
	ReadTimeout time.Duration
	// WriteTimeout bounds writing responses; must exceed the analysis ceiling
	WriteTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration

	// OpenRouterKeys are the scoring-service credentials, in rotation order
	OpenRouterKeys []string
	// OpenRouterModel overrides the default scoring model when set
	OpenRouterModel string

	// FirecrawlKey enables the structured scraping strategy when set
	FirecrawlKey string

	// CloudflareAccountID and CloudflareAPIToken enable browser rendering when both set
	CloudflareAccountID string
	CloudflareAPIToken  string

	// SiteURL and SiteName identify this service in outbound scoring requests
	SiteURL  string
	SiteName string

	// SlackWebhookURL enables analysis-completion notifications when set
	SlackWebhookURL string

	// KeyHealthTTL is how long credential status snapshots stay fresh
	KeyHealthTTL time.Duration

	// DevMode includes underlying error detail in API error responses
	DevMode bool
}

// New creates a new configuration from environment variables
func New() *Config {
	return &Config{
		Port:            getEnv("PRIVACYHUB_PORT", "8080"),
		ReadTimeout:     getDurationEnv("PRIVACYHUB_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getDurationEnv("PRIVACYHUB_WRITE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: getDurationEnv("PRIVACYHUB_SHUTDOWN_TIMEOUT", 30*time.Second),

		OpenRouterKeys:  getListEnv("PRIVACYHUB_OPENROUTER_KEYS"),
		OpenRouterModel: os.Getenv("PRIVACYHUB_OPENROUTER_MODEL"),

		FirecrawlKey: os.Getenv("PRIVACYHUB_FIRECRAWL_KEY"),

		CloudflareAccountID: os.Getenv("PRIVACYHUB_CLOUDFLARE_ACCOUNT_ID"),
		CloudflareAPIToken:  os.Getenv("PRIVACYHUB_CLOUDFLARE_API_TOKEN"),

		SiteURL:  getEnv("PRIVACYHUB_SITE_URL", "https://privacyhub.dev"),
		SiteName: getEnv("PRIVACYHUB_SITE_NAME", "PrivacyHub"),

		SlackWebhookURL: os.Getenv("PRIVACYHUB_SLACK_WEBHOOK_URL"),

		KeyHealthTTL: getDurationEnv("PRIVACYHUB_KEY_HEALTH_TTL", 4*time.Hour),

		DevMode: getBoolEnv("PRIVACYHUB_DEV_MODE", false),
	}
}

// Validate checks that required settings are present. It is called at
// startup so a missing credential fails loudly instead of surfacing later as
// a generic scoring failure.
func (c *Config) Validate() error {
	if len(c.OpenRouterKeys) == 0 {
		return fmt.Errorf("%w: set PRIVACYHUB_OPENROUTER_KEYS to at least one API key", ErrMissingScoringCredentials)
	}

	for _, key := range c.OpenRouterKeys {
		if key == "" {
			return fmt.Errorf("%w: PRIVACYHUB_OPENROUTER_KEYS contains an empty entry", ErrMissingScoringCredentials)
		}
	}

	if (c.CloudflareAccountID == "") != (c.CloudflareAPIToken == "") {
		return fmt.Errorf("%w: PRIVACYHUB_CLOUDFLARE_ACCOUNT_ID and PRIVACYHUB_CLOUDFLARE_API_TOKEN must be set together", ErrIncompleteCloudflareConfig)
	}

	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable with a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable with a default value
func getBoolEnv(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

// getListEnv splits a comma-separated environment variable, trimming
// whitespace and dropping empty segments.
func getListEnv(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var values []string

	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	return values
}
