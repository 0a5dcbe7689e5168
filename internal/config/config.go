// Package config provides configuration loading and validation for the
// server. All values are read once at startup from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the process-wide configuration: OAuth client credentials, the
// session-signing secret, and the public base URL used to build the OAuth
// callback address.
type Config struct {
	ClientID      string
	ClientSecret  string
	SessionSecret string
	BaseURL       string

	// SessionExpirationHours bounds how long a signed session cookie stays
	// valid. Defaults to 24.
	SessionExpirationHours int
}

// New creates a Config from environment variables. It reads
// LINKEDIN_CLIENT_ID, LINKEDIN_CLIENT_SECRET, SESSION_SECRET, BASE_URL
// (all required) and SESSION_EXPIRATION_HOURS (default: 24).
func New() (*Config, error) {
	cfg := &Config{
		ClientID:      os.Getenv("LINKEDIN_CLIENT_ID"),
		ClientSecret:  os.Getenv("LINKEDIN_CLIENT_SECRET"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		BaseURL:       strings.TrimRight(os.Getenv("BASE_URL"), "/"),
	}

	expirationStr := os.Getenv("SESSION_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24" // default
	}
	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRATION_HOURS: %v", err)
	}
	cfg.SessionExpirationHours = expirationHours

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.ClientID == "" {
		return fmt.Errorf("LINKEDIN_CLIENT_ID is required but not set")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("LINKEDIN_CLIENT_SECRET is required but not set")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required but not set")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required but not set")
	}
	if c.SessionExpirationHours < 1 {
		return fmt.Errorf("SESSION_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.SessionExpirationHours)
	}
	return nil
}

// CallbackURL returns the OAuth redirect address registered with the
// identity provider.
func (c *Config) CallbackURL() string {
	return c.BaseURL + "/auth/linkedin/callback"
}
