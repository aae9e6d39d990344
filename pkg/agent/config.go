// Package agent wires the voice-agent process together: persona
// registry, model factory, asset preflight, health server and the
// handoff to the external session runtime.
package agent

import (
	"os"

	"github.com/soralabs/voice-agent/pkg/health"
	"github.com/soralabs/voice-agent/pkg/persona"
)

// Config holds all configuration for the agent process.
// Flag parsing is done in cmd/agent/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// Persona selects the persona for sessions started by this process.
	Persona string

	// PersonasPath optionally points at a YAML personas file overlaying
	// the built-in set.
	PersonasPath string

	// UserID identifies the end user for usage accounting.
	UserID string

	// Runtime connection.
	RuntimeURL    string
	RuntimeAPIKey string

	// Health server.
	HealthEnabled bool
	HealthPort    string

	// Asset preflight.
	AssetsDir     string
	AssetsBaseURL string

	// PaymentAPIURL is the billing backend base URL; empty disables
	// usage reporting.
	PaymentAPIURL string
}

// DefaultConfig returns sensible defaults for the agent.
func DefaultConfig() Config {
	return Config{
		Persona:       persona.DefaultID,
		HealthEnabled: true,
		HealthPort:    health.DefaultPort,
		AssetsDir:     "/models",
	}
}

// LoadEnvConfig loads configuration values from environment variables.
// Call this after flag parsing to apply environment overrides.
func (c *Config) LoadEnvConfig() {
	if p := os.Getenv("AGENT_PERSONA"); p != "" {
		c.Persona = p
	}
	if p := os.Getenv("PERSONAS_PATH"); p != "" {
		c.PersonasPath = p
	}
	if u := os.Getenv("USER_ID"); u != "" {
		c.UserID = u
	}
	if u := os.Getenv("RUNTIME_URL"); u != "" {
		c.RuntimeURL = u
	}
	c.RuntimeAPIKey = os.Getenv("RUNTIME_API_KEY")
	if p := os.Getenv("HEALTH_PORT"); p != "" {
		c.HealthPort = p
	}
	if v := os.Getenv("ENABLE_HEALTH_SERVER"); v == "false" {
		c.HealthEnabled = false
	}
	if d := os.Getenv("ASSETS_DIR"); d != "" {
		c.AssetsDir = d
	}
	c.AssetsBaseURL = os.Getenv("ASSETS_BASE_URL")
	c.PaymentAPIURL = os.Getenv("PAYMENT_API_URL")
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.RuntimeURL == "" {
		return &ConfigError{Field: "RuntimeURL", Message: "RUNTIME_URL environment variable is required"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
