// Package env provides environment and secret access for the voice agent.
//
// Credentials are read through the Secrets interface rather than os.Getenv
// directly, so tests can substitute a fake source without touching real
// process environment state.
package env

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/soralabs/voice-agent/internal/log"
)

// Secrets is a read-only source of named secret values.
type Secrets interface {
	// Lookup returns the value for name and whether it is present.
	// An empty value counts as absent.
	Lookup(name string) (string, bool)
}

// OS reads secrets from the process environment.
type OS struct{}

// Lookup returns the environment variable value for name.
func (OS) Lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if v == "" {
		return "", false
	}
	return v, ok
}

// Static is a fixed in-memory secret source, for tests.
type Static map[string]string

// Lookup returns the mapped value for name.
func (s Static) Lookup(name string) (string, bool) {
	v, ok := s[name]
	if v == "" {
		return "", false
	}
	return v, ok
}

// Load reads variables from .env.local, falling back to .env.
// Missing files are not an error; existing process variables win.
// Returns true if a file was loaded.
func Load() bool {
	for _, path := range []string{".env.local", ".env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Warn("failed to load env file", "path", path, "error", err)
			return false
		}
		log.Info("environment variables loaded", "path", path)
		return true
	}
	return false
}

// Get returns the environment variable for key, or def if unset.
func Get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
