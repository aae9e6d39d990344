package agent

import "testing"

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("AGENT_PERSONA", "friend")
	t.Setenv("RUNTIME_URL", "wss://runtime.internal/control")
	t.Setenv("RUNTIME_API_KEY", "rt-key")
	t.Setenv("HEALTH_PORT", "9090")
	t.Setenv("ENABLE_HEALTH_SERVER", "false")
	t.Setenv("ASSETS_DIR", "/data/models")

	cfg := DefaultConfig()
	cfg.LoadEnvConfig()

	if cfg.Persona != "friend" {
		t.Errorf("persona not loaded, got %s", cfg.Persona)
	}
	if cfg.RuntimeURL != "wss://runtime.internal/control" {
		t.Errorf("runtime url not loaded, got %s", cfg.RuntimeURL)
	}
	if cfg.RuntimeAPIKey != "rt-key" {
		t.Errorf("runtime key not loaded, got %s", cfg.RuntimeAPIKey)
	}
	if cfg.HealthPort != "9090" {
		t.Errorf("health port not loaded, got %s", cfg.HealthPort)
	}
	if cfg.HealthEnabled {
		t.Error("health server not disabled")
	}
	if cfg.AssetsDir != "/data/models" {
		t.Errorf("assets dir not loaded, got %s", cfg.AssetsDir)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without runtime URL")
	}

	cfg.RuntimeURL = "wss://runtime.internal/control"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Persona == "" {
		t.Error("default persona missing")
	}
	if !cfg.HealthEnabled {
		t.Error("health server should default on")
	}
	if cfg.HealthPort != "8080" {
		t.Errorf("unexpected default port %s", cfg.HealthPort)
	}
}
