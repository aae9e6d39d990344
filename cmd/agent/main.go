// Voice agent launcher: resolves a persona and its three model slots,
// then hands the configured session to the external agent runtime.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/soralabs/voice-agent/internal/env"
	"github.com/soralabs/voice-agent/internal/log"
	"github.com/soralabs/voice-agent/pkg/agent"
)

func main() {
	cfg := parseFlags()

	level := env.Get("LOG_LEVEL", "info")
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)

	app, err := agent.New(cfg)
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Init(ctx); err != nil {
		log.Error("initialization failed", "error", err)
		os.Exit(1)
	}
	defer app.Shutdown()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("runtime error", "error", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration.
// Environment variables are loaded first so flags win over them.
func parseFlags() agent.Config {
	env.Load()
	cfg := agent.DefaultConfig()
	cfg.LoadEnvConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	personaID := flag.String("persona", "", "Persona to run (overrides AGENT_PERSONA env var)")
	personasPath := flag.String("personas", "", "YAML personas file overlaying the built-in set")
	runtimeURL := flag.String("runtime-url", "", "Agent runtime control socket URL (overrides RUNTIME_URL)")
	healthPort := flag.String("health-port", "", "Health server port (overrides HEALTH_PORT)")
	flag.Parse()

	cfg.Debug = *debug
	if *personaID != "" {
		cfg.Persona = *personaID
	}
	if *personasPath != "" {
		cfg.PersonasPath = *personasPath
	}
	if *runtimeURL != "" {
		cfg.RuntimeURL = *runtimeURL
	}
	if *healthPort != "" {
		cfg.HealthPort = *healthPort
	}
	return cfg
}
