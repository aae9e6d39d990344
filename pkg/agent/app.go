package agent

import (
	"context"
	"fmt"

	"github.com/soralabs/voice-agent/internal/assets"
	"github.com/soralabs/voice-agent/internal/env"
	"github.com/soralabs/voice-agent/internal/log"
	"github.com/soralabs/voice-agent/pkg/health"
	"github.com/soralabs/voice-agent/pkg/model"
	"github.com/soralabs/voice-agent/pkg/persona"
	"github.com/soralabs/voice-agent/pkg/session"
)

// App is the assembled agent process.
type App struct {
	cfg Config

	registry *persona.Registry
	secrets  env.Secrets
	runner   *session.Runner
	bridge   *session.Bridge
	health   *health.Server
	usage    *session.UsageReporter
	manifest *assets.Manifest
}

// New validates the configuration and creates the app. No I/O happens
// here; Init performs the preflight.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{cfg: cfg, secrets: env.OS{}}, nil
}

// Init builds the persona registry, runs the asset preflight and wires
// the runtime bridge. Every configuration error surfaces here or in the
// first session preparation, never mid-session.
func (a *App) Init(ctx context.Context) error {
	registry, err := persona.LoadRegistry(a.cfg.PersonasPath)
	if err != nil {
		return fmt.Errorf("agent: load personas: %w", err)
	}
	a.registry = registry
	if !registry.Has(a.cfg.Persona) {
		return &persona.UnknownPersonaError{ID: a.cfg.Persona}
	}
	log.Info("persona registry loaded", "personas", registry.IDs())

	a.manifest = assets.NewManifest(a.cfg.AssetsDir, a.cfg.AssetsBaseURL, assets.Required(), log.L())
	if err := a.manifest.Ensure(ctx); err != nil {
		return err
	}

	a.bridge = session.NewBridge(a.cfg.RuntimeURL, a.cfg.RuntimeAPIKey, log.L())
	a.runner = session.NewRunner(a.registry, a.secrets, a.bridge, log.L())
	a.usage = session.NewUsageReporter(a.cfg.PaymentAPIURL, log.L())
	a.health = health.NewServer(a.cfg.HealthPort)
	return nil
}

// Run starts the health server, prepares the session and hands it to the
// runtime. It returns when the runtime session ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.HealthEnabled {
		a.health.StartAsync()
	}

	req := session.Request{
		PersonaID: a.cfg.Persona,
		Overrides: session.OverridesFromEnv(),
		UserID:    a.cfg.UserID,
	}

	// Prepare separately from Run so misconfiguration is caught before
	// the process reports ready.
	s, err := a.runner.Prepare(req)
	if err != nil {
		return err
	}

	a.health.UpdateState(func(st *health.AgentState) {
		st.Ready = true
		st.Persona = s.PersonaID
		st.Providers = map[string]string{
			string(model.SlotLLM): string(s.LLM.Provider()),
			string(model.SlotTTS): string(s.TTS.Provider()),
			string(model.SlotSTT): string(s.STT.Provider()),
		}
	})

	a.health.UpdateState(func(st *health.AgentState) {
		st.SessionsStarted++
		st.RuntimeConnected = true
	})
	runErr := a.bridge.StartSession(ctx, s)
	a.health.UpdateState(func(st *health.AgentState) {
		st.RuntimeConnected = false
	})

	// Report usage even when the session ended with an error; the
	// runtime may still have metered partial usage.
	if summary := a.bridge.Usage(); summary != nil {
		a.usage.Report(context.WithoutCancel(ctx), s.UserID, *summary)
	}
	return runErr
}

// Shutdown releases resources. Safe to call after a failed Init.
func (a *App) Shutdown() {
	if a.bridge != nil {
		a.bridge.Close()
	}
	if a.health != nil {
		a.health.Shutdown()
	}
}
