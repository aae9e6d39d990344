// Package session assembles voice-agent sessions: it resolves a persona,
// applies per-slot provider overrides, builds the three model handles and
// hands everything to the external agent runtime in a single call.
//
// The runtime owns the session loop, audio transport and turn-taking;
// this package's job is finished once the handoff succeeds.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/soralabs/voice-agent/internal/env"
	"github.com/soralabs/voice-agent/pkg/model"
	"github.com/soralabs/voice-agent/pkg/persona"
)

// Session is the fully-resolved configuration handed to the runtime.
type Session struct {
	// ID uniquely identifies this session.
	ID string `json:"id"`

	// PersonaID names the persona the session was built from.
	PersonaID string `json:"persona_id"`

	// Prompt is the system prompt, with any carried-over conversation
	// history already appended.
	Prompt string `json:"prompt"`

	// Greeting is spoken verbatim once the session is live.
	Greeting string `json:"greeting"`

	// Model handles, one per slot. Owned by the session for its
	// lifetime and discarded at session end.
	LLM *model.Handle `json:"-"`
	TTS *model.Handle `json:"-"`
	STT *model.Handle `json:"-"`

	// AllowInterruptions lets the user barge in over agent speech.
	AllowInterruptions bool `json:"allow_interruptions"`

	// UserID identifies the end user for usage accounting.
	UserID string `json:"user_id,omitempty"`

	// CreatedAt is when the session spec was assembled.
	CreatedAt time.Time `json:"created_at"`
}

// Handle returns the session's handle for a slot.
func (s *Session) Handle(slot model.Slot) *model.Handle {
	switch slot {
	case model.SlotLLM:
		return s.LLM
	case model.SlotTTS:
		return s.TTS
	case model.SlotSTT:
		return s.STT
	default:
		return nil
	}
}

// Request carries the caller-supplied inputs for one session.
type Request struct {
	// PersonaID selects the persona; empty means persona.DefaultID.
	PersonaID string

	// Overrides adjust individual model slots without touching the
	// persona's other defaults.
	Overrides Overrides

	// History is prior conversation text to append to the prompt.
	History string

	// UserID identifies the end user for usage accounting.
	UserID string
}

// Runner resolves personas into sessions and starts them on a runtime.
// Construction is cheap; a runner holds no per-session state.
type Runner struct {
	registry *persona.Registry
	secrets  env.Secrets
	runtime  Runtime
	logger   *slog.Logger
}

// NewRunner creates a session runner. All collaborators are injected so
// the runner can be exercised with fake secrets and a mock runtime.
func NewRunner(registry *persona.Registry, secrets env.Secrets, runtime Runtime, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		registry: registry,
		secrets:  secrets,
		runtime:  runtime,
		logger:   logger.With("component", "session"),
	}
}

// Prepare resolves the request into a ready Session without contacting
// the runtime. Every configuration error (unknown persona, unsupported
// provider, missing credential, bad parameter) surfaces here, before any
// network I/O is attempted.
func (r *Runner) Prepare(req Request) (*Session, error) {
	id := req.PersonaID
	if id == "" {
		id = persona.DefaultID
	}

	p, err := r.registry.Resolve(id)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:                 uuid.NewString(),
		PersonaID:          p.ID,
		Prompt:             p.PromptWithHistory(req.History),
		Greeting:           p.Greeting(),
		AllowInterruptions: true,
		UserID:             req.UserID,
		CreatedAt:          time.Now().UTC(),
	}

	for _, slot := range model.Slots {
		provider, params := req.Overrides.apply(slot, p.Models.Selection(slot))
		h, err := model.Create(slot, provider, params, r.secrets)
		if err != nil {
			return nil, err
		}
		switch slot {
		case model.SlotLLM:
			s.LLM = h
		case model.SlotTTS:
			s.TTS = h
		case model.SlotSTT:
			s.STT = h
		}
		r.logger.Debug("model handle ready", "session", s.ID, "slot", slot, "handle", h.String())
	}

	r.logger.Info("session prepared",
		"session", s.ID,
		"persona", s.PersonaID,
		"llm", s.LLM.Provider(),
		"tts", s.TTS.Provider(),
		"stt", s.STT.Provider(),
	)
	return s, nil
}

// Run prepares the session and hands it to the runtime. The runtime owns
// it from there; Run returns when the runtime's session ends.
func (r *Runner) Run(ctx context.Context, req Request) error {
	s, err := r.Prepare(req)
	if err != nil {
		return err
	}
	r.logger.Info("starting session", "session", s.ID, "persona", s.PersonaID)
	return r.runtime.StartSession(ctx, s)
}
