package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/soralabs/voice-agent/internal/env"
	"github.com/soralabs/voice-agent/pkg/model"
	"github.com/soralabs/voice-agent/pkg/persona"
	"github.com/soralabs/voice-agent/pkg/session"
)

var allSecrets = env.Static{
	"OPENAI_API_KEY":     "sk-test",
	"GROQ_API_KEY":       "gsk-test",
	"ELEVENLABS_API_KEY": "el-test",
	"DEEPGRAM_API_KEY":   "dg-test",
}

func newRunner(t *testing.T, secrets env.Secrets, runtime session.Runtime) *session.Runner {
	t.Helper()
	reg, err := persona.NewRegistry(persona.Builtin()...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return session.NewRunner(reg, secrets, runtime, nil)
}

func TestPrepareUsesPersonaDefaults(t *testing.T) {
	r := newRunner(t, allSecrets, session.NewMockRuntime())

	s, err := r.Prepare(session.Request{PersonaID: "sora"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.ID == "" {
		t.Error("session id missing")
	}
	if s.PersonaID != "sora" {
		t.Errorf("expected sora, got %s", s.PersonaID)
	}
	if s.LLM.Provider() != model.ProviderOpenAI {
		t.Errorf("unexpected llm provider %s", s.LLM.Provider())
	}
	if s.STT.Provider() != model.ProviderDeepgram {
		t.Errorf("unexpected stt provider %s", s.STT.Provider())
	}
	if s.Greeting == "" {
		t.Error("greeting missing")
	}
}

func TestPrepareDefaultsPersonaWhenEmpty(t *testing.T) {
	r := newRunner(t, allSecrets, session.NewMockRuntime())

	s, err := r.Prepare(session.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.PersonaID != persona.DefaultID {
		t.Errorf("expected default persona, got %s", s.PersonaID)
	}
}

func TestPrepareUnknownPersona(t *testing.T) {
	r := newRunner(t, allSecrets, session.NewMockRuntime())

	_, err := r.Prepare(session.Request{PersonaID: "nonexistent"})
	if !errors.Is(err, persona.ErrUnknownPersona) {
		t.Errorf("expected ErrUnknownPersona, got %v", err)
	}
}

func TestPrepareOverridesOnlyNamedSlot(t *testing.T) {
	r := newRunner(t, allSecrets, session.NewMockRuntime())

	// sora declares openai llm, openai tts, deepgram stt.
	s, err := r.Prepare(session.Request{
		PersonaID: "sora",
		Overrides: session.Overrides{
			LLM: session.SlotOverride{Provider: model.ProviderGroq},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.LLM.Provider() != model.ProviderGroq {
		t.Errorf("llm override not applied, got %s", s.LLM.Provider())
	}
	if s.TTS.Provider() != model.ProviderOpenAI {
		t.Errorf("tts changed by llm override, got %s", s.TTS.Provider())
	}
	if s.STT.Provider() != model.ProviderDeepgram {
		t.Errorf("stt changed by llm override, got %s", s.STT.Provider())
	}
	if s.TTS.Setting("voice") != "nova" {
		t.Errorf("tts params changed by llm override, got %s", s.TTS.Setting("voice"))
	}
}

func TestPrepareProviderSwitchDropsPersonaParams(t *testing.T) {
	r := newRunner(t, allSecrets, session.NewMockRuntime())

	// sora's openai tts declares "instructions", which elevenlabs
	// would reject. A provider switch must start from clean params.
	s, err := r.Prepare(session.Request{
		PersonaID: "sora",
		Overrides: session.Overrides{
			TTS: session.SlotOverride{Provider: model.ProviderElevenLabs},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TTS.Provider() != model.ProviderElevenLabs {
		t.Errorf("tts override not applied, got %s", s.TTS.Provider())
	}
	if s.TTS.Setting("instructions") != "" {
		t.Error("openai-only param leaked across provider switch")
	}
}

func TestPrepareParamOverrideMergesOnSameProvider(t *testing.T) {
	r := newRunner(t, allSecrets, session.NewMockRuntime())

	s, err := r.Prepare(session.Request{
		PersonaID: "sora",
		Overrides: session.Overrides{
			TTS: session.SlotOverride{Params: model.Params{"voice": "shimmer"}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TTS.Setting("voice") != "shimmer" {
		t.Errorf("param override not applied, got %s", s.TTS.Setting("voice"))
	}
	if s.TTS.Setting("instructions") == "" {
		t.Error("persona params lost on same-provider override")
	}
}

func TestPrepareUnsupportedOverrideFailsFast(t *testing.T) {
	rt := session.NewMockRuntime()
	r := newRunner(t, allSecrets, rt)

	err := r.Run(context.Background(), session.Request{
		PersonaID: "sora",
		Overrides: session.Overrides{
			STT: session.SlotOverride{Provider: "unsupported-provider"},
		},
	})
	if !errors.Is(err, model.ErrUnsupportedProvider) {
		t.Errorf("expected ErrUnsupportedProvider, got %v", err)
	}
	if rt.StartCount() != 0 {
		t.Errorf("runtime contacted despite bad override: %d starts", rt.StartCount())
	}
}

func TestMissingCredentialFailsBeforeRuntime(t *testing.T) {
	rt := session.NewMockRuntime()
	// No DEEPGRAM_API_KEY: sora's stt slot cannot build.
	r := newRunner(t, env.Static{
		"OPENAI_API_KEY": "sk-test",
		"GROQ_API_KEY":   "gsk-test",
	}, rt)

	err := r.Run(context.Background(), session.Request{PersonaID: "sora"})
	if !errors.Is(err, model.ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}
	if rt.StartCount() != 0 {
		t.Errorf("runtime contacted despite missing credential: %d starts", rt.StartCount())
	}
}

func TestRunHandsSessionToRuntime(t *testing.T) {
	rt := session.NewMockRuntime()
	r := newRunner(t, allSecrets, rt)

	if err := r.Run(context.Background(), session.Request{
		PersonaID: "assistant",
		History:   "user asked about the weather",
		UserID:    "user-42",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sessions := rt.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.UserID != "user-42" {
		t.Errorf("user id not carried, got %s", s.UserID)
	}
	if !strings.Contains(s.Prompt, "Previous conversation history: user asked about the weather") {
		t.Error("history not appended to prompt")
	}
	if !s.AllowInterruptions {
		t.Error("interruptions should default on")
	}
}

func TestRunPropagatesRuntimeError(t *testing.T) {
	wantErr := errors.New("room unavailable")
	rt := session.NewMockRuntime()
	rt.StartFunc = func(ctx context.Context, s *session.Session) error {
		return wantErr
	}
	r := newRunner(t, allSecrets, rt)

	err := r.Run(context.Background(), session.Request{})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected runtime error, got %v", err)
	}
}

func TestOverridesFromEnv(t *testing.T) {
	t.Setenv(session.EnvLLMProvider, "groq")
	t.Setenv(session.EnvLLMModel, "llama-3.3-70b")
	t.Setenv(session.EnvTTSVoice, "rachel")
	t.Setenv(session.EnvSTTProvider, "")

	o := session.OverridesFromEnv()
	if o.LLM.Provider != model.ProviderGroq {
		t.Errorf("llm provider not read, got %s", o.LLM.Provider)
	}
	if o.LLM.Params["model"] != "llama-3.3-70b" {
		t.Errorf("llm model not read: %v", o.LLM.Params)
	}
	if o.TTS.Params["voice"] != "rachel" {
		t.Errorf("tts voice not read: %v", o.TTS.Params)
	}
	if o.STT.Provider != "" {
		t.Errorf("unset provider should stay empty, got %s", o.STT.Provider)
	}
	if len(o.STT.Params) != 0 {
		t.Errorf("unset stt params should be empty: %v", o.STT.Params)
	}
}
