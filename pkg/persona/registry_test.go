package persona_test

import (
	"errors"
	"testing"

	"github.com/soralabs/voice-agent/internal/env"
	"github.com/soralabs/voice-agent/pkg/model"
	"github.com/soralabs/voice-agent/pkg/persona"
)

var allSecrets = env.Static{
	"OPENAI_API_KEY":     "sk-test",
	"GROQ_API_KEY":       "gsk-test",
	"ELEVENLABS_API_KEY": "el-test",
	"DEEPGRAM_API_KEY":   "dg-test",
}

func testPersona(id string) persona.Persona {
	return persona.Persona{
		ID:        id,
		Prompt:    "You are a test persona.",
		Greetings: []string{"hello"},
		Models: persona.Models{
			LLM: persona.ModelSelection{Provider: model.ProviderOpenAI},
			TTS: persona.ModelSelection{Provider: model.ProviderOpenAI},
			STT: persona.ModelSelection{Provider: model.ProviderDeepgram},
		},
	}
}

func TestRegistryResolve(t *testing.T) {
	reg, err := persona.NewRegistry(persona.Builtin()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("known persona", func(t *testing.T) {
		p, err := reg.Resolve(persona.DefaultID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != persona.DefaultID {
			t.Errorf("expected %s, got %s", persona.DefaultID, p.ID)
		}
	})

	t.Run("unknown persona", func(t *testing.T) {
		_, err := reg.Resolve("nonexistent")
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, persona.ErrUnknownPersona) {
			t.Errorf("expected ErrUnknownPersona, got %v", err)
		}
		var upe *persona.UnknownPersonaError
		if !errors.As(err, &upe) || upe.ID != "nonexistent" {
			t.Errorf("expected typed error with id, got %v", err)
		}
	})

	t.Run("resolved copies are isolated", func(t *testing.T) {
		p, _ := reg.Resolve(persona.DefaultID)
		p.Greetings[0] = "mutated"
		p.Models.LLM.Params["model"] = "mutated"

		again, _ := reg.Resolve(persona.DefaultID)
		if again.Greetings[0] == "mutated" {
			t.Error("registry greeting mutated through resolved copy")
		}
		if again.Models.LLM.Params["model"] == "mutated" {
			t.Error("registry params mutated through resolved copy")
		}
	})
}

// Every built-in persona's three selections must build through the
// factory with credentials present: the registry and factory agree on
// the provider sets.
func TestBuiltinFactoryConsistency(t *testing.T) {
	reg, err := persona.NewRegistry(persona.Builtin()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range reg.IDs() {
		t.Run(id, func(t *testing.T) {
			p, err := reg.Resolve(id)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			for _, slot := range model.Slots {
				sel := p.Models.Selection(slot)
				if !model.Supported(slot, sel.Provider) {
					t.Errorf("slot %s references unsupported provider %s", slot, sel.Provider)
				}
				if _, err := model.Create(slot, sel.Provider, sel.Params, allSecrets); err != nil {
					t.Errorf("slot %s does not build: %v", slot, err)
				}
			}
		})
	}
}

func TestNewRegistryValidation(t *testing.T) {
	t.Run("unsupported provider rejected at construction", func(t *testing.T) {
		bad := testPersona("bad")
		bad.Models.STT.Provider = "whisper-local"
		_, err := persona.NewRegistry(bad)
		if !errors.Is(err, model.ErrUnsupportedProvider) {
			t.Errorf("expected ErrUnsupportedProvider, got %v", err)
		}
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		_, err := persona.NewRegistry(testPersona("twin"), testPersona("twin"))
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("empty prompt rejected", func(t *testing.T) {
		bad := testPersona("mute")
		bad.Prompt = "  "
		if _, err := persona.NewRegistry(bad); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing greetings rejected", func(t *testing.T) {
		bad := testPersona("silent")
		bad.Greetings = nil
		if _, err := persona.NewRegistry(bad); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestGreetingAndHistory(t *testing.T) {
	p := testPersona("greeter")
	p.Greetings = []string{"hi", "hey", "hello"}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		g := p.Greeting()
		seen[g] = true
		if g != "hi" && g != "hey" && g != "hello" {
			t.Fatalf("greeting outside declared set: %q", g)
		}
	}

	t.Run("history appended", func(t *testing.T) {
		prompt := p.PromptWithHistory("user likes jazz")
		if prompt == p.Prompt {
			t.Error("history not appended")
		}
	})

	t.Run("blank history leaves prompt unchanged", func(t *testing.T) {
		if p.PromptWithHistory("  ") != p.Prompt {
			t.Error("blank history should not change prompt")
		}
	})
}

func TestMerge(t *testing.T) {
	base := []persona.Persona{testPersona("a"), testPersona("b")}
	replacement := testPersona("b")
	replacement.Prompt = "replaced"
	extra := testPersona("c")

	merged := persona.Merge(base, []persona.Persona{replacement, extra})
	if len(merged) != 3 {
		t.Fatalf("expected 3 personas, got %d", len(merged))
	}
	if merged[1].Prompt != "replaced" {
		t.Error("overlay did not replace by id")
	}
	if merged[2].ID != "c" {
		t.Error("overlay did not append new persona")
	}
}
