// Package persona defines the voice-agent personalities and the
// read-only registry they are resolved from.
//
// A persona bundles a system prompt, greetings, an avatar reference and
// one model selection per slot (llm, tts, stt). Personas are
// configuration data, not behavior: the registry is a static closed
// mapping constructed once at process start and never mutated.
package persona

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/soralabs/voice-agent/pkg/model"
)

// ErrUnknownPersona is returned when a persona key is not registered.
var ErrUnknownPersona = errors.New("persona: unknown persona")

// UnknownPersonaError reports an unregistered persona key.
type UnknownPersonaError struct {
	ID string
}

// Error implements the error interface.
func (e *UnknownPersonaError) Error() string {
	return fmt.Sprintf("persona: unknown persona %q", e.ID)
}

// Unwrap returns ErrUnknownPersona so errors.Is works.
func (e *UnknownPersonaError) Unwrap() error {
	return ErrUnknownPersona
}

// ModelSelection names the provider for one slot plus provider-specific
// parameter overrides. Omitted parameters take provider defaults.
type ModelSelection struct {
	Provider model.Provider `yaml:"provider"`
	Params   model.Params   `yaml:"params,omitempty"`
}

// Models holds the three slot selections every persona must fill.
type Models struct {
	LLM ModelSelection `yaml:"llm"`
	TTS ModelSelection `yaml:"tts"`
	STT ModelSelection `yaml:"stt"`
}

// Selection returns the model selection for a slot.
func (m Models) Selection(slot model.Slot) ModelSelection {
	switch slot {
	case model.SlotLLM:
		return m.LLM
	case model.SlotTTS:
		return m.TTS
	case model.SlotSTT:
		return m.STT
	default:
		return ModelSelection{}
	}
}

// Persona is a named voice-agent personality. Immutable once registered.
type Persona struct {
	// ID is the unique registry key (e.g. "sora", "assistant").
	ID string `yaml:"id"`

	// Prompt is the system prompt handed to the agent runtime.
	Prompt string `yaml:"prompt"`

	// Greetings are spoken verbatim at session start; one is picked at
	// random per session.
	Greetings []string `yaml:"greetings"`

	// Description is a human-readable summary for dashboards.
	Description string `yaml:"description"`

	// AvatarURL references the persona's avatar asset.
	AvatarURL string `yaml:"avatar_url"`

	// Models selects the provider and parameters for each slot.
	Models Models `yaml:"models"`
}

// Greeting returns a randomly chosen greeting.
func (p Persona) Greeting() string {
	if len(p.Greetings) == 0 {
		return ""
	}
	return p.Greetings[rand.Intn(len(p.Greetings))]
}

// PromptWithHistory returns the prompt with prior conversation history
// appended, when the caller carries one over from an earlier session.
func (p Persona) PromptWithHistory(history string) string {
	if strings.TrimSpace(history) == "" {
		return p.Prompt
	}
	return p.Prompt + "\n\nPrevious conversation history: " + history
}

// validate checks a persona definition against the startup invariants:
// non-empty key, prompt and greeting set, and every slot selection
// naming a provider the model factory recognizes for that slot.
func (p Persona) validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("persona: empty persona id")
	}
	if strings.TrimSpace(p.Prompt) == "" {
		return fmt.Errorf("persona %q: empty prompt", p.ID)
	}
	if len(p.Greetings) == 0 {
		return fmt.Errorf("persona %q: no greetings", p.ID)
	}
	for _, slot := range model.Slots {
		sel := p.Models.Selection(slot)
		if !model.Supported(slot, sel.Provider) {
			return fmt.Errorf("persona %q: %w", p.ID,
				&model.UnsupportedProviderError{Slot: slot, Provider: sel.Provider})
		}
	}
	return nil
}

// clone deep-copies the persona so registry entries stay immutable.
func (p Persona) clone() Persona {
	out := p
	out.Greetings = append([]string(nil), p.Greetings...)
	out.Models.LLM.Params = p.Models.LLM.Params.Clone()
	out.Models.TTS.Params = p.Models.TTS.Params.Clone()
	out.Models.STT.Params = p.Models.STT.Params.Clone()
	return out
}
