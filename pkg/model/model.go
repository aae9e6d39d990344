// Package model builds configured provider handles for the three model
// slots a voice agent needs filled: language model (llm), text-to-speech
// (tts) and speech-to-text (stt).
//
// The package is a pure factory: Create resolves provider defaults,
// validates parameters and credentials, and returns an opaque Handle for
// the external agent runtime to connect with. No network I/O happens at
// factory time.
//
// Example usage:
//
//	handle, err := model.Create(model.SlotTTS, model.ProviderElevenLabs,
//	    model.Params{"voice": "charlotte"}, env.OS{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// handle carries the endpoint, resolved params and credential
package model

// Slot identifies one of the three model roles an agent needs filled.
type Slot string

const (
	// SlotLLM is the language model slot.
	SlotLLM Slot = "llm"

	// SlotTTS is the text-to-speech slot.
	SlotTTS Slot = "tts"

	// SlotSTT is the speech-to-text slot.
	SlotSTT Slot = "stt"
)

// Slots lists all model slots in resolution order.
var Slots = []Slot{SlotLLM, SlotTTS, SlotSTT}

// Provider identifies an external model vendor.
type Provider string

const (
	// ProviderOpenAI serves all three slots.
	ProviderOpenAI Provider = "openai"

	// ProviderGroq serves llm and stt through its OpenAI-compatible API.
	ProviderGroq Provider = "groq"

	// ProviderElevenLabs serves tts (custom voice cloning).
	ProviderElevenLabs Provider = "elevenlabs"

	// ProviderDeepgram serves stt.
	ProviderDeepgram Provider = "deepgram"
)

// Supported reports whether provider is implemented for slot.
func Supported(slot Slot, provider Provider) bool {
	for _, p := range SupportedProviders(slot) {
		if p == provider {
			return true
		}
	}
	return false
}

// SupportedProviders returns the closed set of providers for a slot.
func SupportedProviders(slot Slot) []Provider {
	switch slot {
	case SlotLLM:
		return []Provider{ProviderOpenAI, ProviderGroq}
	case SlotTTS:
		return []Provider{ProviderOpenAI, ProviderElevenLabs}
	case SlotSTT:
		return []Provider{ProviderOpenAI, ProviderGroq, ProviderDeepgram}
	default:
		return nil
	}
}

// CredentialVar returns the environment variable holding the API key
// for a provider.
func CredentialVar(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGroq:
		return "GROQ_API_KEY"
	case ProviderElevenLabs:
		return "ELEVENLABS_API_KEY"
	case ProviderDeepgram:
		return "DEEPGRAM_API_KEY"
	default:
		return ""
	}
}
