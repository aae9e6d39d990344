package model

import (
	"fmt"

	"github.com/soralabs/voice-agent/internal/env"
)

// Default API base URLs per provider.
const (
	OpenAIBaseURL     = "https://api.openai.com/v1"
	GroqBaseURL       = "https://api.groq.com/openai/v1"
	ElevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	DeepgramBaseURL   = "https://api.deepgram.com/v1"
)

// Default models per slot and provider.
const (
	DefaultOpenAILLM     = "gpt-4o-mini"
	DefaultGroqLLM       = "meta-llama/llama-4-maverick-17b-128e-instruct"
	DefaultOpenAITTS     = "gpt-4o-mini-tts"
	DefaultOpenAIVoice   = "nova"
	DefaultElevenLabsTTS = "eleven_turbo_v2_5"
	DefaultOpenAISTT     = "gpt-4o-mini-transcribe"
	DefaultGroqSTT       = "whisper-large-v3-turbo"
	DefaultDeepgramSTT   = "nova-3"
)

// Create builds a Handle for the given slot and provider. Dispatch is an
// exhaustive switch with one case per supported (slot, provider) pair, so
// adding or removing a provider is a compile-visible change rather than a
// silent lookup miss.
//
// Unrecognized parameter keys fail with InvalidParameterError, an absent
// credential with MissingCredentialError, and a provider outside the
// slot's closed set with UnsupportedProviderError. All three surface
// before the external session starts; Create never touches the network.
func Create(slot Slot, provider Provider, params Params, secrets env.Secrets) (*Handle, error) {
	switch slot {
	case SlotLLM:
		switch provider {
		case ProviderOpenAI:
			return newOpenAILLM(params, secrets)
		case ProviderGroq:
			return newGroqLLM(params, secrets)
		}
	case SlotTTS:
		switch provider {
		case ProviderOpenAI:
			return newOpenAITTS(params, secrets)
		case ProviderElevenLabs:
			return newElevenLabsTTS(params, secrets)
		}
	case SlotSTT:
		switch provider {
		case ProviderOpenAI:
			return newOpenAISTT(params, secrets)
		case ProviderGroq:
			return newGroqSTT(params, secrets)
		case ProviderDeepgram:
			return newDeepgramSTT(params, secrets)
		}
	}
	return nil, &UnsupportedProviderError{Slot: slot, Provider: provider}
}

func newOpenAILLM(params Params, secrets env.Secrets) (*Handle, error) {
	if err := checkKeys(SlotLLM, ProviderOpenAI, params, "model", "temperature", "max_tokens", "base_url"); err != nil {
		return nil, err
	}
	if err := checkFloat(SlotLLM, ProviderOpenAI, params, "temperature", 0, 2); err != nil {
		return nil, err
	}
	if err := checkInt(SlotLLM, ProviderOpenAI, params, "max_tokens"); err != nil {
		return nil, err
	}
	key, err := credential(ProviderOpenAI, secrets)
	if err != nil {
		return nil, err
	}
	settings := resolve(params, map[string]string{
		"model":       DefaultOpenAILLM,
		"temperature": "0.7",
	})
	endpoint := settings["base_url"]
	delete(settings, "base_url")
	if endpoint == "" {
		endpoint = OpenAIBaseURL
	}
	return &Handle{slot: SlotLLM, provider: ProviderOpenAI, endpoint: endpoint, apiKey: key, settings: settings}, nil
}

func newGroqLLM(params Params, secrets env.Secrets) (*Handle, error) {
	if err := checkKeys(SlotLLM, ProviderGroq, params, "model", "temperature", "max_tokens"); err != nil {
		return nil, err
	}
	if err := checkFloat(SlotLLM, ProviderGroq, params, "temperature", 0, 2); err != nil {
		return nil, err
	}
	if err := checkInt(SlotLLM, ProviderGroq, params, "max_tokens"); err != nil {
		return nil, err
	}
	key, err := credential(ProviderGroq, secrets)
	if err != nil {
		return nil, err
	}
	settings := resolve(params, map[string]string{
		"model":       DefaultGroqLLM,
		"temperature": "0.7",
	})
	return &Handle{slot: SlotLLM, provider: ProviderGroq, endpoint: GroqBaseURL, apiKey: key, settings: settings}, nil
}

func newOpenAITTS(params Params, secrets env.Secrets) (*Handle, error) {
	if err := checkKeys(SlotTTS, ProviderOpenAI, params, "model", "voice", "instructions", "speed"); err != nil {
		return nil, err
	}
	if err := checkFloat(SlotTTS, ProviderOpenAI, params, "speed", 0.25, 4); err != nil {
		return nil, err
	}
	if v, ok := params["voice"]; ok && !isOpenAIVoice(v) {
		return nil, &InvalidParameterError{
			Slot: SlotTTS, Provider: ProviderOpenAI, Key: "voice",
			Reason: fmt.Sprintf("unknown voice %q (accepted: %v)", v, OpenAIVoices),
		}
	}
	key, err := credential(ProviderOpenAI, secrets)
	if err != nil {
		return nil, err
	}
	settings := resolve(params, map[string]string{
		"model": DefaultOpenAITTS,
		"voice": DefaultOpenAIVoice,
	})
	return &Handle{slot: SlotTTS, provider: ProviderOpenAI, endpoint: OpenAIBaseURL, apiKey: key, settings: settings}, nil
}

func newElevenLabsTTS(params Params, secrets env.Secrets) (*Handle, error) {
	if err := checkKeys(SlotTTS, ProviderElevenLabs, params, "model", "voice", "stability", "similarity"); err != nil {
		return nil, err
	}
	if err := checkFloat(SlotTTS, ProviderElevenLabs, params, "stability", 0, 1); err != nil {
		return nil, err
	}
	if err := checkFloat(SlotTTS, ProviderElevenLabs, params, "similarity", 0, 1); err != nil {
		return nil, err
	}
	key, err := credential(ProviderElevenLabs, secrets)
	if err != nil {
		return nil, err
	}
	settings := resolve(params, map[string]string{
		"model":      DefaultElevenLabsTTS,
		"voice":      DefaultElevenLabsVoice,
		"stability":  "0.5",
		"similarity": "0.75",
	})
	// Accept friendly preset names as well as raw voice IDs.
	settings["voice"] = ResolveElevenLabsVoice(settings["voice"])
	return &Handle{slot: SlotTTS, provider: ProviderElevenLabs, endpoint: ElevenLabsBaseURL, apiKey: key, settings: settings}, nil
}

func newOpenAISTT(params Params, secrets env.Secrets) (*Handle, error) {
	if err := checkKeys(SlotSTT, ProviderOpenAI, params, "model", "language"); err != nil {
		return nil, err
	}
	key, err := credential(ProviderOpenAI, secrets)
	if err != nil {
		return nil, err
	}
	settings := resolve(params, map[string]string{
		"model":    DefaultOpenAISTT,
		"language": "en",
	})
	return &Handle{slot: SlotSTT, provider: ProviderOpenAI, endpoint: OpenAIBaseURL, apiKey: key, settings: settings}, nil
}

func newGroqSTT(params Params, secrets env.Secrets) (*Handle, error) {
	if err := checkKeys(SlotSTT, ProviderGroq, params, "model", "language"); err != nil {
		return nil, err
	}
	key, err := credential(ProviderGroq, secrets)
	if err != nil {
		return nil, err
	}
	settings := resolve(params, map[string]string{
		"model":    DefaultGroqSTT,
		"language": "en",
	})
	return &Handle{slot: SlotSTT, provider: ProviderGroq, endpoint: GroqBaseURL, apiKey: key, settings: settings}, nil
}

func newDeepgramSTT(params Params, secrets env.Secrets) (*Handle, error) {
	if err := checkKeys(SlotSTT, ProviderDeepgram, params, "model", "language", "sample_rate"); err != nil {
		return nil, err
	}
	if err := checkInt(SlotSTT, ProviderDeepgram, params, "sample_rate"); err != nil {
		return nil, err
	}
	key, err := credential(ProviderDeepgram, secrets)
	if err != nil {
		return nil, err
	}
	settings := resolve(params, map[string]string{
		"model":    DefaultDeepgramSTT,
		"language": "en",
	})
	return &Handle{slot: SlotSTT, provider: ProviderDeepgram, endpoint: DeepgramBaseURL, apiKey: key, settings: settings}, nil
}

// credential resolves the provider API key or fails with
// MissingCredentialError.
func credential(provider Provider, secrets env.Secrets) (string, error) {
	name := CredentialVar(provider)
	key, ok := secrets.Lookup(name)
	if !ok {
		return "", &MissingCredentialError{Provider: provider, Var: name}
	}
	return key, nil
}

// resolve fills provider defaults for params the caller omitted.
func resolve(params Params, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(defaults)+len(params))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range params {
		out[k] = v
	}
	return out
}
