package session

import (
	"os"

	"github.com/soralabs/voice-agent/pkg/model"
	"github.com/soralabs/voice-agent/pkg/persona"
)

// SlotOverride adjusts one model slot. A non-empty Provider replaces the
// persona's provider for that slot; Params are applied on top of the
// persona's parameters. Naming a provider the factory does not support
// for the slot fails session preparation rather than falling back.
type SlotOverride struct {
	Provider model.Provider
	Params   model.Params
}

// Overrides holds optional per-slot adjustments. Zero value means "use
// the persona as declared".
type Overrides struct {
	LLM SlotOverride
	TTS SlotOverride
	STT SlotOverride
}

// slot returns the override for a slot.
func (o Overrides) slot(slot model.Slot) SlotOverride {
	switch slot {
	case model.SlotLLM:
		return o.LLM
	case model.SlotTTS:
		return o.TTS
	case model.SlotSTT:
		return o.STT
	default:
		return SlotOverride{}
	}
}

// apply resolves the effective provider and params for a slot. When the
// override switches providers, the persona's params are dropped: they
// were written for the old provider and would trip strict parameter
// validation on the new one.
func (o Overrides) apply(slot model.Slot, sel persona.ModelSelection) (model.Provider, model.Params) {
	ov := o.slot(slot)
	provider := sel.Provider
	params := sel.Params.Clone()
	if ov.Provider != "" && ov.Provider != sel.Provider {
		provider = ov.Provider
		params = model.Params{}
	}
	return provider, params.Merge(ov.Params)
}

// Environment variables recognized by OverridesFromEnv.
const (
	EnvLLMProvider    = "LLM_PROVIDER"
	EnvLLMModel       = "LLM_MODEL"
	EnvLLMTemperature = "LLM_TEMPERATURE"
	EnvTTSProvider    = "TTS_PROVIDER"
	EnvTTSModel       = "TTS_MODEL"
	EnvTTSVoice       = "TTS_VOICE"
	EnvSTTProvider    = "STT_PROVIDER"
	EnvSTTModel       = "STT_MODEL"
)

// OverridesFromEnv reads per-slot provider and parameter overrides from
// the process environment. Unset variables leave the persona defaults
// untouched.
func OverridesFromEnv() Overrides {
	var o Overrides

	o.LLM.Provider = model.Provider(os.Getenv(EnvLLMProvider))
	o.LLM.Params = envParams(map[string]string{
		"model":       EnvLLMModel,
		"temperature": EnvLLMTemperature,
	})

	o.TTS.Provider = model.Provider(os.Getenv(EnvTTSProvider))
	o.TTS.Params = envParams(map[string]string{
		"model": EnvTTSModel,
		"voice": EnvTTSVoice,
	})

	o.STT.Provider = model.Provider(os.Getenv(EnvSTTProvider))
	o.STT.Params = envParams(map[string]string{
		"model": EnvSTTModel,
	})

	return o
}

// envParams builds a params map from key → env-var-name pairs, skipping
// unset variables.
func envParams(vars map[string]string) model.Params {
	params := model.Params{}
	for key, name := range vars {
		if v := os.Getenv(name); v != "" {
			params[key] = v
		}
	}
	return params
}
