package model

import (
	"strconv"
)

// Params holds provider-specific parameter overrides as raw strings, the
// way they arrive from environment variables and persona files. Keys not
// recognized by the chosen provider are rejected rather than ignored;
// this is the last validation layer before a costly session start.
type Params map[string]string

// Clone returns a copy of the params, never nil.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a copy of p with overrides applied on top.
func (p Params) Merge(overrides Params) Params {
	out := p.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// checkKeys rejects any key not in the provider's recognized set.
func checkKeys(slot Slot, provider Provider, params Params, recognized ...string) error {
	allowed := make(map[string]bool, len(recognized))
	for _, k := range recognized {
		allowed[k] = true
	}
	for k := range params {
		if !allowed[k] {
			return &InvalidParameterError{Slot: slot, Provider: provider, Key: k, Reason: "unrecognized key"}
		}
	}
	return nil
}

// checkFloat validates that key, if present, parses as a float within
// [min, max]. The raw string is kept in the handle settings.
func checkFloat(slot Slot, provider Provider, params Params, key string, min, max float64) error {
	raw, ok := params[key]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &InvalidParameterError{Slot: slot, Provider: provider, Key: key, Reason: "not a number"}
	}
	if v < min || v > max {
		return &InvalidParameterError{Slot: slot, Provider: provider, Key: key,
			Reason: "out of range " + strconv.FormatFloat(min, 'g', -1, 64) + ".." + strconv.FormatFloat(max, 'g', -1, 64)}
	}
	return nil
}

// checkInt validates that key, if present, parses as a positive integer.
func checkInt(slot Slot, provider Provider, params Params, key string) error {
	raw, ok := params[key]
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return &InvalidParameterError{Slot: slot, Provider: provider, Key: key, Reason: "not a positive integer"}
	}
	return nil
}
