package model

import (
	"fmt"
	"sort"
	"strings"
)

// Handle is an opaque, ready-to-use model configuration for the external
// agent runtime. It carries everything needed to invoke the provider:
// endpoint, resolved parameters and the credential. Handles are created
// fresh per session, owned by the session for its lifetime, and never
// pooled or cached across sessions.
//
// Construction performs no network I/O; the runtime connects when the
// session begins.
type Handle struct {
	slot     Slot
	provider Provider
	endpoint string
	apiKey   string
	settings map[string]string
}

// Slot returns the model slot this handle fills.
func (h *Handle) Slot() Slot { return h.slot }

// Provider returns the provider this handle is configured for.
func (h *Handle) Provider() Provider { return h.provider }

// Endpoint returns the provider API base URL.
func (h *Handle) Endpoint() string { return h.endpoint }

// APIKey returns the resolved credential.
func (h *Handle) APIKey() string { return h.apiKey }

// Setting returns a resolved parameter value.
func (h *Handle) Setting(key string) string { return h.settings[key] }

// Settings returns a copy of all resolved parameters.
func (h *Handle) Settings() map[string]string {
	out := make(map[string]string, len(h.settings))
	for k, v := range h.settings {
		out[k] = v
	}
	return out
}

// Equal reports whether two handles have identical effective
// configuration (same slot, provider, endpoint, credential and resolved
// parameters).
func (h *Handle) Equal(other *Handle) bool {
	if h == nil || other == nil {
		return h == other
	}
	if h.slot != other.slot || h.provider != other.provider ||
		h.endpoint != other.endpoint || h.apiKey != other.apiKey ||
		len(h.settings) != len(other.settings) {
		return false
	}
	for k, v := range h.settings {
		if other.settings[k] != v {
			return false
		}
	}
	return true
}

// String returns a redacted description safe for logs.
func (h *Handle) String() string {
	keys := make([]string, 0, len(h.settings))
	for k := range h.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+h.settings[k])
	}
	return fmt.Sprintf("%s/%s{%s}", h.slot, h.provider, strings.Join(parts, " "))
}
