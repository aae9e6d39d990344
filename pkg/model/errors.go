package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions. All factory failures are
// startup-time configuration errors: callers should fail fast, not retry.
var (
	// ErrUnsupportedProvider is returned when a provider is not
	// implemented for the requested slot.
	ErrUnsupportedProvider = errors.New("model: unsupported provider")

	// ErrMissingCredential is returned when the API key for the chosen
	// provider is absent from the secret source.
	ErrMissingCredential = errors.New("model: missing credential")

	// ErrInvalidParameter is returned for unrecognized or malformed
	// provider parameters.
	ErrInvalidParameter = errors.New("model: invalid parameter")
)

// UnsupportedProviderError reports a provider outside the closed set
// for a slot.
type UnsupportedProviderError struct {
	Slot     Slot
	Provider Provider
}

// Error implements the error interface.
func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("model: provider %q not supported for slot %q (supported: %v)",
		e.Provider, e.Slot, SupportedProviders(e.Slot))
}

// Unwrap returns ErrUnsupportedProvider so errors.Is works.
func (e *UnsupportedProviderError) Unwrap() error {
	return ErrUnsupportedProvider
}

// MissingCredentialError reports an absent API key.
type MissingCredentialError struct {
	Provider Provider
	Var      string
}

// Error implements the error interface.
func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("model: credential %s required for provider %q is not set", e.Var, e.Provider)
}

// Unwrap returns ErrMissingCredential so errors.Is works.
func (e *MissingCredentialError) Unwrap() error {
	return ErrMissingCredential
}

// InvalidParameterError reports an unrecognized or malformed parameter.
type InvalidParameterError struct {
	Slot     Slot
	Provider Provider
	Key      string
	Reason   string
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("model: invalid parameter %q for %s/%s: %s", e.Key, e.Slot, e.Provider, e.Reason)
}

// Unwrap returns ErrInvalidParameter so errors.Is works.
func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}
