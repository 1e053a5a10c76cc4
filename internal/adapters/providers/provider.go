// Package providers defines the adapter contract for content analysis
// backends and the registry the service builds its enabled set from.
//
// An adapter wraps one backend (the in-process heuristic pack or a remote
// model endpoint) and normalizes every outcome to a Finding or a classified
// *Error, so no backend-specific failure ever escapes into the orchestrator
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"veracity/internal/core/aggregate"
	"veracity/internal/core/content"
	"veracity/internal/core/fingerprint"
)

// Request carries one piece of content to an adapter.
// Exactly one of Text, Media or MediaURL is populated, matching how the
// content was submitted
type Request struct {
	Fingerprint fingerprint.Fingerprint
	Type        content.Type

	Text     string // inline text
	Media    string // base64 payload for binary submissions
	MediaURL string // reference URL for remote content

	Lang string // optional language hint, BCP-47-ish
}

// Adapter is one analysis backend
type Adapter interface {
	// Name returns the stable registry name
	Name() string

	// Supports reports whether the adapter can analyze the content type
	Supports(t content.Type) bool

	// Analyze runs the backend and returns a finding with a sub-score in
	// [0,1] (1 = authentic) and any flagged signals. Failures come back as
	// *Error. Implementations must honor ctx cancellation
	Analyze(ctx context.Context, req Request) (aggregate.Finding, error)
}

// Reason classifies why an adapter call failed
type Reason string

const (
	ReasonTimeout       Reason = "timeout"
	ReasonQuotaExceeded Reason = "quota_exceeded"
	ReasonInvalidInput  Reason = "invalid_input"
	ReasonUnavailable   Reason = "provider_unavailable"
	ReasonUnknown       Reason = "unknown"
)

// Error is the one failure type adapters are allowed to return
type Error struct {
	Provider string
	Reason   Reason
	Err      error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error with a formatted cause
func Errorf(provider string, reason Reason, format string, args ...any) *Error {
	return &Error{Provider: provider, Reason: reason, Err: fmt.Errorf(format, args...)}
}

// Classify wraps an arbitrary failure from an adapter call.
// Context expiry maps to timeout; an existing *Error passes through untouched;
// anything else is unknown
func Classify(provider string, err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Provider: provider, Reason: ReasonTimeout, Err: err}
	}
	return &Error{Provider: provider, Reason: ReasonUnknown, Err: err}
}

// FromStatus maps a non-2xx backend response to a classified error
func FromStatus(provider string, status int) *Error {
	var reason Reason
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnsupportedMediaType:
		reason = ReasonInvalidInput
	case status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusTooManyRequests:
		reason = ReasonQuotaExceeded
	case status >= 500:
		reason = ReasonUnavailable
	default:
		reason = ReasonUnknown
	}
	return &Error{Provider: provider, Reason: reason, Err: fmt.Errorf("status %d", status)}
}

// ReasonOf extracts the classification from any error in the chain.
// Non-adapter errors read as unknown
func ReasonOf(err error) Reason {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return ReasonUnknown
}
