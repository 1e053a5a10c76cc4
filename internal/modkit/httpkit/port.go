// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "veracity/internal/platform/errors"
)

// TokenFunc verifies a bearer token and returns the calling client id
type TokenFunc func(token string) (clientID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	verify TokenFunc
}

// NewPortFunc builds a Port from a simple verifier function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{verify: fn}
}

// NewStaticPort builds a Port that accepts exactly one shared token.
// Comparison is constant time so the token length does not leak
func NewStaticPort(clientID, token string) *Port {
	want := []byte(token)
	return NewPortFunc(func(got string) (string, error) {
		if len(want) == 0 {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
		if subtle.ConstantTimeCompare(want, []byte(got)) != 1 {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
		return clientID, nil
	})
}

// Verify extracts the client id from an Authorization Bearer token
// returns unauthorized when the header is missing, malformed, or the verifier rejects it
func (p *Port) Verify(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	// normalize whitespace around the whole header
	s := strings.TrimSpace(authz)
	if s == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	ls := strings.ToLower(s)
	const prefix = "bearer"
	if !strings.HasPrefix(ls, prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// slice after "Bearer" (no trailing space required), then trim any spaces before token
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}

	if p.verify == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}

	cid, err := p.verify(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return cid, nil
}
