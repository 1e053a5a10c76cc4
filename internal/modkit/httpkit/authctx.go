package httpkit

import (
	"net/http"
	"strings"

	perrs "veracity/internal/platform/errors"
	pnet "veracity/internal/platform/net"
)

// Client returns the authenticated client id from the request context
func Client(r *http.Request) (string, error) {
	cid := pnet.ClientID(r.Context())
	if cid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return cid, nil
}

// MustClient returns the authenticated client id or panics
// only use on routes protected by the auth middleware
func MustClient(r *http.Request) string {
	cid, err := Client(r)
	if err != nil {
		panic(err)
	}
	return cid
}

// BearerToken returns the raw bearer token from the Authorization header
func BearerToken(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// case-insensitive Bearer prefix (don't trim the whole header first)
	const prefix = "bearer "
	if len(authz) < len(prefix) || strings.ToLower(authz[:len(prefix)]) != prefix {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// MustBearerToken returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustBearerToken(r *http.Request) string {
	raw, err := BearerToken(r)
	if err != nil {
		panic(err)
	}
	return raw
}
