package middleware

import (
	"net/http"

	pnet "veracity/internal/platform/net"
)

// AuthPort is a tiny seam token-auth services implement
type AuthPort interface {
	// Verify returns the calling client id from the request or an error
	Verify(r *http.Request) (clientID string, err error)
}

// Auth is a no-op until wired. It uses the port when provided
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			cid, err := p.Verify(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithClient(r.Context(), cid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
