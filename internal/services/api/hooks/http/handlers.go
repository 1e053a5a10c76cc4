// Package http provides http transport for hooks
package http

import (
	"crypto/subtle"
	stdhttp "net/http"

	"veracity/internal/modkit/httpkit"
	"veracity/internal/platform/net/middleware"
	"veracity/internal/services/api/hooks/domain"
	svc "veracity/internal/services/api/hooks/service"
)

// Register mounts webhook endpoints on the given router.
// The challenge endpoint stays open; message delivery sits behind bearer auth
func Register(r httpkit.Router, s svc.Service, verifyToken string, port middleware.AuthPort) {
	h := &handlers{svc: s, verifyToken: verifyToken}

	// subscription handshake, echoes hub.challenge on token match
	r.Get("/whatsapp", h.challenge)

	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.WhatsAppMessage](pr, "/whatsapp", h.receive)
	})
}

type handlers struct {
	svc         svc.Service
	verifyToken string
}

// challenge answers the webhook subscription handshake.
// The reply is the raw hub.challenge value, not an envelope; an unset
// verify token rejects every handshake
func (h *handlers) challenge(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	ok := h.verifyToken != "" &&
		q.Get("hub.mode") == "subscribe" &&
		subtle.ConstantTimeCompare([]byte(q.Get("hub.verify_token")), []byte(h.verifyToken)) == 1
	if !ok {
		stdhttp.Error(w, "verification failed", stdhttp.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(q.Get("hub.challenge")))
}

// swagger:route POST /hooks/whatsapp Hooks hooksWhatsApp
// @Summary Receive a forwarded WhatsApp message
// @Tags Hooks
// @Accept json
// @Produce json
// @Param payload body domain.WhatsAppMessage true "Forwarded message"
// @Success 200 {object} domain.WhatsAppReply "ok"
// @Failure 400 {object} errors.Wire "invalid payload"
// @Failure 401 {object} errors.Wire "missing or invalid bearer token"
// @Router /hooks/whatsapp [post]
func (h *handlers) receive(r *stdhttp.Request, in domain.WhatsAppMessage) (any, error) {
	return h.svc.Receive(r.Context(), in)
}
