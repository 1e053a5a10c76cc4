// Package http provides http transport for verify
package http

import (
	stdhttp "net/http"
	"strconv"

	"veracity/internal/modkit/httpkit"
	perrs "veracity/internal/platform/errors"
	"veracity/internal/services/api/verify/domain"
	svc "veracity/internal/services/api/verify/service"
)

// Register mounts verify endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.VerifyInput](r, "/", h.verify)
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.batch)
	httpkit.Get(r, "/{fingerprint}", h.lookup)
	httpkit.Get(r, "/{fingerprint}/history", h.history)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /verify Verify verifySubmit
// @Summary Verify one piece of content
// @Tags Verify
// @Accept json
// @Produce json
// @Param payload body domain.VerifyInput true "Submission"
// @Success 200 {object} domain.VerifyResult "ok"
// @Failure 400 {object} httpkit.Envelope "validation failure"
// @Router /verify [post]
func (h *handlers) verify(r *stdhttp.Request, in domain.VerifyInput) (any, error) {
	return h.svc.Verify(r.Context(), in)
}

// swagger:route POST /verify/batch Verify verifyBatch
// @Summary Verify a batch of submissions
// @Tags Verify
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Submissions"
// @Success 200 {object} domain.BatchResult "ok"
// @Failure 400 {object} httpkit.Envelope "batch size out of range"
// @Router /verify/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.VerifyBatch(r.Context(), in)
}

// swagger:route GET /verify/{fingerprint} Verify verifyLookup
// @Summary Stored verification record by fingerprint
// @Tags Verify
// @Produce json
// @Param fingerprint path string true "Content fingerprint (hex SHA-256)"
// @Success 200 {object} domain.RecordResponse "ok"
// @Failure 404 {object} httpkit.Envelope "no record"
// @Failure 503 {object} httpkit.Envelope "record store unavailable"
// @Router /verify/{fingerprint} [get]
func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	return h.svc.Lookup(r.Context(), httpkit.Param(r, "fingerprint"))
}

// swagger:route GET /verify/{fingerprint}/history Verify verifyHistory
// @Summary Recent verifications of a fingerprint
// @Tags Verify
// @Produce json
// @Param fingerprint path string true "Content fingerprint (hex SHA-256)"
// @Param limit query int false "Max rows (default 20)"
// @Success 200 {array} domain.HistoryRow "ok"
// @Router /verify/{fingerprint}/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, perrs.Newf(perrs.ErrorCodeValidation, "limit must be a positive integer")
		}
		limit = n
	}
	return h.svc.History(r.Context(), httpkit.Param(r, "fingerprint"), limit)
}
