// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"
	"strconv"

	"veracity/internal/modkit/httpkit"
	perrs "veracity/internal/platform/errors"
	svc "veracity/internal/services/api/stats/service"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// record store rollup
	httpkit.Get(r, "/overview", h.overview)

	// per-day request volume
	httpkit.Get(r, "/timeseries", h.timeseries)

	// per-provider usage
	httpkit.Get(r, "/providers", h.providers)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /stats/overview Stats statsOverview
// @Summary Verification record rollup
// @Tags Stats
// @Produce json
// @Success 200 {object} domain.OverviewResponse "ok"
// @Router /stats/overview [get]
func (h *handlers) overview(r *stdhttp.Request) (any, error) {
	return h.svc.Overview(r.Context())
}

// swagger:route GET /stats/timeseries Stats statsTimeseries
// @Summary Daily request volume
// @Tags Stats
// @Produce json
// @Param days query int false "window in days, default 7"
// @Success 200 {array} domain.TimeseriesRow "ok"
// @Failure 400 {object} errors.Wire "invalid days"
// @Router /stats/timeseries [get]
func (h *handlers) timeseries(r *stdhttp.Request) (any, error) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, perrs.Newf(perrs.ErrorCodeValidation, "days must be a positive integer")
		}
		days = n
	}
	return h.svc.Timeseries(r.Context(), days)
}

// swagger:route GET /stats/providers Stats statsProviders
// @Summary Per-provider usage aggregates
// @Tags Stats
// @Produce json
// @Success 200 {array} domain.ProviderRow "ok"
// @Router /stats/providers [get]
func (h *handlers) providers(r *stdhttp.Request) (any, error) {
	return h.svc.Providers(r.Context())
}
