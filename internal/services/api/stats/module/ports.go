package module

import (
	"context"

	"veracity/internal/services/api/stats/domain"
	statssvc "veracity/internal/services/api/stats/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptStatsPort struct{ svc statssvc.Service }

// Overview returns the record store rollup
func (a adaptStatsPort) Overview(ctx context.Context) (domain.OverviewResponse, error) {
	return a.svc.Overview(ctx)
}

// Timeseries returns per-day request volume for the last N days
func (a adaptStatsPort) Timeseries(ctx context.Context, days int) ([]domain.TimeseriesRow, error) {
	return a.svc.Timeseries(ctx, days)
}

// Providers returns per-provider usage aggregates
func (a adaptStatsPort) Providers(ctx context.Context) ([]domain.ProviderRow, error) {
	return a.svc.Providers(ctx)
}
