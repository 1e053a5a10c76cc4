// Package service contains stats workflows
package service

import (
	"context"

	"veracity/internal/modkit/repokit"
	"veracity/internal/services/api/stats/domain"
	"veracity/internal/services/api/stats/repo"
	evdom "veracity/internal/services/events/domain"
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	reader evdom.ReaderPort
}

// New constructs a stats service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], reader evdom.ReaderPort) *Svc {
	if db == nil {
		panic("stats.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("stats.Service requires a non nil Repo binder")
	}
	if reader == nil {
		panic("stats.Service requires a non nil events ReaderPort")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, reader: reader}
}

// Overview returns the record store rollup: totals, risk breakdown and averages
func (s *Svc) Overview(ctx context.Context) (domain.OverviewResponse, error) {
	ov, err := s.Repo.Overview(ctx)
	if err != nil {
		return domain.OverviewResponse{}, err
	}
	out := domain.OverviewResponse{
		TotalRecords:    ov.Total,
		RiskBreakdown:   make([]domain.RiskBucket, 0, len(ov.ByRisk)),
		AvgScore:        ov.AvgScore,
		AvgProcessingMs: ov.AvgProcessingMs,
	}
	for _, rc := range ov.ByRisk {
		out.RiskBreakdown = append(out.RiskBreakdown, domain.RiskBucket{Risk: rc.Risk, Count: rc.Count})
	}
	return out, nil
}

// Timeseries returns per-day request volume for the last N days
func (s *Svc) Timeseries(ctx context.Context, days int) ([]domain.TimeseriesRow, error) {
	rows, err := s.reader.Timeseries(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TimeseriesRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.TimeseriesRow{
			Day:          r.Day.Format("2006-01-02"),
			Total:        r.Total,
			Undetermined: r.Undetermined,
			CacheHits:    r.CacheHits,
		})
	}
	return out, nil
}

// Providers returns per-provider usage aggregates across all events
func (s *Svc) Providers(ctx context.Context) ([]domain.ProviderRow, error) {
	rows, err := s.reader.Providers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProviderRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ProviderRow{
			Provider: r.Provider,
			Requests: r.Requests,
			Failures: r.Failures,
			AvgMs:    r.AvgMs,
		})
	}
	return out, nil
}
