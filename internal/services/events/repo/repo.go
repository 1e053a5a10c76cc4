// Package repo provides the clickhouse repository for verification events.
package repo

import (
	"context"
	"time"

	"veracity/internal/core/aggregate"
	"veracity/internal/core/fingerprint"
	"veracity/internal/platform/store"
	"veracity/internal/services/events/domain"
)

// eventCols orders the insert columns for verification_events
var eventCols = []string{
	"event_id", "fingerprint", "content_type", "risk", "score", "cache_hit",
	"undetermined", "providers", "failed_providers", "provider_count",
	"processing_ms", "lang", "source_platform", "created_at",
}

// CH is the events repository over the columnar store
type CH struct {
	ch store.Clickhouse
}

// NewCH constructs the events repo
func NewCH(ch store.Clickhouse) *CH { return &CH{ch: ch} }

// InsertBatch writes events in one batch insert
func (r *CH) InsertBatch(ctx context.Context, evs []domain.Event) error {
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(evs))
	for _, ev := range evs {
		providers := ev.Providers
		if providers == nil {
			providers = []string{}
		}
		failed := ev.FailedProviders
		if failed == nil {
			failed = []string{}
		}
		rows = append(rows, []any{
			ev.EventID,
			ev.Fingerprint.String(),
			ev.ContentType.String(),
			ev.Risk.String(),
			ev.Score,
			ev.CacheHit,
			ev.Undetermined,
			providers,
			failed,
			int32(len(providers)),
			ev.ProcessingMs,
			ev.Lang,
			ev.SourcePlatform,
			ev.CreatedAt,
		})
	}
	return r.ch.Insert(ctx, "verification_events", eventCols, rows)
}

// History returns the most recent events for a fingerprint, newest first
func (r *CH) History(ctx context.Context, fp fingerprint.Fingerprint, limit int) ([]domain.HistoryRow, error) {
	const q = `
SELECT created_at, risk, score, cache_hit, undetermined, provider_count, processing_ms
FROM verification_events
WHERE fingerprint = ?
ORDER BY created_at DESC
LIMIT ?
`
	rows, err := r.ch.Query(ctx, q, fp.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HistoryRow
	for rows.Next() {
		var (
			hr    domain.HistoryRow
			risk  string
			count int32
		)
		if err := rows.Scan(&hr.At, &risk, &hr.Score, &hr.CacheHit, &hr.Undetermined, &count, &hr.ProcessingMs); err != nil {
			return nil, err
		}
		hr.Risk = aggregate.RiskLevel(risk)
		hr.ProviderCount = int(count)
		out = append(out, hr)
	}
	return out, rows.Err()
}

// Timeseries returns daily request counts over the trailing window
func (r *CH) Timeseries(ctx context.Context, days int) ([]domain.DayCount, error) {
	const q = `
SELECT toDate(created_at) AS day,
	count() AS total,
	countIf(undetermined) AS undetermined,
	countIf(cache_hit) AS cache_hits
FROM verification_events
WHERE created_at >= now() - toIntervalDay(?)
GROUP BY day
ORDER BY day ASC
`
	rows, err := r.ch.Query(ctx, q, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DayCount
	for rows.Next() {
		var (
			day                       time.Time
			total, undetermined, hits uint64
		)
		if err := rows.Scan(&day, &total, &undetermined, &hits); err != nil {
			return nil, err
		}
		out = append(out, domain.DayCount{
			Day:          day,
			Total:        int64(total),
			Undetermined: int64(undetermined),
			CacheHits:    int64(hits),
		})
	}
	return out, rows.Err()
}

// Providers aggregates usage, failures and request latency per adapter
func (r *CH) Providers(ctx context.Context) ([]domain.ProviderAgg, error) {
	const q = `
SELECT p AS provider,
	count() AS requests,
	countIf(has(failed_providers, p)) AS failures,
	avg(processing_ms) AS avg_ms
FROM verification_events
ARRAY JOIN providers AS p
GROUP BY p
ORDER BY p ASC
`
	rows, err := r.ch.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProviderAgg
	for rows.Next() {
		var (
			pa                 domain.ProviderAgg
			requests, failures uint64
		)
		if err := rows.Scan(&pa.Provider, &requests, &failures, &pa.AvgMs); err != nil {
			return nil, err
		}
		pa.Requests = int64(requests)
		pa.Failures = int64(failures)
		out = append(out, pa)
	}
	return out, rows.Err()
}
