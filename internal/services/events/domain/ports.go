package domain

import (
	"context"

	"veracity/internal/core/fingerprint"
)

// RecorderPort accepts analytics events.
// Record never blocks the caller; events may be dropped under pressure
type RecorderPort interface {
	Record(ev Event)
}

// FlusherPort runs the background flush loop until the context ends
type FlusherPort interface {
	Run(ctx context.Context) error
}

// ReaderPort serves analytics reads; all methods return empty results when
// the analytics store is disabled
type ReaderPort interface {
	History(ctx context.Context, fp fingerprint.Fingerprint, limit int) ([]HistoryRow, error)
	Timeseries(ctx context.Context, days int) ([]DayCount, error)
	Providers(ctx context.Context) ([]ProviderAgg, error)
}
