package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Overview(ctx context.Context) (OverviewResponse, error)
	Timeseries(ctx context.Context, days int) ([]TimeseriesRow, error)
	Providers(ctx context.Context) ([]ProviderRow, error)
}
