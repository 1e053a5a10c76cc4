package domain

import (
	"context"

	"veracity/internal/core/fingerprint"
)

// GatewayPort reads and writes verification records.
// Get reports a miss as (nil, nil); errors mean the backing store failed
type GatewayPort interface {
	Get(ctx context.Context, fp fingerprint.Fingerprint) (*Record, error)
	Put(ctx context.Context, rec Record) error
}
