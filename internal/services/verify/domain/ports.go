package domain

import (
	"context"

	evdom "veracity/internal/services/events/domain"
	recdom "veracity/internal/services/records/domain"
)

// VerifierPort runs the verification pipeline
type VerifierPort interface {
	Verify(ctx context.Context, in Input) (Outcome, error)

	// VerifyBatch verifies up to the configured batch cap.
	// The returned slice is index-aligned with the inputs; item failures land
	// in their slot, only batch-level validation fails the call
	VerifyBatch(ctx context.Context, ins []Input) ([]BatchItem, error)
}

// InfoPort reports the analysis surface this deployment runs with
type InfoPort interface {
	// EnabledProviders returns the configured adapter names in dispatch order
	EnabledProviders() []string
}

// Ports are dependencies injected into the verify module
type Ports struct {
	Records recdom.GatewayPort // required
	Events  evdom.RecorderPort // optional, nil disables analytics
}
