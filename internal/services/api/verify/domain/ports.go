package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Verify(ctx context.Context, in VerifyInput) (VerifyResult, error)
	VerifyBatch(ctx context.Context, in BatchInput) (BatchResult, error)

	// Lookup returns the stored record for a fingerprint, not found when absent
	Lookup(ctx context.Context, fingerprint string) (RecordResponse, error)

	// History returns recent verifications of a fingerprint, newest first
	History(ctx context.Context, fingerprint string, limit int) ([]HistoryRow, error)
}
