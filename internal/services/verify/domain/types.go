// Package domain defines the types and interfaces for the verify service
package domain

import (
	"veracity/internal/core/content"
	recdom "veracity/internal/services/records/domain"
)

// Input is one verification submission, already shape-validated at the edge.
// Exactly one of Content or ContentURL carries the payload
type Input struct {
	ContentType content.Type

	// Content is inline text, or base64 bytes for binary media
	Content string

	// ContentURL references remote content instead of carrying it
	ContentURL string

	SourcePlatform string
	SourceLocation string

	// Force skips the cache and re-runs every adapter
	Force bool
}

// WarningNotPersisted marks an outcome whose record could not be stored
const WarningNotPersisted = "record_not_persisted"

// FailureNote records one adapter that could not contribute
type FailureNote struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// Outcome is the full result of one verification request
type Outcome struct {
	Record       recdom.Record
	CacheHit     bool
	Undetermined bool
	ProcessingMs int64
	Notes        []FailureNote
	Warnings     []string
}

// BatchItem pairs one batch entry with its outcome or error.
// Index i of the result slice always answers index i of the input slice
type BatchItem struct {
	Outcome *Outcome
	Err     error
}
