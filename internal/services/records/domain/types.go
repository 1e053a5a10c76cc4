// Package domain defines the types and interfaces for the records service
package domain

import (
	"time"

	"veracity/internal/core/aggregate"
	"veracity/internal/core/content"
	"veracity/internal/core/fingerprint"
)

// Record is the persisted outcome of a verification.
// One row per fingerprint; a forced re-verification overwrites it
type Record struct {
	Fingerprint    fingerprint.Fingerprint
	ContentType    content.Type
	Score          float64
	Risk           aggregate.RiskLevel
	Signals        []string
	ProviderCount  int
	Lang           string
	SourcePlatform string
	SourceLocation string
	ProcessingMs   int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
