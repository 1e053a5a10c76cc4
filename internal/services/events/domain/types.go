// Package domain defines the types and interfaces for the events service
package domain

import (
	"time"

	"veracity/internal/core/aggregate"
	"veracity/internal/core/content"
	"veracity/internal/core/fingerprint"
)

// Event is one analytics row per verification request, cache hits included
type Event struct {
	// EventID uniquely identifies the row; the recorder assigns one when empty
	EventID string

	Fingerprint  fingerprint.Fingerprint
	ContentType  content.Type
	Risk         aggregate.RiskLevel
	Score        float64
	CacheHit     bool
	Undetermined bool

	// Providers lists the adapters consulted; empty on cache hits
	Providers []string

	// FailedProviders lists adapters whose call failed this request
	FailedProviders []string

	ProcessingMs   int64
	Lang           string
	SourcePlatform string
	CreatedAt      time.Time
}

// HistoryRow is one past verification of a fingerprint
type HistoryRow struct {
	At            time.Time
	Risk          aggregate.RiskLevel
	Score         float64
	CacheHit      bool
	Undetermined  bool
	ProviderCount int
	ProcessingMs  int64
}

// DayCount aggregates request volume for one day
type DayCount struct {
	Day          time.Time
	Total        int64
	Undetermined int64
	CacheHits    int64
}

// ProviderAgg aggregates per-provider usage across all events
type ProviderAgg struct {
	Provider string
	Requests int64
	Failures int64
	AvgMs    float64
}
