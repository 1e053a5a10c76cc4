// Package domain holds DTOs for verify http and service contracts
package domain

import (
	perrs "veracity/internal/platform/errors"
)

// VerifyInput is one inbound verification submission
// exactly one of content and content_url must be set; the service enforces it
type VerifyInput struct {
	ContentType    string `json:"content_type" validate:"required,oneof=text image video audio" example:"text"`
	Content        string `json:"content,omitempty" example:"BREAKING: shocking viral hoax"`
	ContentURL     string `json:"content_url,omitempty" validate:"omitempty,max=2048" example:"https://example.com/story"`
	SourcePlatform string `json:"source_platform,omitempty" validate:"omitempty,max=64" example:"webapp"`
	SourceLocation string `json:"source_location,omitempty" validate:"omitempty,max=128" example:"feed"`
	Force          bool   `json:"force,omitempty" example:"false"`
}

// ProviderFailure reports one adapter that could not contribute
type ProviderFailure struct {
	Provider string `json:"provider" example:"textmodel"`
	Reason   string `json:"reason" example:"timeout"`
}

// VerifyResult is the response payload for a verification
type VerifyResult struct {
	Fingerprint    string   `json:"fingerprint" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
	ContentType    string   `json:"content_type" example:"text"`
	Score          float64  `json:"score" example:"0.3"`
	Risk           string   `json:"risk" example:"high"`
	Signals        []string `json:"signals" example:"sensational,urgency"`
	ProviderCount  int      `json:"provider_count" example:"2"`
	Lang           string   `json:"lang,omitempty" example:"en"`
	SourcePlatform string   `json:"source_platform,omitempty" example:"webapp"`
	SourceLocation string   `json:"source_location,omitempty" example:"feed"`
	CacheHit       bool     `json:"cache_hit" example:"false"`
	Undetermined   bool     `json:"undetermined,omitempty" example:"false"`
	ProcessingMs   int64    `json:"processing_ms" example:"12"`

	ProviderFailures []ProviderFailure `json:"provider_failures,omitempty"`
	Warnings         []string          `json:"warnings,omitempty" example:"record_not_persisted"`
}

// BatchInput is the batch verification payload
type BatchInput struct {
	Items []VerifyInput `json:"items" validate:"required,min=1,dive"`
}

// BatchItemResult is one slot of a batch response; Index answers the same
// slot of the request items
type BatchItemResult struct {
	Index  int           `json:"index" example:"0"`
	Result *VerifyResult `json:"result,omitempty"`
	Error  *perrs.Wire   `json:"error,omitempty"`
}

// BatchResult is the batch response payload
type BatchResult struct {
	Results []BatchItemResult `json:"results"`
}

// RecordResponse is a stored verification record
type RecordResponse struct {
	Fingerprint    string   `json:"fingerprint" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
	ContentType    string   `json:"content_type" example:"text"`
	Score          float64  `json:"score" example:"0.9"`
	Risk           string   `json:"risk" example:"low"`
	Signals        []string `json:"signals"`
	ProviderCount  int      `json:"provider_count" example:"1"`
	Lang           string   `json:"lang,omitempty" example:"en"`
	SourcePlatform string   `json:"source_platform,omitempty" example:"webapp"`
	SourceLocation string   `json:"source_location,omitempty" example:"feed"`
	ProcessingMs   int64    `json:"processing_ms" example:"12"`
	CreatedAt      string   `json:"created_at" example:"2025-09-03T13:00:00Z"`
	UpdatedAt      string   `json:"updated_at" example:"2025-09-03T13:00:00Z"`
}

// HistoryRow is one past verification of a fingerprint
type HistoryRow struct {
	At            string  `json:"at" example:"2025-09-03T13:00:00Z"`
	Risk          string  `json:"risk" example:"low"`
	Score         float64 `json:"score" example:"0.9"`
	CacheHit      bool    `json:"cache_hit" example:"true"`
	Undetermined  bool    `json:"undetermined,omitempty" example:"false"`
	ProviderCount int     `json:"provider_count" example:"1"`
	ProcessingMs  int64   `json:"processing_ms" example:"2"`
}
