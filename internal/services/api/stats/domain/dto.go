// Package domain holds DTOs for stats http and service contracts
package domain

// RiskBucket is one slice of the risk breakdown
type RiskBucket struct {
	Risk  string `json:"risk" example:"high"`
	Count int64  `json:"count" example:"12"`
}

// OverviewResponse summarizes the stored verification records
type OverviewResponse struct {
	TotalRecords    int64        `json:"total_records" example:"420"`
	RiskBreakdown   []RiskBucket `json:"risk_breakdown"`
	AvgScore        float64      `json:"avg_score" example:"0.71"`
	AvgProcessingMs float64      `json:"avg_processing_ms" example:"38.5"`
}

// TimeseriesRow is one day of request volume
type TimeseriesRow struct {
	Day          string `json:"day" example:"2025-08-01"`
	Total        int64  `json:"total" example:"120"`
	Undetermined int64  `json:"undetermined" example:"3"`
	CacheHits    int64  `json:"cache_hits" example:"40"`
}

// ProviderRow is one provider's aggregate usage
type ProviderRow struct {
	Provider string  `json:"provider" example:"heuristic"`
	Requests int64   `json:"requests" example:"300"`
	Failures int64   `json:"failures" example:"4"`
	AvgMs    float64 `json:"avg_ms" example:"120.4"`
}
