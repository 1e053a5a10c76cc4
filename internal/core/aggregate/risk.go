package aggregate

import (
	"fmt"
	"strings"
)

// RiskLevel buckets an authenticity score into an ordered category.
// Unknown is the sentinel for undetermined outcomes and sits outside the order
type RiskLevel string

// Risk buckets from least to most severe
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
	RiskUnknown  RiskLevel = "unknown"
)

// Levels lists the determined buckets in ascending severity
func Levels() []RiskLevel {
	return []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}
}

// Valid reports whether r names a known bucket, sentinel included
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical, RiskUnknown:
		return true
	}
	return false
}

// Rank orders determined buckets ascending; Unknown ranks below all
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	}
	return 0
}

// String returns the wire form
func (r RiskLevel) String() string { return string(r) }

// ParseRisk normalizes and validates a wire value
func ParseRisk(s string) (RiskLevel, error) {
	r := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown risk level %q", s)
	}
	return r, nil
}

// Thresholds are the score cutpoints mapping authenticity to risk.
// Scores run 0..1 with 1 fully authentic, so lower scores mean more risk.
// The three cutpoints must be strictly ascending within (0,1)
type Thresholds struct {
	CriticalMax float64 // score <= CriticalMax -> critical
	HighMax     float64 // else score <= HighMax -> high
	MediumMax   float64 // else score <= MediumMax -> medium, above -> low
}

// DefaultThresholds returns the documented cutpoints
func DefaultThresholds() Thresholds {
	return Thresholds{CriticalMax: 0.2, HighMax: 0.4, MediumMax: 0.6}
}

// Validate rejects cutpoints that are out of range or not ascending
func (t Thresholds) Validate() error {
	if t.CriticalMax <= 0 || t.MediumMax >= 1 {
		return fmt.Errorf("thresholds must sit inside (0,1): %+v", t)
	}
	if !(t.CriticalMax < t.HighMax && t.HighMax < t.MediumMax) {
		return fmt.Errorf("thresholds must ascend critical < high < medium: %+v", t)
	}
	return nil
}

// Risk buckets a score using the cutpoints
func (t Thresholds) Risk(score float64) RiskLevel {
	switch {
	case score <= t.CriticalMax:
		return RiskCritical
	case score <= t.HighMax:
		return RiskHigh
	case score <= t.MediumMax:
		return RiskMedium
	}
	return RiskLow
}
