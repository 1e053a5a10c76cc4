package module

import (
	"time"

	"veracity/internal/core/aggregate"
	"veracity/internal/platform/config"
)

// Options holds configuration settings for the verify module
type Options struct {
	AdapterTimeout  time.Duration
	RequestDeadline time.Duration
	BatchMax        int
	BatchWorkers    int
	Thresholds      aggregate.Thresholds
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	vf := cfg.Prefix("VERIFY_")
	def := aggregate.DefaultThresholds()
	return Options{
		AdapterTimeout:  vf.MayDuration("ADAPTER_TIMEOUT", 10*time.Second),
		RequestDeadline: vf.MayDuration("REQUEST_DEADLINE", 25*time.Second),
		BatchMax:        vf.MayInt("BATCH_MAX", 10),
		BatchWorkers:    vf.MayInt("BATCH_WORKERS", 4),
		Thresholds: aggregate.Thresholds{
			CriticalMax: vf.MayFloat64("RISK_CRITICAL_MAX", def.CriticalMax),
			HighMax:     vf.MayFloat64("RISK_HIGH_MAX", def.HighMax),
			MediumMax:   vf.MayFloat64("RISK_MEDIUM_MAX", def.MediumMax),
		},
	}
}
