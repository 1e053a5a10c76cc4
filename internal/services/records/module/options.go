package module

import (
	"time"

	"veracity/internal/platform/config"
)

// Options holds configuration settings for the records module
type Options struct {
	CacheTTL time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	vf := cfg.Prefix("VERIFY_")
	return Options{
		CacheTTL: vf.MayDuration("CACHE_TTL", time.Hour),
	}
}
