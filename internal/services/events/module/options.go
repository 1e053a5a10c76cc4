package module

import (
	"time"

	"veracity/internal/platform/config"
)

// Options holds configuration settings for the events module
type Options struct {
	BufferSize int
	FlushEvery time.Duration
	FlushBatch int
	HardLimit  int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("VERIFY_EVENTS_")
	return Options{
		BufferSize: ef.MayInt("BUFFER", 1024),
		FlushEvery: ef.MayDuration("FLUSH_EVERY", 2*time.Second),
		FlushBatch: ef.MayInt("FLUSH_BATCH", 256),
		HardLimit:  ef.MayInt("HISTORY_LIMIT", 50),
	}
}
