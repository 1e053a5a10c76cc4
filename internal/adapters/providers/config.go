package providers

import (
	"strings"
	"time"

	"veracity/internal/platform/config"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = 500 * time.Millisecond
)

// Config carries everything adapter factories may need.
// Flat on purpose: each factory picks the fields it cares about and rejects
// construction when its own are missing
type Config struct {
	// Enabled lists adapter names to construct, in dispatch order
	Enabled []string

	TextModelURL string
	TextModelKey string
	VisionURL    string
	VisionKey    string
	VideoURL     string
	VideoKey     string
	SpeechURL    string
	SpeechKey    string

	// HTTP behavior shared by the remote adapters
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

// FromConf reads adapter settings from a PROVIDER_-prefixed view
func FromConf(cfg config.Conf) Config {
	enabled := cfg.MayCSV("ENABLED", []string{"heuristic"})
	for i, name := range enabled {
		enabled[i] = strings.ToLower(name)
	}
	return Config{
		Enabled:      enabled,
		TextModelURL: cfg.MayString("TEXTMODEL_URL", ""),
		TextModelKey: cfg.MayString("TEXTMODEL_KEY", ""),
		VisionURL:    cfg.MayString("VISION_URL", ""),
		VisionKey:    cfg.MayString("VISION_KEY", ""),
		VideoURL:     cfg.MayString("VIDEO_URL", ""),
		VideoKey:     cfg.MayString("VIDEO_KEY", ""),
		SpeechURL:    cfg.MayString("SPEECH_URL", ""),
		SpeechKey:    cfg.MayString("SPEECH_KEY", ""),
		Timeout:      cfg.MayDuration("HTTP_TIMEOUT", defaultTimeout),
		Retries:      cfg.MayInt("HTTP_RETRIES", defaultRetries),
		RetryDelay:   cfg.MayDuration("HTTP_RETRY_DELAY", defaultRetryDelay),
	}
}
