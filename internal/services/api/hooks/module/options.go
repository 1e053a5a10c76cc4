package module

import (
	"veracity/internal/platform/config"
)

// Options carries webhook credentials read from the environment
type Options struct {
	// WhatsAppVerifyToken answers the subscription handshake.
	// Empty rejects every handshake
	WhatsAppVerifyToken string

	// BearerToken authenticates message delivery.
	// Empty rejects every delivery
	BearerToken string
}

// FromConfig reads hook settings from the HOOKS_ config view
func FromConfig(cfg config.Conf) Options {
	hk := cfg.Prefix("HOOKS_")
	return Options{
		WhatsAppVerifyToken: hk.MayString("WHATSAPP_VERIFY_TOKEN", ""),
		BearerToken:         hk.MayString("BEARER_TOKEN", ""),
	}
}
