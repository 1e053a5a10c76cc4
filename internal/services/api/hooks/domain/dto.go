// Package domain defines hooks DTOs and ports
package domain

// WhatsAppMessage is the minimal inbound webhook payload.
// No deeper message parsing happens here; the bridge forwards text as-is
type WhatsAppMessage struct {
	MessageID string `json:"message_id" validate:"required,max=128"`
	From      string `json:"from"       validate:"required,max=64"`
	Text      string `json:"text"       validate:"required"`
}

// WhatsAppReply is the verification summary sent back to the bridge
type WhatsAppReply struct {
	MessageID    string  `json:"message_id"`
	Fingerprint  string  `json:"fingerprint"`
	Risk         string  `json:"risk"`
	Score        float64 `json:"score"`
	CacheHit     bool    `json:"cache_hit"`
	Undetermined bool    `json:"undetermined"`
	Summary      string  `json:"summary"`
}
