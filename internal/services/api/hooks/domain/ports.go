package domain

import "context"

// ServicePort handles inbound webhook messages
type ServicePort interface {
	// Receive verifies the message text and shapes a reply for the sender
	Receive(ctx context.Context, in WhatsAppMessage) (WhatsAppReply, error)
}
