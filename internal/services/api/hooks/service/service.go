// Package service contains hooks workflows
package service

import (
	"context"
	"fmt"
	"strings"

	"veracity/internal/core/content"
	"veracity/internal/modkit/scope"
	"veracity/internal/services/api/hooks/domain"
	verifydom "veracity/internal/services/verify/domain"
)

// Service defines the hooks service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the hooks service
type Svc struct {
	verifier verifydom.VerifierPort
}

// New constructs a hooks service
func New(verifier verifydom.VerifierPort) *Svc {
	if verifier == nil {
		panic("hooks.Service requires a non nil VerifierPort")
	}
	return &Svc{verifier: verifier}
}

// Receive runs the forwarded text through verification and shapes a reply
func (s *Svc) Receive(ctx context.Context, in domain.WhatsAppMessage) (domain.WhatsAppReply, error) {
	ctx = scope.With(ctx, map[string]string{
		"channel": "whatsapp",
		"sender":  in.From,
	})

	out, err := s.verifier.Verify(ctx, verifydom.Input{
		ContentType:    content.TypeText,
		Content:        in.Text,
		SourcePlatform: "whatsapp",
		SourceLocation: in.From,
	})
	if err != nil {
		return domain.WhatsAppReply{}, err
	}

	return domain.WhatsAppReply{
		MessageID:    in.MessageID,
		Fingerprint:  out.Record.Fingerprint.String(),
		Risk:         string(out.Record.Risk),
		Score:        out.Record.Score,
		CacheHit:     out.CacheHit,
		Undetermined: out.Undetermined,
		Summary:      summarize(out),
	}, nil
}

// summarize renders a one line human answer for the chat bridge
func summarize(out verifydom.Outcome) string {
	if out.Undetermined {
		return "verification inconclusive: no analysis available for this content"
	}
	b := fmt.Sprintf("risk %s (score %.2f)", out.Record.Risk, out.Record.Score)
	if len(out.Record.Signals) > 0 {
		b += ": " + strings.Join(out.Record.Signals, ", ")
	}
	return b
}
