// Package service adapts the verification pipeline to the API surface
package service

import (
	"context"
	"time"

	"veracity/internal/core/content"
	"veracity/internal/core/fingerprint"
	perrs "veracity/internal/platform/errors"
	"veracity/internal/services/api/verify/domain"
	evdom "veracity/internal/services/events/domain"
	recdom "veracity/internal/services/records/domain"
	verifydom "veracity/internal/services/verify/domain"
)

// Service defines the verify API contract
type Service interface {
	domain.ServicePort
}

// Svc implements the verify API service
type Svc struct {
	verifier verifydom.VerifierPort
	records  recdom.GatewayPort
	reader   evdom.ReaderPort
}

// New constructs a verify API service
func New(verifier verifydom.VerifierPort, records recdom.GatewayPort, reader evdom.ReaderPort) *Svc {
	if verifier == nil {
		panic("verify.Service requires a non nil VerifierPort")
	}
	if records == nil {
		panic("verify.Service requires a non nil records GatewayPort")
	}
	if reader == nil {
		panic("verify.Service requires a non nil events ReaderPort")
	}
	return &Svc{verifier: verifier, records: records, reader: reader}
}

// Verify runs one submission through the pipeline
func (s *Svc) Verify(ctx context.Context, in domain.VerifyInput) (domain.VerifyResult, error) {
	out, err := s.verifier.Verify(ctx, toInput(in))
	if err != nil {
		return domain.VerifyResult{}, err
	}
	return fromOutcome(out), nil
}

// VerifyBatch runs up to the configured batch cap, order preserved
func (s *Svc) VerifyBatch(ctx context.Context, in domain.BatchInput) (domain.BatchResult, error) {
	ins := make([]verifydom.Input, len(in.Items))
	for i, item := range in.Items {
		ins[i] = toInput(item)
	}

	items, err := s.verifier.VerifyBatch(ctx, ins)
	if err != nil {
		return domain.BatchResult{}, err
	}

	results := make([]domain.BatchItemResult, len(items))
	for i, it := range items {
		results[i] = domain.BatchItemResult{Index: i}
		if it.Err != nil {
			w := perrs.WireFrom(it.Err)
			results[i].Error = &w
			continue
		}
		r := fromOutcome(*it.Outcome)
		results[i].Result = &r
	}
	return domain.BatchResult{Results: results}, nil
}

// Lookup returns the stored record for a fingerprint
func (s *Svc) Lookup(ctx context.Context, raw string) (domain.RecordResponse, error) {
	fp, err := fingerprint.Parse(raw)
	if err != nil {
		return domain.RecordResponse{}, perrs.Wrap(err, perrs.ErrorCodeValidation, "malformed fingerprint")
	}

	rec, err := s.records.Get(ctx, fp)
	if err != nil {
		return domain.RecordResponse{}, perrs.Wrap(err, perrs.ErrorCodeUnavailable, "record store unavailable")
	}
	if rec == nil {
		return domain.RecordResponse{}, perrs.NotFoundf("no verification record for %s", fp)
	}
	return fromRecord(*rec), nil
}

// History returns recent verifications of a fingerprint, newest first
func (s *Svc) History(ctx context.Context, raw string, limit int) ([]domain.HistoryRow, error) {
	fp, err := fingerprint.Parse(raw)
	if err != nil {
		return nil, perrs.Wrap(err, perrs.ErrorCodeValidation, "malformed fingerprint")
	}

	rows, err := s.reader.History(ctx, fp, limit)
	if err != nil {
		return nil, perrs.Wrap(err, perrs.ErrorCodeUnavailable, "analytics store unavailable")
	}

	out := make([]domain.HistoryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.HistoryRow{
			At:            r.At.UTC().Format(time.RFC3339),
			Risk:          r.Risk.String(),
			Score:         r.Score,
			CacheHit:      r.CacheHit,
			Undetermined:  r.Undetermined,
			ProviderCount: r.ProviderCount,
			ProcessingMs:  r.ProcessingMs,
		})
	}
	return out, nil
}

func toInput(in domain.VerifyInput) verifydom.Input {
	return verifydom.Input{
		ContentType:    content.Type(in.ContentType),
		Content:        in.Content,
		ContentURL:     in.ContentURL,
		SourcePlatform: in.SourcePlatform,
		SourceLocation: in.SourceLocation,
		Force:          in.Force,
	}
}

func fromOutcome(out verifydom.Outcome) domain.VerifyResult {
	res := domain.VerifyResult{
		Fingerprint:    out.Record.Fingerprint.String(),
		ContentType:    out.Record.ContentType.String(),
		Score:          out.Record.Score,
		Risk:           out.Record.Risk.String(),
		Signals:        out.Record.Signals,
		ProviderCount:  out.Record.ProviderCount,
		Lang:           out.Record.Lang,
		SourcePlatform: out.Record.SourcePlatform,
		SourceLocation: out.Record.SourceLocation,
		CacheHit:       out.CacheHit,
		Undetermined:   out.Undetermined,
		ProcessingMs:   out.ProcessingMs,
		Warnings:       out.Warnings,
	}
	for _, n := range out.Notes {
		res.ProviderFailures = append(res.ProviderFailures, domain.ProviderFailure{
			Provider: n.Provider,
			Reason:   n.Reason,
		})
	}
	return res
}

func fromRecord(rec recdom.Record) domain.RecordResponse {
	return domain.RecordResponse{
		Fingerprint:    rec.Fingerprint.String(),
		ContentType:    rec.ContentType.String(),
		Score:          rec.Score,
		Risk:           rec.Risk.String(),
		Signals:        rec.Signals,
		ProviderCount:  rec.ProviderCount,
		Lang:           rec.Lang,
		SourcePlatform: rec.SourcePlatform,
		SourceLocation: rec.SourceLocation,
		ProcessingMs:   rec.ProcessingMs,
		CreatedAt:      rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
