// Package repo provides the records repository implementation.
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"veracity/internal/core/aggregate"
	"veracity/internal/core/content"
	"veracity/internal/core/fingerprint"
	"veracity/internal/modkit/repokit"
	"veracity/internal/services/records/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the records repository
type Storage interface {
	Upsert(ctx context.Context, rec domain.Record) error
	Find(ctx context.Context, fp fingerprint.Fingerprint) (*domain.Record, error)
}

// Upsert implements Storage
func (s *pg) Upsert(ctx context.Context, rec domain.Record) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO verification_records
			(fingerprint, content_type, score, risk, signals, provider_count,
			lang, source_platform, source_location, processing_ms, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, now(), now())
		ON CONFLICT (fingerprint) DO UPDATE SET
			content_type    = EXCLUDED.content_type,
			score           = EXCLUDED.score,
			risk            = EXCLUDED.risk,
			signals         = EXCLUDED.signals,
			provider_count  = EXCLUDED.provider_count,
			lang            = EXCLUDED.lang,
			source_platform = EXCLUDED.source_platform,
			source_location = EXCLUDED.source_location,
			processing_ms   = EXCLUDED.processing_ms,
			updated_at      = now()`,
		rec.Fingerprint.String(), rec.ContentType.String(), rec.Score, rec.Risk.String(),
		rec.Signals, rec.ProviderCount, rec.Lang, rec.SourcePlatform,
		rec.SourceLocation, rec.ProcessingMs,
	)
	return err
}

// Find implements Storage. A missing fingerprint is (nil, nil)
func (s *pg) Find(ctx context.Context, fp fingerprint.Fingerprint) (*domain.Record, error) {
	var (
		rec     domain.Record
		fpStr   string
		ctype   string
		riskStr string
		signals []string
	)
	err := s.q.QueryRow(ctx, `
		SELECT fingerprint, content_type, score, risk, signals, provider_count,
			lang, source_platform, source_location, processing_ms, created_at, updated_at
		FROM verification_records
		WHERE fingerprint = $1`,
		fp.String(),
	).Scan(
		&fpStr, &ctype, &rec.Score, &riskStr, &signals, &rec.ProviderCount,
		&rec.Lang, &rec.SourcePlatform, &rec.SourceLocation, &rec.ProcessingMs,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, stdsql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Fingerprint = fingerprint.Fingerprint(fpStr)
	rec.ContentType = content.Type(ctype)
	rec.Risk = aggregate.RiskLevel(riskStr)
	rec.Signals = signals
	return &rec, nil
}
