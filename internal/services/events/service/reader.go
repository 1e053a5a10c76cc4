package service

import (
	"context"

	"veracity/internal/core/fingerprint"
	"veracity/internal/services/events/domain"
	"veracity/internal/services/events/repo"
)

// ReaderConfig for the events reader
type ReaderConfig struct {
	// HardLimit caps history page sizes; <=0 means 50
	HardLimit int
}

// Reader implements domain.ReaderPort
type Reader struct {
	Repo *repo.CH // nil means analytics is disabled
	Cfg  ReaderConfig
}

// NewReader constructs a reader; repo may be nil when analytics is off
func NewReader(r *repo.CH, cfg ReaderConfig) *Reader {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 50
	}
	return &Reader{Repo: r, Cfg: cfg}
}

// History implements domain.ReaderPort
func (s *Reader) History(ctx context.Context, fp fingerprint.Fingerprint, limit int) ([]domain.HistoryRow, error) {
	if s.Repo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}
	return s.Repo.History(ctx, fp, limit)
}

// Timeseries implements domain.ReaderPort
func (s *Reader) Timeseries(ctx context.Context, days int) ([]domain.DayCount, error) {
	if s.Repo == nil {
		return nil, nil
	}
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}
	return s.Repo.Timeseries(ctx, days)
}

// Providers implements domain.ReaderPort
func (s *Reader) Providers(ctx context.Context) ([]domain.ProviderAgg, error) {
	if s.Repo == nil {
		return nil, nil
	}
	return s.Repo.Providers(ctx)
}
