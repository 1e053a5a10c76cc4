// Package service provides the records gateway implementation
package service

import (
	"context"
	"encoding/json"
	"time"

	"veracity/internal/core/fingerprint"
	"veracity/internal/modkit/repokit"
	perrs "veracity/internal/platform/errors"
	"veracity/internal/platform/logger"
	"veracity/internal/platform/store"
	"veracity/internal/services/records/domain"
	"veracity/internal/services/records/repo"
)

// Config for the records gateway
type Config struct {
	// CacheTTL bounds how long a cached record may serve reads; <=0 means 1h
	CacheTTL time.Duration
}

// Service implements domain.GatewayPort as a redis read-through over Postgres.
// Postgres is the source of truth; the cache only shortcuts reads, so every
// cache failure degrades to a miss and every write lands in Postgres first
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cache  store.Cache // nil disables caching
	Cfg    Config

	log *logger.Logger
}

// New constructs a new records gateway
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cache store.Cache, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &Service{
		DB: db, Binder: b, Cache: cache, Cfg: cfg,
		log: logger.Named("records"),
	}
}

func cacheKey(fp fingerprint.Fingerprint) string { return "verify:rec:" + fp.String() }

// Get implements domain.GatewayPort. A miss is (nil, nil)
func (s *Service) Get(ctx context.Context, fp fingerprint.Fingerprint) (*domain.Record, error) {
	if rec := s.cacheGet(ctx, fp); rec != nil {
		return rec, nil
	}

	var rec *domain.Record
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rec, err = s.Binder.Bind(q).Find(ctx, fp)
		return err
	})
	if err != nil {
		return nil, perrs.FromPostgres(err, "record lookup")
	}
	if rec != nil {
		s.cacheSet(ctx, *rec)
	}
	return rec, nil
}

// Put implements domain.GatewayPort. The upsert must land; the cache set is
// best effort so a dead redis never loses a verdict
func (s *Service) Put(ctx context.Context, rec domain.Record) error {
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.Binder.Bind(q).Upsert(ctx, rec)
	})
	if err != nil {
		return perrs.FromPostgresWithField(err, "record upsert")
	}
	s.cacheSet(ctx, rec)
	return nil
}

func (s *Service) cacheGet(ctx context.Context, fp fingerprint.Fingerprint) *domain.Record {
	if s.Cache == nil {
		return nil
	}
	b, found, err := s.Cache.Get(ctx, cacheKey(fp))
	if err != nil {
		s.log.Warn().Err(err).Str("fingerprint", fp.String()).Msg("record cache read failed")
		return nil
	}
	if !found {
		return nil
	}
	var rec domain.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		// stale or corrupt entry; drop it and fall through to Postgres
		s.log.Warn().Err(err).Str("fingerprint", fp.String()).Msg("record cache entry corrupt")
		_ = s.Cache.Del(ctx, cacheKey(fp))
		return nil
	}
	return &rec
}

func (s *Service) cacheSet(ctx context.Context, rec domain.Record) {
	if s.Cache == nil {
		return
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(rec.Fingerprint), b, s.Cfg.CacheTTL); err != nil {
		s.log.Warn().Err(err).Str("fingerprint", rec.Fingerprint.String()).Msg("record cache write failed")
	}
}
