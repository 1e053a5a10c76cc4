// Package service implements the verification pipeline
package service

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"veracity/internal/adapters/providers"
	"veracity/internal/core/aggregate"
	"veracity/internal/core/content"
	"veracity/internal/core/fingerprint"
	"veracity/internal/core/langhint"
	perrs "veracity/internal/platform/errors"
	"veracity/internal/platform/logger"
	evdom "veracity/internal/services/events/domain"
	recdom "veracity/internal/services/records/domain"
	dom "veracity/internal/services/verify/domain"
)

// Config for the verify service
type Config struct {
	// AdapterTimeout bounds each provider call; <=0 means 10s
	AdapterTimeout time.Duration

	// RequestDeadline bounds dispatch plus aggregation; <=0 means 25s
	RequestDeadline time.Duration

	// BatchMax caps VerifyBatch input size; <=0 means 10
	BatchMax int

	// BatchWorkers bounds batch concurrency; <=0 means 4
	BatchWorkers int

	// Thresholds are the risk cutpoints; zero value means defaults
	Thresholds aggregate.Thresholds
}

// Service implements domain.VerifierPort
type Service struct {
	Adapters []providers.Adapter
	Records  recdom.GatewayPort
	Events   evdom.RecorderPort
	Cfg      Config

	log *logger.Logger
	now func() time.Time
}

// New constructs a new verify service
func New(adapters []providers.Adapter, records recdom.GatewayPort, events evdom.RecorderPort, cfg Config) (*Service, error) {
	if cfg.AdapterTimeout <= 0 {
		cfg.AdapterTimeout = 10 * time.Second
	}
	if cfg.RequestDeadline <= 0 {
		cfg.RequestDeadline = 25 * time.Second
	}
	if cfg.BatchMax <= 0 {
		cfg.BatchMax = 10
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = 4
	}
	if cfg.Thresholds == (aggregate.Thresholds{}) {
		cfg.Thresholds = aggregate.DefaultThresholds()
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		Adapters: adapters,
		Records:  records,
		Events:   events,
		Cfg:      cfg,
		log:      logger.Named("verify"),
		now:      time.Now,
	}, nil
}

// Verify implements domain.VerifierPort
func (s *Service) Verify(ctx context.Context, in dom.Input) (dom.Outcome, error) {
	started := s.now()

	fp, payload, err := s.admit(in)
	if err != nil {
		return dom.Outcome{}, err
	}

	lang := ""
	if in.ContentType == content.TypeText && in.Content != "" {
		_, lang = langhint.Detect(in.Content)
	}

	if !in.Force {
		if rec, hit := s.cacheLookup(ctx, fp); hit {
			out := dom.Outcome{
				Record:       *rec,
				CacheHit:     true,
				ProcessingMs: s.since(started),
			}
			s.emit(in, out, nil, nil)
			return out, nil
		}
	}

	selected := providers.SelectFor(s.Adapters, in.ContentType)
	findings, notes := s.dispatch(ctx, selected, providers.Request{
		Fingerprint: fp,
		Type:        in.ContentType,
		Text:        payload.text,
		Media:       payload.media,
		MediaURL:    in.ContentURL,
		Lang:        lang,
	})

	verdict := aggregate.Aggregate(findings, s.Cfg.Thresholds)

	rec := recdom.Record{
		Fingerprint:    fp,
		ContentType:    in.ContentType,
		Score:          verdict.Score,
		Risk:           verdict.Risk,
		Signals:        verdict.Signals,
		ProviderCount:  verdict.Providers,
		Lang:           lang,
		SourcePlatform: in.SourcePlatform,
		SourceLocation: in.SourceLocation,
		ProcessingMs:   s.since(started),
	}

	var warnings []string
	if verdict.Determined {
		if err := s.Records.Put(ctx, rec); err != nil {
			s.log.Warn().Err(err).Str("fingerprint", fp.String()).Msg("record write failed, serving unpersisted verdict")
			warnings = append(warnings, dom.WarningNotPersisted)
		}
	}

	out := dom.Outcome{
		Record:       rec,
		Undetermined: !verdict.Determined,
		ProcessingMs: rec.ProcessingMs,
		Notes:        notes,
		Warnings:     warnings,
	}
	s.emit(in, out, adapterNames(selected), failedNames(notes))
	return out, nil
}

// VerifyBatch implements domain.VerifierPort
func (s *Service) VerifyBatch(ctx context.Context, ins []dom.Input) ([]dom.BatchItem, error) {
	if len(ins) == 0 {
		return nil, perrs.New(perrs.ErrorCodeValidation, "batch is empty")
	}
	if len(ins) > s.Cfg.BatchMax {
		return nil, perrs.Newf(perrs.ErrorCodeValidation, "batch size %d exceeds limit %d", len(ins), s.Cfg.BatchMax)
	}

	out := make([]dom.BatchItem, len(ins))
	sem := make(chan struct{}, s.Cfg.BatchWorkers)
	var wg sync.WaitGroup

	for i := range ins {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			res, err := s.Verify(ctx, ins[i])
			if err != nil {
				out[i] = dom.BatchItem{Err: err}
				return
			}
			out[i] = dom.BatchItem{Outcome: &res}
		}(i)
	}
	wg.Wait()
	return out, nil
}

// EnabledProviders implements domain.InfoPort
func (s *Service) EnabledProviders() []string {
	return adapterNames(s.Adapters)
}

// payload separates the inline forms an input can carry
type payload struct {
	text  string
	media string
}

// admit validates the input and derives its fingerprint
func (s *Service) admit(in dom.Input) (fingerprint.Fingerprint, payload, error) {
	var p payload

	if !in.ContentType.Valid() {
		return "", p, perrs.Newf(perrs.ErrorCodeValidation, "unsupported content type %q", string(in.ContentType))
	}
	if in.Content == "" && in.ContentURL == "" {
		return "", p, perrs.New(perrs.ErrorCodeValidation, "content or content_url is required")
	}
	if in.Content != "" && in.ContentURL != "" {
		return "", p, perrs.New(perrs.ErrorCodeValidation, "content and content_url are mutually exclusive")
	}

	if in.ContentURL != "" {
		fp, err := fingerprint.URL(in.ContentURL)
		if err != nil {
			return "", p, perrs.Wrap(err, perrs.ErrorCodeValidation, "content_url is not a valid URL")
		}
		return fp, p, nil
	}

	if in.ContentType == content.TypeText {
		p.text = in.Content
		return fingerprint.Text(in.Content), p, nil
	}

	raw, err := base64.StdEncoding.DecodeString(in.Content)
	if err != nil {
		return "", p, perrs.Wrap(err, perrs.ErrorCodeValidation, "content is not valid base64")
	}
	p.media = in.Content
	return fingerprint.Bytes(raw), p, nil
}

// cacheLookup asks the gateway for a stored record; any failure reads as a miss
func (s *Service) cacheLookup(ctx context.Context, fp fingerprint.Fingerprint) (*recdom.Record, bool) {
	rec, err := s.Records.Get(ctx, fp)
	if err != nil {
		s.log.Warn().Err(err).Str("fingerprint", fp.String()).Msg("record lookup failed, treating as miss")
		return nil, false
	}
	return rec, rec != nil
}

// dispatch fans out to every adapter concurrently and waits for all of them.
// Results stay indexed so a slow adapter cannot reorder findings
func (s *Service) dispatch(ctx context.Context, selected []providers.Adapter, req providers.Request) ([]aggregate.Finding, []dom.FailureNote) {
	if len(selected) == 0 {
		return nil, nil
	}

	dctx, cancel := context.WithTimeout(ctx, s.Cfg.RequestDeadline)
	defer cancel()

	type slot struct {
		finding aggregate.Finding
		err     error
	}
	slots := make([]slot, len(selected))

	var wg sync.WaitGroup
	for i, ad := range selected {
		wg.Add(1)
		go func(i int, ad providers.Adapter) {
			defer wg.Done()
			actx, acancel := context.WithTimeout(dctx, s.Cfg.AdapterTimeout)
			defer acancel()

			callStart := time.Now()
			f, err := ad.Analyze(actx, req)
			if err != nil {
				slots[i] = slot{err: providers.Classify(ad.Name(), err)}
				return
			}
			f.Latency = time.Since(callStart)
			slots[i] = slot{finding: f}
		}(i, ad)
	}
	wg.Wait()

	findings := make([]aggregate.Finding, 0, len(selected))
	var notes []dom.FailureNote
	for i, sl := range slots {
		if sl.err != nil {
			notes = append(notes, dom.FailureNote{
				Provider: selected[i].Name(),
				Reason:   string(providers.ReasonOf(sl.err)),
			})
			continue
		}
		findings = append(findings, sl.finding)
	}
	return findings, notes
}

// emit records the analytics event; failures to record never surface
func (s *Service) emit(in dom.Input, out dom.Outcome, used, failed []string) {
	if s.Events == nil {
		return
	}
	s.Events.Record(evdom.Event{
		Fingerprint:     out.Record.Fingerprint,
		ContentType:     in.ContentType,
		Risk:            out.Record.Risk,
		Score:           out.Record.Score,
		CacheHit:        out.CacheHit,
		Undetermined:    out.Undetermined,
		Providers:       used,
		FailedProviders: failed,
		ProcessingMs:    out.ProcessingMs,
		Lang:            out.Record.Lang,
		SourcePlatform:  in.SourcePlatform,
	})
}

func (s *Service) since(started time.Time) int64 {
	return s.now().Sub(started).Milliseconds()
}

func adapterNames(ads []providers.Adapter) []string {
	if len(ads) == 0 {
		return nil
	}
	out := make([]string, len(ads))
	for i, ad := range ads {
		out[i] = ad.Name()
	}
	return out
}

func failedNames(notes []dom.FailureNote) []string {
	if len(notes) == 0 {
		return nil
	}
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Provider
	}
	return out
}
