// Package service provides the events recorder and reader implementations
package service

import (
	"context"
	"sync/atomic"
	"time"

	"veracity/internal/platform/logger"
	"veracity/internal/services/events/domain"
	"veracity/internal/services/events/repo"

	"github.com/google/uuid"
)

// Config for the events recorder
type Config struct {
	// BufferSize caps the in-flight queue; <=0 means 1024
	BufferSize int

	// FlushEvery bounds how long an event can sit unflushed; <=0 means 2s
	FlushEvery time.Duration

	// FlushBatch flushes early once this many events are pending; <=0 means 256
	FlushBatch int
}

// Recorder buffers events and flushes them to the analytics store in batches.
// Analytics never block or fail a verification: Record drops when the buffer
// is full and flush errors are logged, not returned
type Recorder struct {
	Repo *repo.CH // nil disables analytics
	Cfg  Config

	buf     chan domain.Event
	dropped atomic.Int64
	log     *logger.Logger
	now     func() time.Time
}

// NewRecorder constructs a recorder; repo may be nil when analytics is off
func NewRecorder(r *repo.CH, cfg Config) *Recorder {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 2 * time.Second
	}
	if cfg.FlushBatch <= 0 {
		cfg.FlushBatch = 256
	}
	return &Recorder{
		Repo: r,
		Cfg:  cfg,
		buf:  make(chan domain.Event, cfg.BufferSize),
		log:  logger.Named("events"),
		now:  time.Now,
	}
}

// Record implements domain.RecorderPort
func (r *Recorder) Record(ev domain.Event) {
	if r.Repo == nil {
		return
	}
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = r.now().UTC()
	}
	select {
	case r.buf <- ev:
	default:
		r.dropped.Add(1)
	}
}

// Run implements domain.FlusherPort. It drains what it can on shutdown
func (r *Recorder) Run(ctx context.Context) error {
	if r.Repo == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(r.Cfg.FlushEvery)
	defer ticker.Stop()

	pending := make([]domain.Event, 0, r.Cfg.FlushBatch)
	for {
		select {
		case <-ctx.Done():
			pending = r.drain(pending)
			if len(pending) > 0 {
				// the run context is gone; give the last batch its own deadline
				fctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				r.flush(fctx, pending)
				cancel()
			}
			return ctx.Err()
		case ev := <-r.buf:
			pending = append(pending, ev)
			if len(pending) >= r.Cfg.FlushBatch {
				r.flush(ctx, pending)
				pending = pending[:0]
			}
		case <-ticker.C:
			if len(pending) > 0 {
				r.flush(ctx, pending)
				pending = pending[:0]
			}
		}
	}
}

// drain empties the buffer without blocking
func (r *Recorder) drain(pending []domain.Event) []domain.Event {
	for {
		select {
		case ev := <-r.buf:
			pending = append(pending, ev)
		default:
			return pending
		}
	}
}

func (r *Recorder) flush(ctx context.Context, evs []domain.Event) {
	if err := r.Repo.InsertBatch(ctx, evs); err != nil {
		r.log.Warn().Err(err).Int("events", len(evs)).Msg("event flush failed")
		return
	}
	if n := r.dropped.Swap(0); n > 0 {
		r.log.Warn().Int64("dropped", n).Msg("events dropped under pressure")
	}
}
