package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"veracity/internal/core/fingerprint"
	"veracity/internal/platform/store"
	"veracity/internal/services/events/domain"
	"veracity/internal/services/events/repo"
)

// fakeCH signals every insert so tests can wait without sleeping
type fakeCH struct {
	mu       sync.Mutex
	inserted [][][]any
	notify   chan int
}

func newFakeCH() *fakeCH { return &fakeCH{notify: make(chan int, 8)} }

func (f *fakeCH) Insert(ctx context.Context, table string, cols []string, rows [][]any) error {
	f.mu.Lock()
	f.inserted = append(f.inserted, rows)
	f.mu.Unlock()
	f.notify <- len(rows)
	return nil
}

func (f *fakeCH) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return nil, nil
}

func (f *fakeCH) Close() error { return nil }

func (f *fakeCH) waitInsert(t *testing.T) int {
	t.Helper()
	select {
	case n := <-f.notify:
		return n
	case <-time.After(2 * time.Second):
		t.Fatalf("no insert arrived")
		return 0
	}
}

func event(s string) domain.Event {
	return domain.Event{Fingerprint: fingerprint.Text(s), Providers: []string{"heuristic"}}
}

func TestRun_FlushesOnBatchSize(t *testing.T) {
	ch := newFakeCH()
	rec := NewRecorder(repo.NewCH(ch), Config{FlushBatch: 2, FlushEvery: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() { _ = rec.Run(ctx); close(done) }()

	rec.Record(event("one"))
	rec.Record(event("two"))

	if n := ch.waitInsert(t); n != 2 {
		t.Fatalf("flushed %d rows, want 2", n)
	}
	cancel()
	<-done
}

func TestRun_FlushesOnTicker(t *testing.T) {
	ch := newFakeCH()
	rec := NewRecorder(repo.NewCH(ch), Config{FlushBatch: 100, FlushEvery: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() { _ = rec.Run(ctx); close(done) }()

	rec.Record(event("solo"))

	if n := ch.waitInsert(t); n != 1 {
		t.Fatalf("flushed %d rows, want 1", n)
	}
	cancel()
	<-done
}

func TestRun_DrainsOnShutdown(t *testing.T) {
	ch := newFakeCH()
	rec := NewRecorder(repo.NewCH(ch), Config{FlushBatch: 100, FlushEvery: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = rec.Run(ctx); close(done) }()

	rec.Record(event("a"))
	rec.Record(event("b"))
	rec.Record(event("c"))
	cancel()
	<-done

	if n := ch.waitInsert(t); n != 3 {
		t.Fatalf("drained %d rows, want 3", n)
	}
}

func TestRecord_DropsWhenFull(t *testing.T) {
	ch := newFakeCH()
	rec := NewRecorder(repo.NewCH(ch), Config{BufferSize: 1})

	// no Run loop consuming, so the second event has nowhere to go
	rec.Record(event("kept"))
	rec.Record(event("dropped"))

	if got := rec.dropped.Load(); got != 1 {
		t.Fatalf("dropped = %d, want 1", got)
	}
}

func TestRecord_StampsIDAndCreatedAt(t *testing.T) {
	ch := newFakeCH()
	rec := NewRecorder(repo.NewCH(ch), Config{})
	fixed := time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return fixed }

	rec.Record(event("stamp me"))

	ev := <-rec.buf
	if !ev.CreatedAt.Equal(fixed) {
		t.Fatalf("CreatedAt = %v, want %v", ev.CreatedAt, fixed)
	}
	if ev.EventID == "" {
		t.Fatalf("EventID not assigned")
	}

	// a caller-provided id is kept
	pre := event("prestamped")
	pre.EventID = "ev-fixed"
	rec.Record(pre)
	if got := <-rec.buf; got.EventID != "ev-fixed" {
		t.Fatalf("EventID = %q, want ev-fixed", got.EventID)
	}
}

func TestNilRepo_RecordDropsAndRunWaits(t *testing.T) {
	rec := NewRecorder(nil, Config{})
	rec.Record(event("nowhere")) // must not panic or block

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rec.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
