package service

import (
	"context"
	"testing"

	"veracity/internal/core/fingerprint"
	"veracity/internal/platform/store"
	"veracity/internal/services/events/repo"
)

// argCH records query args and returns empty result sets
type argCH struct {
	args []any
}

func (a *argCH) Insert(ctx context.Context, table string, cols []string, rows [][]any) error {
	return nil
}

func (a *argCH) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	a.args = args
	return emptyRows{}, nil
}

func (a *argCH) Close() error { return nil }

type emptyRows struct{}

func (emptyRows) Next() bool             { return false }
func (emptyRows) Scan(dest ...any) error { return nil }
func (emptyRows) Err() error             { return nil }
func (emptyRows) Close()                 {}
func (emptyRows) Columns() []string      { return nil }

func TestReader_NilRepoServesEmpty(t *testing.T) {
	r := NewReader(nil, ReaderConfig{})
	ctx := context.Background()

	hist, err := r.History(ctx, fingerprint.Text("x"), 10)
	if err != nil || hist != nil {
		t.Fatalf("History = %v, %v", hist, err)
	}
	ts, err := r.Timeseries(ctx, 7)
	if err != nil || ts != nil {
		t.Fatalf("Timeseries = %v, %v", ts, err)
	}
	ps, err := r.Providers(ctx)
	if err != nil || ps != nil {
		t.Fatalf("Providers = %v, %v", ps, err)
	}
}

func TestHistory_LimitClamped(t *testing.T) {
	ch := &argCH{}
	r := NewReader(repo.NewCH(ch), ReaderConfig{HardLimit: 25})
	fp := fingerprint.Text("x")

	if _, err := r.History(context.Background(), fp, 0); err != nil {
		t.Fatalf("History: %v", err)
	}
	if ch.args[1] != 25 {
		t.Fatalf("zero limit should clamp to hard limit, got %v", ch.args[1])
	}

	if _, err := r.History(context.Background(), fp, 500); err != nil {
		t.Fatalf("History: %v", err)
	}
	if ch.args[1] != 25 {
		t.Fatalf("oversize limit should clamp, got %v", ch.args[1])
	}

	if _, err := r.History(context.Background(), fp, 5); err != nil {
		t.Fatalf("History: %v", err)
	}
	if ch.args[1] != 5 {
		t.Fatalf("in-range limit should pass through, got %v", ch.args[1])
	}
}

func TestTimeseries_DaysClamped(t *testing.T) {
	ch := &argCH{}
	r := NewReader(repo.NewCH(ch), ReaderConfig{})

	if _, err := r.Timeseries(context.Background(), 0); err != nil {
		t.Fatalf("Timeseries: %v", err)
	}
	if ch.args[0] != 7 {
		t.Fatalf("zero days should default to 7, got %v", ch.args[0])
	}

	if _, err := r.Timeseries(context.Background(), 365); err != nil {
		t.Fatalf("Timeseries: %v", err)
	}
	if ch.args[0] != 90 {
		t.Fatalf("oversize days should clamp to 90, got %v", ch.args[0])
	}
}
