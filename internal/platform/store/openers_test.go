package store

import (
	"context"
	"os"
	"testing"
	"time"
)

func fastFailPGURL() string {
	// user/pass/db don't matter; 127.0.0.1:1 is a closed port on all systems
	return "postgres://u:p@127.0.0.1:1/db?sslmode=disable"
}

// integrationURL returns an override URL from env if present
func integrationURL(envKey string) (string, bool) {
	v := os.Getenv(envKey)
	return v, v != ""
}

func TestOpenPG_ParentAlreadyCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{PG: PGConfig{URL: fastFailPGURL(), MaxConns: 2}}
	s := &Store{}

	start := time.Now()
	txr, err := openPG(ctx, cfg, s)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected error due to canceled context, got nil (txr=%T)", txr)
	}
	if txr != nil {
		t.Fatalf("expected nil TxRunner on canceled context, got %T", txr)
	}
	// should return quickly (no DNS, immediate ECONNREFUSED)
	if elapsed > time.Second {
		t.Fatalf("expected quick failure, got %v", elapsed)
	}
}

func TestOpenPG_BackoffThenCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := Config{PG: PGConfig{URL: fastFailPGURL(), MaxConns: 2}}

	// cancel a bit after the first 150ms backoff so the sleep path runs
	go func() {
		time.Sleep(160 * time.Millisecond)
		cancel()
	}()

	s := &Store{}

	start := time.Now()
	txr, err := openPG(ctx, cfg, s)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected error due to parent cancellation, got nil (txr=%T)", txr)
	}
	if txr != nil {
		t.Fatalf("expected nil TxRunner when parent deadline hits, got %T", txr)
	}
	if elapsed < 140*time.Millisecond {
		t.Fatalf("expected at least one backoff sleep (~150ms), got %v", elapsed)
	}
	if elapsed > 5*time.Second {
		t.Fatalf("test took too long (%v); expected early cancel", elapsed)
	}
}

func TestOpenCH(t *testing.T) {
	t.Parallel()

	url, ok := integrationURL("TEST_CH_URL")
	if !ok {
		t.Skip("skipping ClickHouse integration test: set TEST_CH_URL to enable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := Config{CH: CHConfig{URL: url, Role: "test"}}

	chc, err := openCH(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("openCH error: %v", err)
	}
	if chc == nil {
		t.Fatalf("openCH returned nil Clickhouse")
	}
	_ = chc.Close()
}

func TestOpenRD(t *testing.T) {
	t.Parallel()

	url, ok := integrationURL("TEST_REDIS_URL")
	if !ok {
		t.Skip("skipping redis integration test: set TEST_REDIS_URL to enable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := Config{RD: RedisConfig{URL: url}}

	rdc, err := openRD(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("openRD error: %v", err)
	}
	if rdc == nil {
		t.Fatalf("openRD returned nil Cache")
	}

	key := "veracity:test:" + time.Now().Format("150405.000")
	if err := rdc.Set(ctx, key, []byte("ok"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	val, found, err := rdc.Get(ctx, key)
	if err != nil || !found || string(val) != "ok" {
		t.Fatalf("Get mismatch val=%q found=%v err=%v", val, found, err)
	}
	if err := rdc.Del(ctx, key); err != nil {
		t.Fatalf("Del error: %v", err)
	}
	_, found, err = rdc.Get(ctx, key)
	if err != nil || found {
		t.Fatalf("expected clean miss after Del, found=%v err=%v", found, err)
	}
	_ = rdc.Close()
}
