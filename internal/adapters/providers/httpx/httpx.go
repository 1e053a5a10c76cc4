// Package httpx is the small HTTP toolkit shared by the remote provider
// adapters: a default client and a bounded retry loop for transient failures
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDelay    = 500 * time.Millisecond
	maxBackoffDelay = 30 * time.Second
)

// New returns an HTTP client with a hard per-call timeout
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// AttemptFunc performs one request attempt and reports the status code,
// response body and transport error if any
type AttemptFunc func() (status int, body []byte, err error)

// DoWithRetry runs fn up to attempts times, retrying only on transport
// errors, 429 and 5xx with a doubling delay. Definitive responses (2xx and
// other 4xx) return immediately; the last attempt's outcome is returned
// verbatim; ctx expiry between attempts wins over further retries
func DoWithRetry(ctx context.Context, attempts int, initialDelay time.Duration, fn AttemptFunc) (int, []byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	delay := initialDelay
	if delay <= 0 {
		delay = defaultDelay
	}

	var (
		status int
		body   []byte
		err    error
	)
	for i := 0; i < attempts; i++ {
		status, body, err = fn()
		transient := status == http.StatusTooManyRequests || status >= 500 ||
			(err != nil && status == 0)
		if !transient {
			return status, body, err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return status, body, ctx.Err()
		case <-t.C:
		}
		if delay < maxBackoffDelay {
			delay *= 2
		}
	}
	return status, body, err
}

// PostJSON performs a single JSON POST with optional bearer auth and returns
// the status plus the raw body. Non-2xx statuses come back with a non-nil
// error so DoWithRetry treats them as retry candidates
func PostJSON(ctx context.Context, c *http.Client, url, bearer string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("httpx: marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp.StatusCode, body, nil
}
