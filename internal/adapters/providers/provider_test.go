package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestError_Format(t *testing.T) {
	e := Errorf("vision", ReasonUnavailable, "status %d", 503)
	want := "provider vision: provider_unavailable: status 503"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}

	bare := &Error{Provider: "speech", Reason: ReasonTimeout}
	if bare.Error() != "provider speech: timeout" {
		t.Fatalf("Error() = %q", bare.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	e := &Error{Provider: "textmodel", Reason: ReasonUnknown, Err: cause}
	if !errors.Is(e, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
}

func TestClassify(t *testing.T) {
	if got := Classify("x", context.DeadlineExceeded); got.Reason != ReasonTimeout {
		t.Fatalf("deadline: reason = %s", got.Reason)
	}
	if got := Classify("x", context.Canceled); got.Reason != ReasonTimeout {
		t.Fatalf("canceled: reason = %s", got.Reason)
	}

	// an existing classification passes through even when wrapped
	orig := Errorf("vision", ReasonQuotaExceeded, "status 429")
	if got := Classify("x", fmt.Errorf("call failed: %w", orig)); got != orig {
		t.Fatalf("expected wrapped *Error passthrough, got %+v", got)
	}

	if got := Classify("x", errors.New("boom")); got.Reason != ReasonUnknown {
		t.Fatalf("plain: reason = %s", got.Reason)
	}
	if got := Classify("x", errors.New("boom")); got.Provider != "x" {
		t.Fatalf("provider = %q", got.Provider)
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Reason
	}{
		{400, ReasonInvalidInput},
		{415, ReasonInvalidInput},
		{401, ReasonQuotaExceeded},
		{403, ReasonQuotaExceeded},
		{429, ReasonQuotaExceeded},
		{500, ReasonUnavailable},
		{503, ReasonUnavailable},
		{418, ReasonUnknown},
		{302, ReasonUnknown},
	}
	for _, tc := range tests {
		if got := FromStatus("p", tc.status); got.Reason != tc.want {
			t.Fatalf("FromStatus(%d) = %s, want %s", tc.status, got.Reason, tc.want)
		}
	}
}

func TestReasonOf(t *testing.T) {
	e := Errorf("p", ReasonInvalidInput, "bad")
	if got := ReasonOf(fmt.Errorf("wrapped: %w", e)); got != ReasonInvalidInput {
		t.Fatalf("ReasonOf wrapped = %s", got)
	}
	if got := ReasonOf(errors.New("plain")); got != ReasonUnknown {
		t.Fatalf("ReasonOf plain = %s", got)
	}
	if got := ReasonOf(nil); got != ReasonUnknown {
		t.Fatalf("ReasonOf nil = %s", got)
	}
}
