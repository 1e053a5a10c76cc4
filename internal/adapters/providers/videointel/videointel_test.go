package videointel

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"veracity/internal/adapters/providers"
	"veracity/internal/core/content"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(providers.Config{
		VideoURL:   url,
		Timeout:    2 * time.Second,
		Retries:    1,
		RetryDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RequiresURL(t *testing.T) {
	if _, err := New(providers.Config{}); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestSupports(t *testing.T) {
	c := newTestClient(t, "http://unused")
	if !c.Supports(content.TypeVideo) || c.Supports(content.TypeAudio) {
		t.Fatalf("supports wrong types")
	}
}

func TestAnalyze_MeanOfFrameScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in annotateRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if in.VideoURL != "https://cdn.example/clip.mp4" {
			t.Errorf("request = %+v", in)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"frame_scores": []float64{1.0, 0.5, 0.75},
			"flags":        []string{"Lip-Sync-Drift", ""},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	f, err := c.Analyze(context.Background(), providers.Request{
		Type:     content.TypeVideo,
		MediaURL: "https://cdn.example/clip.mp4",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if math.Abs(f.Score-0.75) > 1e-9 {
		t.Fatalf("score = %v, want 0.75", f.Score)
	}
	if len(f.Signals) != 1 || f.Signals[0] != "lip-sync-drift" {
		t.Fatalf("signals = %v", f.Signals)
	}
}

func TestAnalyze_ClampsFrameScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"frame_scores": []float64{1.5, -0.5}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	f, err := c.Analyze(context.Background(), providers.Request{Type: content.TypeVideo, Media: "dmlkZW8="})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if math.Abs(f.Score-0.5) > 1e-9 {
		t.Fatalf("score = %v, want 0.5 after clamping", f.Score)
	}
}

func TestAnalyze_NoFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"frame_scores": [], "flags": ["x"]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Analyze(context.Background(), providers.Request{Type: content.TypeVideo, Media: "dmlkZW8="})
	if providers.ReasonOf(err) != providers.ReasonUnknown {
		t.Fatalf("reason = %s", providers.ReasonOf(err))
	}
}

func TestAnalyze_MissingPayload(t *testing.T) {
	c := newTestClient(t, "http://unused")
	_, err := c.Analyze(context.Background(), providers.Request{Type: content.TypeVideo})
	if providers.ReasonOf(err) != providers.ReasonInvalidInput {
		t.Fatalf("reason = %s", providers.ReasonOf(err))
	}
}

func TestAnalyze_UnavailableStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Analyze(context.Background(), providers.Request{Type: content.TypeVideo, Media: "dmlkZW8="})
	if providers.ReasonOf(err) != providers.ReasonUnavailable {
		t.Fatalf("reason = %s", providers.ReasonOf(err))
	}
}
