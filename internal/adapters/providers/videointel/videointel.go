// Package videointel calls a hosted video-analysis endpoint that scores
// sampled frames for manipulation. The finding score is the mean of the
// per-frame authenticity scores
package videointel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"veracity/internal/adapters/providers"
	"veracity/internal/adapters/providers/httpx"
	"veracity/internal/core/aggregate"
	"veracity/internal/core/content"
)

// Name is the registry name
const Name = "videointel"

func init() {
	providers.Register(Name, func(cfg providers.Config) (providers.Adapter, error) {
		return New(cfg)
	})
}

// Client talks to the video-analysis backend
type Client struct {
	url      string
	key      string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// New validates endpoint config and returns the adapter
func New(cfg providers.Config) (*Client, error) {
	if strings.TrimSpace(cfg.VideoURL) == "" {
		return nil, fmt.Errorf("videointel: endpoint URL not configured")
	}
	return &Client{
		url:      cfg.VideoURL,
		key:      cfg.VideoKey,
		http:     httpx.New(cfg.Timeout),
		attempts: cfg.Retries,
		delay:    cfg.RetryDelay,
	}, nil
}

// Name implements providers.Adapter
func (c *Client) Name() string { return Name }

// Supports implements providers.Adapter
func (c *Client) Supports(t content.Type) bool { return t == content.TypeVideo }

type annotateRequest struct {
	VideoB64 string `json:"video_b64,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

type annotateResponse struct {
	FrameScores []float64 `json:"frame_scores"`
	Flags       []string  `json:"flags"`
}

// Analyze implements providers.Adapter
func (c *Client) Analyze(ctx context.Context, req providers.Request) (aggregate.Finding, error) {
	payload := annotateRequest{VideoB64: req.Media, VideoURL: req.MediaURL}
	if payload.VideoB64 == "" && payload.VideoURL == "" {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonInvalidInput, "no video payload or URL")
	}

	status, body, err := httpx.DoWithRetry(ctx, c.attempts, c.delay, func() (int, []byte, error) {
		return httpx.PostJSON(ctx, c.http, c.url, c.key, payload)
	})
	if err != nil {
		if status != 0 {
			return aggregate.Finding{}, providers.FromStatus(Name, status)
		}
		return aggregate.Finding{}, providers.Classify(Name, err)
	}

	var out annotateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonUnknown, "malformed response: %v", err)
	}
	if len(out.FrameScores) == 0 {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonUnknown, "response has no frame scores")
	}

	var sum float64
	for _, s := range out.FrameScores {
		sum += clamp01(s)
	}
	score := sum / float64(len(out.FrameScores))

	var signals []string
	for _, f := range out.Flags {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			signals = append(signals, f)
		}
	}

	return aggregate.Finding{Provider: Name, Score: score, Signals: signals}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
