// Package vision calls a hosted image-forensics endpoint. The backend
// reports a manipulation score plus descriptive labels; the adapter inverts
// that into an authenticity sub-score
package vision

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
const Name = "vision"

// SignalManipulation flags images the backend rates more likely edited than not
const SignalManipulation = "possible_manipulation"

// manipulationFlagAt is the manipulation score above which the signal fires
const manipulationFlagAt = 0.5

func init() {
	providers.Register(Name, func(cfg providers.Config) (providers.Adapter, error) {
		return New(cfg)
	})
}

// Client talks to the image-forensics backend
type Client struct {
	url      string
	key      string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// New validates endpoint config and returns the adapter
func New(cfg providers.Config) (*Client, error) {
	if strings.TrimSpace(cfg.VisionURL) == "" {
		return nil, fmt.Errorf("vision: endpoint URL not configured")
	}
	return &Client{
		url:      cfg.VisionURL,
		key:      cfg.VisionKey,
		http:     httpx.New(cfg.Timeout),
		attempts: cfg.Retries,
		delay:    cfg.RetryDelay,
	}, nil
}

// Name implements providers.Adapter
func (c *Client) Name() string { return Name }

// Supports implements providers.Adapter
func (c *Client) Supports(t content.Type) bool { return t == content.TypeImage }

type annotateRequest struct {
	ImageB64 string `json:"image_b64,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type annotateResponse struct {
	ManipulationScore *float64 `json:"manipulation_score"`
	Labels            []string `json:"labels"`
}

// Analyze implements providers.Adapter
func (c *Client) Analyze(ctx context.Context, req providers.Request) (aggregate.Finding, error) {
	payload := annotateRequest{ImageB64: req.Media, ImageURL: req.MediaURL}
	if payload.ImageB64 == "" && payload.ImageURL == "" {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonInvalidInput, "no image payload or URL")
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
	if out.ManipulationScore == nil {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonUnknown, "response missing manipulation_score")
	}

	manipulation := clamp01(*out.ManipulationScore)
	signals := make([]string, 0, len(out.Labels)+1)
	for _, l := range out.Labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			signals = append(signals, l)
		}
	}
	if manipulation > manipulationFlagAt {
		signals = append(signals, SignalManipulation)
	}

	return aggregate.Finding{Provider: Name, Score: 1 - manipulation, Signals: signals}, nil
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
