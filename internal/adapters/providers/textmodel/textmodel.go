// Package textmodel calls a hosted text-analysis model endpoint.
// The wire contract is a JSON POST {content, lang} with bearer auth and a
// JSON response {authenticity_score, signals}; anything else is a classified
// adapter error
package textmodel

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
const Name = "textmodel"

func init() {
	providers.Register(Name, func(cfg providers.Config) (providers.Adapter, error) {
		return New(cfg)
	})
}

// Client talks to the hosted model
type Client struct {
	url      string
	key      string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// New validates endpoint config and returns the adapter
func New(cfg providers.Config) (*Client, error) {
	if strings.TrimSpace(cfg.TextModelURL) == "" {
		return nil, fmt.Errorf("textmodel: endpoint URL not configured")
	}
	return &Client{
		url:      cfg.TextModelURL,
		key:      cfg.TextModelKey,
		http:     httpx.New(cfg.Timeout),
		attempts: cfg.Retries,
		delay:    cfg.RetryDelay,
	}, nil
}

// Name implements providers.Adapter
func (c *Client) Name() string { return Name }

// Supports implements providers.Adapter
func (c *Client) Supports(t content.Type) bool { return t == content.TypeText }

type analyzeRequest struct {
	Content string `json:"content"`
	Lang    string `json:"lang,omitempty"`
}

type analyzeResponse struct {
	// Pointer so an absent score is an error, never a zero (= fully fake)
	AuthenticityScore *float64 `json:"authenticity_score"`
	Signals           []string `json:"signals"`
}

// Analyze implements providers.Adapter
func (c *Client) Analyze(ctx context.Context, req providers.Request) (aggregate.Finding, error) {
	if strings.TrimSpace(req.Text) == "" {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonInvalidInput, "no text to analyze")
	}

	payload := analyzeRequest{Content: req.Text, Lang: req.Lang}
	status, body, err := httpx.DoWithRetry(ctx, c.attempts, c.delay, func() (int, []byte, error) {
		return httpx.PostJSON(ctx, c.http, c.url, c.key, payload)
	})
	if err != nil {
		if status != 0 {
			return aggregate.Finding{}, providers.FromStatus(Name, status)
		}
		return aggregate.Finding{}, providers.Classify(Name, err)
	}

	var out analyzeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonUnknown, "malformed response: %v", err)
	}
	if out.AuthenticityScore == nil {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonUnknown, "response missing authenticity_score")
	}

	return aggregate.Finding{
		Provider: Name,
		Score:    clamp01(*out.AuthenticityScore),
		Signals:  cleanSignals(out.Signals),
	}, nil
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

// cleanSignals drops blanks and normalizes to lowercase so the aggregator's
// union dedup works across providers
func cleanSignals(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
