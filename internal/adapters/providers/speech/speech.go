// Package speech calls a hosted transcription endpoint and scores what was
// said, not just how it sounds: the transcript runs through the heuristic
// pack and blends with the backend's voice-authenticity estimate at a
// fixed 0.6/0.4 weighting
package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"veracity/internal/adapters/providers"
	"veracity/internal/adapters/providers/heuristic"
	"veracity/internal/adapters/providers/httpx"
	"veracity/internal/core/aggregate"
	"veracity/internal/core/content"
	"veracity/internal/core/heuristics"
)

// Name is the registry name
const Name = "speech"

// SignalSyntheticVoice flags audio the backend rates as likely cloned or generated
const SignalSyntheticVoice = "synthetic_voice"

const (
	transcriptWeight = 0.6
	voiceWeight      = 0.4

	// voice authenticity below this trips the synthetic-voice signal
	syntheticVoiceAt = 0.5
)

func init() {
	providers.Register(Name, func(cfg providers.Config) (providers.Adapter, error) {
		return New(cfg)
	})
}

// Client talks to the transcription backend
type Client struct {
	url      string
	key      string
	http     *http.Client
	attempts int
	delay    time.Duration
	pack     *heuristics.Pack
}

// New validates endpoint config, loads the pattern pack and returns the adapter
func New(cfg providers.Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpeechURL) == "" {
		return nil, fmt.Errorf("speech: endpoint URL not configured")
	}
	pack, err := heuristics.Load()
	if err != nil {
		return nil, err
	}
	return &Client{
		url:      cfg.SpeechURL,
		key:      cfg.SpeechKey,
		http:     httpx.New(cfg.Timeout),
		attempts: cfg.Retries,
		delay:    cfg.RetryDelay,
		pack:     pack,
	}, nil
}

// Name implements providers.Adapter
func (c *Client) Name() string { return Name }

// Supports implements providers.Adapter.
// Video is included so spoken claims in footage get scored even when the
// frame-analysis backend is down
func (c *Client) Supports(t content.Type) bool {
	return t == content.TypeAudio || t == content.TypeVideo
}

type transcribeRequest struct {
	AudioB64 string `json:"audio_b64,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

type transcribeResponse struct {
	Transcript        string   `json:"transcript"`
	VoiceAuthenticity *float64 `json:"voice_authenticity"`
}

// Analyze implements providers.Adapter
func (c *Client) Analyze(ctx context.Context, req providers.Request) (aggregate.Finding, error) {
	payload := transcribeRequest{AudioB64: req.Media, AudioURL: req.MediaURL, Lang: req.Lang}
	if payload.AudioB64 == "" && payload.AudioURL == "" {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonInvalidInput, "no audio payload or URL")
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

	var out transcribeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonUnknown, "malformed response: %v", err)
	}
	if out.VoiceAuthenticity == nil {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonUnknown, "response missing voice_authenticity")
	}

	voice := clamp01(*out.VoiceAuthenticity)
	var signals []string

	score := voice
	if strings.TrimSpace(out.Transcript) != "" {
		textScore, textSignals := heuristic.Score(c.pack.Scan(out.Transcript))
		score = transcriptWeight*textScore + voiceWeight*voice
		signals = append(signals, textSignals...)
	}
	// no transcript: the voice estimate carries the whole score

	if voice < syntheticVoiceAt {
		signals = append(signals, SignalSyntheticVoice)
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
