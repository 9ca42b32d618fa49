// Package confidence scores claim descriptions through a chain of
// OpenAI-compatible chat-completion providers, falling back to a
// deterministic hash-derived score when no provider is configured or
// every attempt fails. Provider errors never escape this package.
package confidence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"claimtrust/internal/domain"
	"claimtrust/internal/infra/retry"
)

const (
	defaultTimeout    = 3500 * time.Millisecond
	maxDescriptionLen = 2000
	maxResponseBody   = 1 << 20
)

// Provider is one upstream scoring endpoint. Selection is first
// configured wins, in the order the Scorer was built with.
type Provider struct {
	Name   string
	APIKey string
	URL    string
	Model  string
}

func (p Provider) configured() bool {
	return p.APIKey != "" && p.URL != ""
}

type Scorer struct {
	providers []Provider
	client    *http.Client
	timeout   time.Duration
	policy    retry.Policy
}

type Config struct {
	Providers []Provider
	Timeout   time.Duration
	Retries   int
	Client    *http.Client
}

func NewScorer(cfg Config) *Scorer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = retry.DefaultRetries
	}
	return &Scorer{
		providers: cfg.Providers,
		client:    client,
		timeout:   timeout,
		policy:    retry.Policy{Retries: retries},
	}
}

// Score returns a confidence result for the claim metadata. It never
// returns an error: any provider failure resolves to the deterministic
// fallback so the caller always has a reproducible signal.
func (s *Scorer) Score(ctx context.Context, input domain.ConfidenceInput) domain.ConfidenceResult {
	provider, ok := s.pick()
	if !ok {
		return Fallback(input)
	}

	var confidence float64
	err := retry.Do(ctx, s.policy, func(ctx context.Context) error {
		value, callErr := s.call(ctx, provider, input)
		if callErr != nil {
			return callErr
		}
		confidence = value
		return nil
	})
	if err != nil {
		return Fallback(input)
	}
	return domain.ConfidenceResult{
		Version:    domain.ConfidenceResultVersion,
		Provider:   provider.Name,
		Confidence: clamp01(confidence),
		Reason:     domain.ConfidenceReasonProviderScored,
	}
}

func (s *Scorer) pick() (Provider, bool) {
	for _, p := range s.providers {
		if p.configured() {
			return p, true
		}
	}
	return Provider{}, false
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a claims risk analyst. Reply with a single JSON object " +
	`of the form {"confidence": <0..1>} expressing how internally consistent ` +
	"and plausible the claim is. No other text."

func (s *Scorer) call(ctx context.Context, provider Provider, input domain.ConfidenceInput) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: provider.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(input)},
		},
		Temperature: 0,
	})
	if err != nil {
		return 0, retry.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.URL, bytes.NewReader(body))
	if err != nil {
		return 0, retry.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+provider.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if retry.TransientNetError(err) {
			return 0, err
		}
		return 0, retry.Permanent(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%s status %d", provider.Name, resp.StatusCode)
		if retry.TransientStatus(resp.StatusCode) {
			return 0, err
		}
		return 0, retry.Permanent(err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return 0, retry.Permanent(fmt.Errorf("parse %s response: %w", provider.Name, err))
	}
	if len(parsed.Choices) == 0 {
		return 0, retry.Permanent(fmt.Errorf("empty %s response", provider.Name))
	}
	confidence, err := extractConfidence(parsed.Choices[0].Message.Content)
	if err != nil {
		return 0, retry.Permanent(err)
	}
	return confidence, nil
}

func buildPrompt(input domain.ConfidenceInput) string {
	desc := input.Description
	if len(desc) > maxDescriptionLen {
		desc = desc[:maxDescriptionLen]
	}
	amount := "not stated"
	if input.ClaimAmount != nil {
		amount = fmt.Sprintf("%.2f", *input.ClaimAmount)
	}
	return fmt.Sprintf(
		"Claim type: %s\nClaim amount: %s\nTimeline events: %d\nEvidence items: %d\nDescription:\n%s",
		input.ClaimType, amount, input.TimelineCount, input.EvidenceCount, desc,
	)
}

// extractConfidence pulls the JSON object out of the model's reply text.
// Anything malformed or out of range is a terminal provider error.
func extractConfidence(content string) (float64, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return 0, fmt.Errorf("no JSON object in provider reply")
	}
	var parsed struct {
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return 0, fmt.Errorf("parse provider reply: %w", err)
	}
	if parsed.Confidence == nil {
		return 0, fmt.Errorf("provider reply missing confidence")
	}
	return *parsed.Confidence, nil
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
