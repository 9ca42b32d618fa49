// Package deepfake queries a configured media-forensics endpoint for a
// real/fake/unknown verdict on one media URL. The adapter never returns
// an error: validation failures, missing configuration, and exhausted
// retries all resolve to an "unknown" verdict tagged with the cause.
package deepfake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"claimtrust/internal/domain"
	"claimtrust/internal/infra/retry"
)

// FakeScoreThreshold marks the provider score at or above which a media
// item is treated as synthetic even without an explicit flag.
const FakeScoreThreshold = 0.7

const (
	defaultTimeout  = 3500 * time.Millisecond
	maxResponseBody = 1 << 20
)

type Detector struct {
	endpoint string
	apiKey   string
	client   *http.Client
	timeout  time.Duration
	policy   retry.Policy
}

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Retries  int
	Client   *http.Client
}

func NewDetector(cfg Config) *Detector {
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
	return &Detector{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   client,
		timeout:  timeout,
		policy:   retry.Policy{Retries: retries},
	}
}

type providerRequest struct {
	URL string `json:"url"`
}

type providerResponse struct {
	IsFake   *bool    `json:"isFake"`
	Score    *float64 `json:"score"`
	Provider string   `json:"provider"`
}

// Detect returns a verdict for mediaURL. Invalid URLs short-circuit
// before any network call.
func (d *Detector) Detect(ctx context.Context, mediaURL string) domain.DeepfakeResult {
	if !validMediaURL(mediaURL) {
		return domain.DeepfakeResult{
			Verdict:  domain.DeepfakeVerdictUnknown,
			Provider: domain.DeepfakeProviderValidation,
			Reason:   "invalid_url",
		}
	}
	if d.endpoint == "" || d.apiKey == "" {
		return domain.DeepfakeResult{
			Verdict:  domain.DeepfakeVerdictUnknown,
			Provider: domain.DeepfakeProviderNotConfigured,
		}
	}

	var result domain.DeepfakeResult
	err := retry.Do(ctx, d.policy, func(ctx context.Context) error {
		res, callErr := d.call(ctx, mediaURL)
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})
	if err != nil {
		return domain.DeepfakeResult{
			Verdict:  domain.DeepfakeVerdictUnknown,
			Provider: providerName(d.endpoint, ""),
			Reason:   "provider_error:" + err.Error(),
		}
	}
	return result
}

func (d *Detector) call(ctx context.Context, mediaURL string) (domain.DeepfakeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	body, err := json.Marshal(providerRequest{URL: mediaURL})
	if err != nil {
		return domain.DeepfakeResult{}, retry.Permanent(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.DeepfakeResult{}, retry.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		if retry.TransientNetError(err) {
			return domain.DeepfakeResult{}, err
		}
		return domain.DeepfakeResult{}, retry.Permanent(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return domain.DeepfakeResult{}, err
	}
	if retry.TransientStatus(resp.StatusCode) {
		return domain.DeepfakeResult{}, fmt.Errorf("provider status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Terminal status: record it and stop, no retry.
		return domain.DeepfakeResult{
			Verdict:  domain.DeepfakeVerdictUnknown,
			Provider: providerName(d.endpoint, ""),
			Reason:   fmt.Sprintf("status_%d", resp.StatusCode),
		}, nil
	}

	var parsed providerResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return domain.DeepfakeResult{}, retry.Permanent(fmt.Errorf("parse provider response: %w", err))
	}
	return verdictFrom(parsed, d.endpoint), nil
}

func verdictFrom(parsed providerResponse, endpoint string) domain.DeepfakeResult {
	verdict := domain.DeepfakeVerdictReal
	if parsed.IsFake != nil && *parsed.IsFake {
		verdict = domain.DeepfakeVerdictFake
	} else if parsed.Score != nil && *parsed.Score >= FakeScoreThreshold {
		verdict = domain.DeepfakeVerdictFake
	}
	return domain.DeepfakeResult{
		Verdict:    verdict,
		Confidence: parsed.Score,
		Provider:   providerName(endpoint, parsed.Provider),
	}
}

func providerName(endpoint, reported string) string {
	if reported != "" {
		return reported
	}
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return "deepfake"
}

func validMediaURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
