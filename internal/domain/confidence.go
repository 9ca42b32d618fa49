package domain

const ConfidenceResultVersion = "confidence-v1"

// Provider names reported in confidence results. "deterministic" marks
// the hash-based fallback path.
const (
	ConfidenceProviderOpenAI        = "openai"
	ConfidenceProviderDeepSeek      = "deepseek"
	ConfidenceProviderGrok          = "grok"
	ConfidenceProviderDeterministic = "deterministic"
)

const (
	ConfidenceReasonProviderScored        = "provider_scored"
	ConfidenceReasonDeterministicFallback = "deterministic_fallback"
)

// ConfidenceInput is the claim metadata handed to the text-scoring
// provider chain.
type ConfidenceInput struct {
	ClaimType     ClaimType
	ClaimAmount   *float64
	Description   string
	TimelineCount int
	EvidenceCount int
}

type ConfidenceResult struct {
	Version    string  `json:"version"`
	Provider   string  `json:"provider"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}
