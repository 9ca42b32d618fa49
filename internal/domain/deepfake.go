package domain

type DeepfakeVerdict string

const (
	DeepfakeVerdictReal    DeepfakeVerdict = "real"
	DeepfakeVerdictFake    DeepfakeVerdict = "fake"
	DeepfakeVerdictUnknown DeepfakeVerdict = "unknown"
)

// Deepfake result provider markers for the non-network paths.
const (
	DeepfakeProviderValidation    = "validation"
	DeepfakeProviderNotConfigured = "not_configured"
)

// DeepfakeResult is three-valued on purpose: "unknown" (no signal) must
// stay distinguishable from "real" so the scoring engine can apply a
// smaller penalty for a degraded provider than for a clean verdict.
type DeepfakeResult struct {
	Verdict    DeepfakeVerdict `json:"verdict"`
	Confidence *float64        `json:"confidence"`
	Provider   string          `json:"provider"`
	Reason     string          `json:"reason,omitempty"`
}
