package domain

type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type SignalSource string

const (
	SignalSourceRules    SignalSource = "rules"
	SignalSourceAI       SignalSource = "ai"
	SignalSourceProvider SignalSource = "provider"
)

// Risk-signal ids are part of the durable contract alongside reason
// codes: additive evolution only.
const (
	SignalIdentityCredentials     = "identity.credentials"
	SignalIntegrityFraudPattern   = "integrity.fraud_pattern"
	SignalIntegrityTimeline       = "integrity.timeline"
	SignalIntegrityDescConfidence = "integrity.description_confidence"
	SignalEvidenceDeepfake        = "evidence.deepfake"
	SignalEvidenceMetadata        = "evidence.metadata"
)

type RiskSignal struct {
	ID          string         `json:"id"`
	Score       float64        `json:"score"`
	Severity    Severity       `json:"severity"`
	Source      SignalSource   `json:"source"`
	ReasonCodes []ReasonCode   `json:"reason_codes,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// SeverityForScore derives severity from a [0,1] risk score. Severity is
// always this pure function of the score; callers never set it directly.
func SeverityForScore(score float64) Severity {
	switch {
	case score >= 0.7:
		return SeverityHigh
	case score >= 0.4:
		return SeverityMedium
	case score >= 0.2:
		return SeverityLow
	default:
		return SeverityInfo
	}
}

// NewRiskSignal clamps the score to [0,1], derives severity, and
// canonicalizes reason-code order.
func NewRiskSignal(id string, score float64, source SignalSource, codes []ReasonCode, details map[string]any) RiskSignal {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return RiskSignal{
		ID:          id,
		Score:       score,
		Severity:    SeverityForScore(score),
		Source:      source,
		ReasonCodes: StableSortReasonCodes(codes),
		Details:     details,
	}
}
