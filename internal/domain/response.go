package domain

import "time"

type Recommendation string

const (
	RecommendationApprove     Recommendation = "approve"
	RecommendationReview      Recommendation = "review"
	RecommendationInvestigate Recommendation = "investigate"
	RecommendationReject      Recommendation = "reject"
)

// RecommendationForScore maps a trust score to its recommendation tier.
// Thresholds are fixed and boundary values map to the higher tier.
func RecommendationForScore(trustScore int) Recommendation {
	switch {
	case trustScore >= 90:
		return RecommendationApprove
	case trustScore >= 70:
		return RecommendationReview
	case trustScore >= 50:
		return RecommendationInvestigate
	default:
		return RecommendationReject
	}
}

type ScoreBreakdown struct {
	IdentityScore     int `json:"identityScore"`
	IntegrityScore    int `json:"integrityScore"`
	AuthenticityScore int `json:"authenticityScore"`
}

type AIAnalysis struct {
	DeepfakeDetected      bool    `json:"deepfakeDetected"`
	DeepfakeChecked       int     `json:"deepfakeChecked"`
	TimelineConsistent    bool    `json:"timelineConsistent"`
	FraudPatternScore     float64 `json:"fraudPatternScore"`
	DescriptionConfidence float64 `json:"descriptionConfidence"`
	ConfidenceProvider    string  `json:"confidenceProvider"`
}

type CostBreakdown struct {
	ConfidenceCalls int     `json:"confidenceCalls"`
	DeepfakeCalls   int     `json:"deepfakeCalls"`
	EstimatedUSD    float64 `json:"estimatedUsd"`
}

const ClaimsEngineVersion = "claims-engine.v1"

// ClaimVerifyResponse is the durable audit record for one scoring pass.
// reasonCodes and riskSignals evolve additively only; downstream
// consumers persist and diff them.
type ClaimVerifyResponse struct {
	ClaimID          string            `json:"claimId"`
	EngineVersion    string            `json:"engineVersion"`
	TrustScore       int               `json:"trustScore"`
	Recommendation   Recommendation    `json:"recommendation"`
	ReasonCodes      []ReasonCode      `json:"reasonCodes"`
	RiskSignals      []RiskSignal      `json:"riskSignals"`
	Breakdown        ScoreBreakdown    `json:"breakdown"`
	RedFlags         []string          `json:"redFlags"`
	AIAnalysis       AIAnalysis        `json:"aiAnalysis"`
	EvidenceLinkages []EvidenceLinkage `json:"evidenceLinkages,omitempty"`
	ProcessingTimeMs int64             `json:"processingTimeMs"`
	CostBreakdown    CostBreakdown     `json:"costBreakdown"`
}

type ReviewStatus string

const (
	ReviewStatusPending     ReviewStatus = "pending"
	ReviewStatusApproved    ReviewStatus = "approved"
	ReviewStatusRejected    ReviewStatus = "rejected"
	ReviewStatusNeedsReview ReviewStatus = "needs_review"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected, ReviewStatusNeedsReview:
		return true
	default:
		return false
	}
}

// ClaimRecord is the persisted form: the immutable scoring response plus
// a reviewer-settable status overlay stored alongside it.
type ClaimRecord struct {
	ClaimID   string              `json:"claim_id"`
	UserID    string              `json:"user_id"`
	ClaimType ClaimType           `json:"claim_type"`
	Response  ClaimVerifyResponse `json:"response"`
	Status    ReviewStatus        `json:"status"`
	Reviewer  string              `json:"reviewer,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
