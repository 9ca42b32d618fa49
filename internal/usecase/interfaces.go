package usecase

import (
	"context"

	"claimtrust/internal/domain"
)

// ConfidenceScorer rates how plausible a claim's metadata looks. It
// never errors: provider failures surface only through the result's
// provider/reason fields.
type ConfidenceScorer interface {
	Score(ctx context.Context, input domain.ConfidenceInput) domain.ConfidenceResult
}

// DeepfakeDetector returns a three-valued verdict for one media URL,
// absorbing every failure into "unknown".
type DeepfakeDetector interface {
	Detect(ctx context.Context, mediaURL string) domain.DeepfakeResult
}

// AmountPolicy applies amount-reasonability rules; the bool reports
// whether any rule triggered.
type AmountPolicy interface {
	Evaluate(ctx context.Context, claimType domain.ClaimType, amount *float64) (domain.AmountRuling, bool)
}

// EvidenceLinker builds the content-addressed linkage record for one
// evidence item.
type EvidenceLinker func(item domain.EvidenceItem) (domain.EvidenceLinkage, error)

// ClaimStore persists scored claims. Save is an upsert by claim id
// (last writer wins); SetStatus touches only the reviewer overlay.
type ClaimStore interface {
	Load(ctx context.Context, claimID string) (*domain.ClaimRecord, error)
	Save(ctx context.Context, record domain.ClaimRecord) error
	SetStatus(ctx context.Context, claimID string, status domain.ReviewStatus, reviewer string) error
}
