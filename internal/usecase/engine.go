// Package usecase implements the claims trust-scoring engine: three
// independent sub-scorers (identity, integrity, authenticity) whose
// weighted sum forms the trust score, with a deterministic merged audit
// trail of reason codes and risk signals.
package usecase

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"claimtrust/internal/domain"

	"github.com/google/uuid"
)

// Sub-score weights; they sum to 1 so the trust score is clamped to
// [0,100] by construction.
const (
	identityWeight     = 0.4
	integrityWeight    = 0.3
	authenticityWeight = 0.3
)

const defaultDeepfakeWorkers = 8

// Per-call cost estimates for the cost breakdown.
const (
	confidenceCallUSD = 0.002
	deepfakeCallUSD   = 0.01
)

type subScore struct {
	score   int
	codes   []domain.ReasonCode
	signals []domain.RiskSignal
	flags   []string
}

type Engine struct {
	confidence ConfidenceScorer
	deepfake   DeepfakeDetector
	amount     AmountPolicy
	linker     EvidenceLinker

	now             func() time.Time
	newClaimID      func() string
	deepfakeWorkers int
}

type EngineDeps struct {
	Confidence ConfidenceScorer
	Deepfake   DeepfakeDetector
	Amount     AmountPolicy
	Linker     EvidenceLinker

	Now             func() time.Time
	NewClaimID      func() string
	DeepfakeWorkers int
}

func NewEngine(deps EngineDeps) *Engine {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	newClaimID := deps.NewClaimID
	if newClaimID == nil {
		newClaimID = func() string { return uuid.NewString() }
	}
	workers := deps.DeepfakeWorkers
	if workers <= 0 {
		workers = defaultDeepfakeWorkers
	}
	return &Engine{
		confidence:      deps.Confidence,
		deepfake:        deps.Deepfake,
		amount:          deps.Amount,
		linker:          deps.Linker,
		now:             now,
		newClaimID:      newClaimID,
		deepfakeWorkers: workers,
	}
}

// VerifyClaim scores one claim. It is a total function of its input:
// every adapter failure is absorbed below this level, so callers always
// receive a complete, well-formed response.
func (e *Engine) VerifyClaim(ctx context.Context, req domain.ClaimRequest) domain.ClaimVerifyResponse {
	start := e.now()

	identity := scoreIdentity(req)
	integrity, integrityDetail := e.scoreIntegrity(ctx, req)
	authenticity, authenticityDetail := e.scoreAuthenticity(ctx, req)

	trustScore := int(math.Round(
		float64(identity.score)*identityWeight +
			float64(integrity.score)*integrityWeight +
			float64(authenticity.score)*authenticityWeight,
	))

	var codes []domain.ReasonCode
	codes = append(codes, identity.codes...)
	codes = append(codes, integrity.codes...)
	codes = append(codes, authenticity.codes...)

	signals := make([]domain.RiskSignal, 0,
		len(identity.signals)+len(integrity.signals)+len(authenticity.signals))
	signals = append(signals, identity.signals...)
	signals = append(signals, integrity.signals...)
	signals = append(signals, authenticity.signals...)
	sort.SliceStable(signals, func(i, j int) bool { return signals[i].ID < signals[j].ID })

	var flags []string
	flags = append(flags, identity.flags...)
	flags = append(flags, integrity.flags...)
	flags = append(flags, authenticity.flags...)
	if flags == nil {
		flags = []string{}
	}

	return domain.ClaimVerifyResponse{
		ClaimID:        e.newClaimID(),
		EngineVersion:  domain.ClaimsEngineVersion,
		TrustScore:     trustScore,
		Recommendation: domain.RecommendationForScore(trustScore),
		ReasonCodes:    ensureCodes(domain.StableSortReasonCodes(codes)),
		RiskSignals:    signals,
		Breakdown: domain.ScoreBreakdown{
			IdentityScore:     identity.score,
			IntegrityScore:    integrity.score,
			AuthenticityScore: authenticity.score,
		},
		RedFlags: flags,
		AIAnalysis: domain.AIAnalysis{
			DeepfakeDetected:      authenticityDetail.deepfakeDetected,
			DeepfakeChecked:       authenticityDetail.mediaChecked,
			TimelineConsistent:    integrityDetail.timelineConsistent,
			FraudPatternScore:     integrityDetail.patternScore,
			DescriptionConfidence: integrityDetail.confidence.Confidence,
			ConfidenceProvider:    integrityDetail.confidence.Provider,
		},
		EvidenceLinkages: e.buildLinkages(req.Evidence),
		ProcessingTimeMs: e.now().Sub(start).Milliseconds(),
		CostBreakdown:    costBreakdown(integrityDetail.confidence, authenticityDetail.mediaChecked),
	}
}

func (e *Engine) buildLinkages(items []domain.EvidenceItem) []domain.EvidenceLinkage {
	if e.linker == nil || len(items) == 0 {
		return nil
	}
	linkages := make([]domain.EvidenceLinkage, 0, len(items))
	for _, item := range items {
		linkage, err := e.linker(item)
		if err != nil {
			// A linkage failure must not fail the scoring pass.
			log.Printf("evidence linkage for %s failed: %v", item.URL, err)
			continue
		}
		linkages = append(linkages, linkage)
	}
	return linkages
}

func costBreakdown(confidence domain.ConfidenceResult, deepfakeCalls int) domain.CostBreakdown {
	cost := domain.CostBreakdown{
		ConfidenceCalls: 1,
		DeepfakeCalls:   deepfakeCalls,
	}
	if confidence.Reason == domain.ConfidenceReasonProviderScored {
		cost.EstimatedUSD += confidenceCallUSD
	}
	cost.EstimatedUSD += deepfakeCallUSD * float64(deepfakeCalls)
	return cost
}

func ensureCodes(codes []domain.ReasonCode) []domain.ReasonCode {
	if codes == nil {
		return []domain.ReasonCode{}
	}
	return codes
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
