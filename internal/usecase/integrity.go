package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"claimtrust/internal/domain"
)

const (
	integrityBaseline = 50

	timelineConsistentBonus     = 25
	timelineInconsistentPenalty = 20
	impossibleTravelWindow      = 30 * time.Minute

	fraudPatternHighThreshold   = 0.7
	fraudPatternMediumThreshold = 0.4
	fraudPatternHighPenalty     = 30
	fraudPatternMediumPenalty   = 15
	fraudPatternCleanBonus      = 15

	confidenceHighThreshold = 0.8
	confidenceLowThreshold  = 0.5
	confidenceHighBonus     = 10
	confidenceLowPenalty    = 10
)

// Weighted fraud-phrase list; the per-description score is the capped
// sum of matched weights.
var fraudPhrases = []struct {
	phrase string
	weight float64
}{
	{"total loss", 0.30},
	{"cash only", 0.35},
	{"paid in cash", 0.30},
	{"no receipt", 0.30},
	{"lost the receipt", 0.30},
	{"no witnesses", 0.30},
	{"stolen", 0.25},
	{"write off", 0.25},
	{"act fast", 0.35},
	{"urgent", 0.20},
	{"brand new", 0.20},
	{"immediately", 0.15},
}

type integrityFindings struct {
	timelineConsistent bool
	timelineIssues     []string
	patternScore       float64
	confidence         domain.ConfidenceResult
}

func (e *Engine) scoreIntegrity(ctx context.Context, req domain.ClaimRequest) (subScore, integrityFindings) {
	var codes []domain.ReasonCode
	var flags []string
	var signals []domain.RiskSignal

	score := integrityBaseline

	consistent, issues := analyzeTimeline(req.Timeline)
	if consistent {
		score += timelineConsistentBonus
	} else {
		score -= timelineInconsistentPenalty
		codes = append(codes, domain.ReasonIntegrityTimelineInconsistent)
		flags = append(flags, issues...)
	}
	timelineRisk := 0.05
	var timelineCodes []domain.ReasonCode
	if !consistent {
		timelineRisk = 0.6
		timelineCodes = []domain.ReasonCode{domain.ReasonIntegrityTimelineInconsistent}
	}
	signals = append(signals, domain.NewRiskSignal(
		domain.SignalIntegrityTimeline,
		timelineRisk,
		domain.SignalSourceRules,
		timelineCodes,
		map[string]any{"event_count": len(req.Timeline), "issues": issues},
	))

	patternScore := fraudPatternScore(req.Description)
	var patternCodes []domain.ReasonCode
	switch {
	case patternScore > fraudPatternHighThreshold:
		score -= fraudPatternHighPenalty
		patternCodes = []domain.ReasonCode{domain.ReasonIntegrityFraudPatternHigh}
		flags = append(flags, "description matches known fraud language")
	case patternScore > fraudPatternMediumThreshold:
		score -= fraudPatternMediumPenalty
		patternCodes = []domain.ReasonCode{domain.ReasonIntegrityFraudPatternMedium}
		flags = append(flags, "description partially matches fraud language")
	default:
		score += fraudPatternCleanBonus
	}
	codes = append(codes, patternCodes...)
	signals = append(signals, domain.NewRiskSignal(
		domain.SignalIntegrityFraudPattern,
		patternScore,
		domain.SignalSourceRules,
		patternCodes,
		map[string]any{"pattern_score": patternScore},
	))

	confidence := e.scoreConfidence(ctx, req)
	var confidenceCodes []domain.ReasonCode
	if confidence.Confidence > confidenceHighThreshold {
		score += confidenceHighBonus
	} else if confidence.Confidence < confidenceLowThreshold {
		score -= confidenceLowPenalty
		confidenceCodes = []domain.ReasonCode{domain.ReasonIntegrityLLMConfidenceLow}
		flags = append(flags, "low description confidence")
	}
	codes = append(codes, confidenceCodes...)
	confidenceSource := domain.SignalSourceAI
	if confidence.Provider == domain.ConfidenceProviderDeterministic {
		confidenceSource = domain.SignalSourceRules
	}
	signals = append(signals, domain.NewRiskSignal(
		domain.SignalIntegrityDescConfidence,
		1-confidence.Confidence,
		confidenceSource,
		confidenceCodes,
		map[string]any{"provider": confidence.Provider, "reason": confidence.Reason},
	))

	if e.amount != nil {
		if ruling, ok := e.amount.Evaluate(ctx, req.ClaimType, req.ClaimAmount); ok {
			score -= ruling.Penalty
			codes = append(codes, ruling.Code)
			flags = append(flags, fmt.Sprintf("claim amount flagged by %s rule", ruling.Source))
		}
	}

	return subScore{
		score:   clampScore(score),
		codes:   codes,
		signals: signals,
		flags:   flags,
	}, integrityFindings{
		timelineConsistent: consistent,
		timelineIssues:     issues,
		patternScore:       patternScore,
		confidence:         confidence,
	}
}

func (e *Engine) scoreConfidence(ctx context.Context, req domain.ClaimRequest) domain.ConfidenceResult {
	input := domain.ConfidenceInput{
		ClaimType:     req.ClaimType,
		ClaimAmount:   req.ClaimAmount,
		Description:   req.Description,
		TimelineCount: len(req.Timeline),
		EvidenceCount: len(req.Evidence),
	}
	if e.confidence == nil {
		return domain.ConfidenceResult{
			Version:    domain.ConfidenceResultVersion,
			Provider:   domain.ConfidenceProviderDeterministic,
			Confidence: 0.5,
			Reason:     domain.ConfidenceReasonDeterministicFallback,
		}
	}
	return e.confidence.Score(ctx, input)
}

// analyzeTimeline flags two kinds of inconsistency: events reported out
// of chronological order, and "impossible travel" between consecutive
// chronological events in different cities less than 30 minutes apart.
func analyzeTimeline(events []domain.TimelineEvent) (bool, []string) {
	if len(events) < 2 {
		return true, nil
	}
	var issues []string

	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			issues = append(issues, fmt.Sprintf(
				"timeline out of order: %q reported after %q but timestamped earlier",
				events[i].Event, events[i-1].Event))
		}
	}

	ordered := make([]domain.TimelineEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	for i := 1; i < len(ordered); i++ {
		prev, curr := ordered[i-1], ordered[i]
		if sameCity(prev.Location, curr.Location) {
			continue
		}
		if curr.Timestamp.Sub(prev.Timestamp) < impossibleTravelWindow {
			issues = append(issues, fmt.Sprintf(
				"impossible travel: %q (%s) to %q (%s) in under 30 minutes",
				prev.Event, prev.Location, curr.Event, curr.Location))
		}
	}
	return len(issues) == 0, issues
}

func sameCity(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		// Missing locations cannot establish travel.
		return true
	}
	return a == b
}

func fraudPatternScore(description string) float64 {
	desc := strings.ToLower(description)
	score := 0.0
	for _, p := range fraudPhrases {
		if strings.Contains(desc, p.phrase) {
			score += p.weight
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}
