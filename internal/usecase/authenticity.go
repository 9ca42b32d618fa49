package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"claimtrust/internal/domain"
)

const (
	authenticityBaseline   = 50
	authenticityNoEvidence = 60
	authenticityFakeFloor  = 10

	deepfakeCleanBonus          = 20
	deepfakeUnavailablePenalty  = 10
	metadataConsistentBonus     = 20
	metadataInconsistentPenalty = 15
	anchorPlaceholderBonus      = 10
	evidenceQuantityBonus       = 10
	evidenceQuantityMin         = 3
)

type authenticityFindings struct {
	deepfakeDetected bool
	mediaChecked     int
}

func (e *Engine) scoreAuthenticity(ctx context.Context, req domain.ClaimRequest) (subScore, authenticityFindings) {
	// Claims may legitimately carry no evidence; score neutral-low and
	// skip every further check.
	if len(req.Evidence) == 0 {
		return subScore{
			score: authenticityNoEvidence,
			codes: []domain.ReasonCode{domain.ReasonEvidenceNoneProvided},
		}, authenticityFindings{}
	}

	var codes []domain.ReasonCode
	var flags []string
	var signals []domain.RiskSignal

	score := authenticityBaseline

	media := mediaEvidence(req.Evidence)
	verdicts := e.detectAll(ctx, media)

	fakes, unknowns := 0, 0
	for _, v := range verdicts {
		switch v.Verdict {
		case domain.DeepfakeVerdictFake:
			fakes++
		case domain.DeepfakeVerdictUnknown:
			unknowns++
		}
	}

	anyFake := fakes > 0
	allUnknown := len(verdicts) > 0 && unknowns == len(verdicts)

	deepfakeRisk := 0.05
	var deepfakeCodes []domain.ReasonCode
	switch {
	case anyFake:
		deepfakeCodes = []domain.ReasonCode{domain.ReasonEvidenceDeepfakeDetected}
		deepfakeRisk = 0.95
		flags = append(flags, "deepfake detected in submitted media")
	case allUnknown:
		score -= deepfakeUnavailablePenalty
		deepfakeCodes = []domain.ReasonCode{domain.ReasonEvidenceDeepfakeUnavailable}
		deepfakeRisk = 0.45
		flags = append(flags, "deepfake screening unavailable for submitted media")
	default:
		score += deepfakeCleanBonus
	}
	codes = append(codes, deepfakeCodes...)
	signals = append(signals, domain.NewRiskSignal(
		domain.SignalEvidenceDeepfake,
		deepfakeRisk,
		domain.SignalSourceProvider,
		deepfakeCodes,
		map[string]any{"media_checked": len(verdicts), "fake": fakes, "unknown": unknowns},
	))

	metadataOK := metadataConsistent(req)
	var metadataCodes []domain.ReasonCode
	metadataRisk := 0.1
	if metadataOK {
		score += metadataConsistentBonus
	} else {
		score -= metadataInconsistentPenalty
		metadataCodes = []domain.ReasonCode{domain.ReasonEvidenceMetadataInconsistent}
		metadataRisk = 0.6
		flags = append(flags, "evidence uploaded before the claimed incident began")
	}
	codes = append(codes, metadataCodes...)
	signals = append(signals, domain.NewRiskSignal(
		domain.SignalEvidenceMetadata,
		metadataRisk,
		domain.SignalSourceRules,
		metadataCodes,
		map[string]any{"evidence_count": len(req.Evidence)},
	))

	// Anchor verification is a placeholder until chain anchoring ships.
	score += anchorPlaceholderBonus
	if len(req.Evidence) >= evidenceQuantityMin {
		score += evidenceQuantityBonus
	}

	score = clampScore(score)
	if anyFake {
		// Hard floor: a confirmed fake is never offset by bonuses.
		score = authenticityFakeFloor
	}

	return subScore{
		score:   score,
		codes:   codes,
		signals: signals,
		flags:   flags,
	}, authenticityFindings{deepfakeDetected: anyFake, mediaChecked: len(verdicts)}
}

// detectAll fans deepfake checks out across media items with a bounded
// worker pool and joins before returning. Each check absorbs its own
// failures, so the join never fails partially.
func (e *Engine) detectAll(ctx context.Context, media []domain.EvidenceItem) []domain.DeepfakeResult {
	if len(media) == 0 {
		return nil
	}
	results := make([]domain.DeepfakeResult, len(media))

	workers := e.deepfakeWorkers
	if workers <= 0 {
		workers = defaultDeepfakeWorkers
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, item := range media {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, url string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = e.detectOne(ctx, url)
		}(i, item.URL)
	}
	wg.Wait()
	return results
}

func (e *Engine) detectOne(ctx context.Context, url string) domain.DeepfakeResult {
	if e.deepfake == nil {
		return domain.DeepfakeResult{
			Verdict:  domain.DeepfakeVerdictUnknown,
			Provider: domain.DeepfakeProviderNotConfigured,
		}
	}
	return e.deepfake.Detect(ctx, url)
}

func mediaEvidence(items []domain.EvidenceItem) []domain.EvidenceItem {
	var media []domain.EvidenceItem
	for _, item := range items {
		mt := strings.ToLower(item.MediaType)
		if strings.HasPrefix(mt, "image") || strings.HasPrefix(mt, "video") {
			media = append(media, item)
		}
	}
	return media
}

// metadataConsistent checks that no evidence upload precedes the
// earliest timeline event. Items without an upload timestamp, and
// claims without a timeline, pass by default.
func metadataConsistent(req domain.ClaimRequest) bool {
	earliest, ok := earliestEvent(req.Timeline)
	if !ok {
		return true
	}
	for _, item := range req.Evidence {
		if item.UploadedAt != nil && item.UploadedAt.Before(earliest) {
			return false
		}
	}
	return true
}

func earliestEvent(events []domain.TimelineEvent) (time.Time, bool) {
	if len(events) == 0 {
		return time.Time{}, false
	}
	earliest := events[0].Timestamp
	for _, ev := range events[1:] {
		if ev.Timestamp.Before(earliest) {
			earliest = ev.Timestamp
		}
	}
	return earliest, true
}
