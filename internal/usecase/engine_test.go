package usecase

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"claimtrust/internal/domain"
)

type stubConfidence struct {
	result domain.ConfidenceResult
}

func (s stubConfidence) Score(ctx context.Context, input domain.ConfidenceInput) domain.ConfidenceResult {
	return s.result
}

type stubDeepfake struct {
	byURL    map[string]domain.DeepfakeResult
	fallback domain.DeepfakeResult
}

func (s stubDeepfake) Detect(ctx context.Context, mediaURL string) domain.DeepfakeResult {
	if r, ok := s.byURL[mediaURL]; ok {
		return r
	}
	return s.fallback
}

type stubAmountPolicy struct {
	ruling domain.AmountRuling
	hit    bool
}

func (s stubAmountPolicy) Evaluate(ctx context.Context, claimType domain.ClaimType, amount *float64) (domain.AmountRuling, bool) {
	return s.ruling, s.hit
}

func confidenceAt(v float64) domain.ConfidenceResult {
	return domain.ConfidenceResult{
		Version:    domain.ConfidenceResultVersion,
		Provider:   domain.ConfidenceProviderOpenAI,
		Confidence: v,
		Reason:     domain.ConfidenceReasonProviderScored,
	}
}

// testClock returns a Now func that advances 5ms per call, so
// processing time is deterministic across runs.
func testClock() func() time.Time {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		t := base.Add(time.Duration(calls) * 5 * time.Millisecond)
		calls++
		return t
	}
}

func fixedClaimID() string { return "claim-fixed-0001" }

func consistentTimeline() []domain.TimelineEvent {
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	return []domain.TimelineEvent{
		{Event: "collision", Timestamp: base, Location: "Seattle"},
		{Event: "police report filed", Timestamp: base.Add(2 * time.Hour), Location: "Seattle"},
	}
}

func TestVerifyClaim_VerifiedHumanWithGovernmentID(t *testing.T) {
	engine := NewEngine(EngineDeps{
		Confidence: stubConfidence{result: confidenceAt(0.75)},
		Now:        testClock(),
		NewClaimID: fixedClaimID,
	})
	amount := 12000.0
	resp := engine.VerifyClaim(context.Background(), domain.ClaimRequest{
		UserID:          "user-1",
		ClaimType:       domain.ClaimTypeAutoInsurance,
		ClaimAmount:     &amount,
		Description:     "Minor fender bender at low speed in a parking lot",
		Timeline:        consistentTimeline(),
		UserCredentials: []string{domain.CredentialVerifiedHuman, domain.CredentialGovernmentID},
	})

	if resp.Breakdown.IdentityScore != 70 {
		t.Fatalf("identity = %d, want 70", resp.Breakdown.IdentityScore)
	}
	if resp.Breakdown.IntegrityScore != 90 {
		t.Fatalf("integrity = %d, want 90", resp.Breakdown.IntegrityScore)
	}
	if resp.Breakdown.AuthenticityScore != 60 {
		t.Fatalf("authenticity = %d, want 60", resp.Breakdown.AuthenticityScore)
	}
	if resp.TrustScore != 73 {
		t.Fatalf("trust score = %d, want 73", resp.TrustScore)
	}
	if resp.Recommendation != domain.RecommendationReview {
		t.Fatalf("recommendation = %s, want review", resp.Recommendation)
	}
	if resp.ClaimID != "claim-fixed-0001" {
		t.Fatalf("claim id = %s", resp.ClaimID)
	}
	if resp.EngineVersion != domain.ClaimsEngineVersion {
		t.Fatalf("engine version = %s", resp.EngineVersion)
	}
	want := []domain.ReasonCode{domain.ReasonEvidenceNoneProvided}
	if !reflect.DeepEqual(resp.ReasonCodes, want) {
		t.Fatalf("reason codes = %v, want %v", resp.ReasonCodes, want)
	}
	if !resp.AIAnalysis.TimelineConsistent {
		t.Fatalf("timeline should be consistent")
	}
	if resp.AIAnalysis.DescriptionConfidence != 0.75 {
		t.Fatalf("confidence = %v", resp.AIAnalysis.DescriptionConfidence)
	}
}

func TestVerifyClaim_Deterministic(t *testing.T) {
	req := domain.ClaimRequest{
		UserID:          "user-7",
		ClaimType:       domain.ClaimTypeRefund,
		Description:     "package arrived damaged, no receipt available",
		Timeline:        consistentTimeline(),
		UserCredentials: []string{domain.CredentialVerifiedHuman},
	}
	run := func() domain.ClaimVerifyResponse {
		engine := NewEngine(EngineDeps{
			Confidence: stubConfidence{result: confidenceAt(0.6)},
			Now:        testClock(),
			NewClaimID: fixedClaimID,
		})
		return engine.VerifyClaim(context.Background(), req)
	}
	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different responses:\n%+v\n%+v", first, second)
	}
}

func TestVerifyClaim_NoEvidenceScoresSixty(t *testing.T) {
	engine := NewEngine(EngineDeps{Now: testClock(), NewClaimID: fixedClaimID})
	resp := engine.VerifyClaim(context.Background(), domain.ClaimRequest{
		ClaimType:   domain.ClaimTypeIdentityCheck,
		Description: "routine identity confirmation",
	})
	if resp.Breakdown.AuthenticityScore != 60 {
		t.Fatalf("authenticity = %d, want 60", resp.Breakdown.AuthenticityScore)
	}
	if !containsCode(resp.ReasonCodes, domain.ReasonEvidenceNoneProvided) {
		t.Fatalf("missing EVIDENCE_NONE_PROVIDED in %v", resp.ReasonCodes)
	}
	if resp.AIAnalysis.DeepfakeChecked != 0 {
		t.Fatalf("deepfake checked = %d, want 0", resp.AIAnalysis.DeepfakeChecked)
	}
}

func TestVerifyClaim_FakeEvidenceFloorsAuthenticity(t *testing.T) {
	clean := domain.DeepfakeResult{Verdict: domain.DeepfakeVerdictReal, Provider: "lab"}
	detector := stubDeepfake{
		byURL: map[string]domain.DeepfakeResult{
			"https://media.example/fake.mp4": {Verdict: domain.DeepfakeVerdictFake, Provider: "lab"},
		},
		fallback: clean,
	}
	engine := NewEngine(EngineDeps{
		Confidence: stubConfidence{result: confidenceAt(0.9)},
		Deepfake:   detector,
		Now:        testClock(),
		NewClaimID: fixedClaimID,
	})

	evidence := []domain.EvidenceItem{
		{MediaType: "video/mp4", URL: "https://media.example/fake.mp4"},
	}
	for i := 0; i < 5; i++ {
		evidence = append(evidence, domain.EvidenceItem{
			MediaType: "image/jpeg",
			URL:       "https://media.example/real-" + string(rune('a'+i)) + ".jpg",
		})
	}
	resp := engine.VerifyClaim(context.Background(), domain.ClaimRequest{
		ClaimType:       domain.ClaimTypeAutoInsurance,
		Description:     "vehicle damage after hail storm",
		UserCredentials: []string{domain.CredentialVerifiedHuman},
		Evidence:        evidence,
	})

	if resp.Breakdown.AuthenticityScore != 10 {
		t.Fatalf("authenticity = %d, want hard floor 10", resp.Breakdown.AuthenticityScore)
	}
	if !resp.AIAnalysis.DeepfakeDetected {
		t.Fatalf("deepfake detected flag not set")
	}
	if resp.AIAnalysis.DeepfakeChecked != 6 {
		t.Fatalf("deepfake checked = %d, want 6", resp.AIAnalysis.DeepfakeChecked)
	}
	if !containsCode(resp.ReasonCodes, domain.ReasonEvidenceDeepfakeDetected) {
		t.Fatalf("missing EVIDENCE_DEEPFAKE_DETECTED in %v", resp.ReasonCodes)
	}
}

func TestVerifyClaim_AllUnknownVerdictsPenalized(t *testing.T) {
	engine := NewEngine(EngineDeps{
		Confidence: stubConfidence{result: confidenceAt(0.9)},
		Now:        testClock(),
		NewClaimID: fixedClaimID,
	})
	// No detector configured: every media check resolves to unknown.
	resp := engine.VerifyClaim(context.Background(), domain.ClaimRequest{
		ClaimType:   domain.ClaimTypeAutoInsurance,
		Description: "windshield crack",
		Evidence: []domain.EvidenceItem{
			{MediaType: "image/png", URL: "https://media.example/crack.png"},
		},
	})
	if !containsCode(resp.ReasonCodes, domain.ReasonEvidenceDeepfakeUnavailable) {
		t.Fatalf("missing EVIDENCE_DEEPFAKE_PROVIDER_UNAVAILABLE in %v", resp.ReasonCodes)
	}
	// base 50 - 10 unavailable + 20 metadata + 10 anchor = 70
	if resp.Breakdown.AuthenticityScore != 70 {
		t.Fatalf("authenticity = %d, want 70", resp.Breakdown.AuthenticityScore)
	}
}

func TestVerifyClaim_NonMediaEvidenceSkipsDeepfake(t *testing.T) {
	engine := NewEngine(EngineDeps{Now: testClock(), NewClaimID: fixedClaimID})
	resp := engine.VerifyClaim(context.Background(), domain.ClaimRequest{
		ClaimType:   domain.ClaimTypeRefund,
		Description: "order never arrived",
		Evidence: []domain.EvidenceItem{
			{MediaType: "application/pdf", URL: "https://docs.example/invoice.pdf"},
		},
	})
	if resp.AIAnalysis.DeepfakeChecked != 0 {
		t.Fatalf("deepfake checked = %d, want 0 for non-media evidence", resp.AIAnalysis.DeepfakeChecked)
	}
	if containsCode(resp.ReasonCodes, domain.ReasonEvidenceDeepfakeUnavailable) {
		t.Fatalf("unavailable code must not fire when nothing was scanned")
	}
}

func TestVerifyClaim_AmountRulingPenalizesIntegrity(t *testing.T) {
	policy := stubAmountPolicy{
		ruling: domain.AmountRuling{
			Code:    domain.ReasonIntegrityAmountExcessive,
			Penalty: 20,
			Source:  "builtin",
		},
		hit: true,
	}
	amount := 750000.0
	base := NewEngine(EngineDeps{
		Confidence: stubConfidence{result: confidenceAt(0.75)},
		Now:        testClock(),
		NewClaimID: fixedClaimID,
	})
	withPolicy := NewEngine(EngineDeps{
		Confidence: stubConfidence{result: confidenceAt(0.75)},
		Amount:     policy,
		Now:        testClock(),
		NewClaimID: fixedClaimID,
	})
	req := domain.ClaimRequest{
		ClaimType:       domain.ClaimTypeAutoInsurance,
		ClaimAmount:     &amount,
		Description:     "multi-vehicle collision on the interstate",
		Timeline:        consistentTimeline(),
		UserCredentials: []string{domain.CredentialVerifiedHuman},
	}

	plain := base.VerifyClaim(context.Background(), req)
	flagged := withPolicy.VerifyClaim(context.Background(), req)
	if flagged.Breakdown.IntegrityScore != plain.Breakdown.IntegrityScore-20 {
		t.Fatalf("integrity = %d, want %d", flagged.Breakdown.IntegrityScore, plain.Breakdown.IntegrityScore-20)
	}
	if !containsCode(flagged.ReasonCodes, domain.ReasonIntegrityAmountExcessive) {
		t.Fatalf("missing amount code in %v", flagged.ReasonCodes)
	}
}

func TestVerifyClaim_SignalsSortedByID(t *testing.T) {
	engine := NewEngine(EngineDeps{Now: testClock(), NewClaimID: fixedClaimID})
	resp := engine.VerifyClaim(context.Background(), domain.ClaimRequest{
		ClaimType:   domain.ClaimTypeAutoInsurance,
		Description: "bumper scrape",
		Evidence: []domain.EvidenceItem{
			{MediaType: "image/jpeg", URL: "https://media.example/a.jpg"},
		},
	})
	for i := 1; i < len(resp.RiskSignals); i++ {
		if resp.RiskSignals[i-1].ID > resp.RiskSignals[i].ID {
			t.Fatalf("signals not sorted: %s before %s", resp.RiskSignals[i-1].ID, resp.RiskSignals[i].ID)
		}
	}
	if len(resp.RiskSignals) != 6 {
		t.Fatalf("expected 6 signals, got %d", len(resp.RiskSignals))
	}
}

func TestVerifyClaim_LinkerFailureSkipsItem(t *testing.T) {
	linker := func(item domain.EvidenceItem) (domain.EvidenceLinkage, error) {
		if strings.Contains(item.URL, "bad") {
			return domain.EvidenceLinkage{}, context.DeadlineExceeded
		}
		return domain.EvidenceLinkage{URL: item.URL}, nil
	}
	engine := NewEngine(EngineDeps{Now: testClock(), NewClaimID: fixedClaimID, Linker: linker})
	resp := engine.VerifyClaim(context.Background(), domain.ClaimRequest{
		ClaimType:   domain.ClaimTypeRefund,
		Description: "wrong item shipped",
		Evidence: []domain.EvidenceItem{
			{MediaType: "image/jpeg", URL: "https://media.example/good.jpg"},
			{MediaType: "image/jpeg", URL: "https://media.example/bad.jpg"},
		},
	})
	if len(resp.EvidenceLinkages) != 1 {
		t.Fatalf("expected 1 linkage, got %d", len(resp.EvidenceLinkages))
	}
	if resp.EvidenceLinkages[0].URL != "https://media.example/good.jpg" {
		t.Fatalf("unexpected linkage: %+v", resp.EvidenceLinkages[0])
	}
}

func TestVerifyClaim_TotalOnDegenerateInput(t *testing.T) {
	engine := NewEngine(EngineDeps{Now: testClock(), NewClaimID: fixedClaimID})
	negative := -1e12
	requests := []domain.ClaimRequest{
		{},
		{ClaimType: "unheard_of_type", Description: strings.Repeat("urgent stolen cash only ", 500)},
		{ClaimAmount: &negative, Timeline: []domain.TimelineEvent{{Event: "x"}, {Event: "y"}}},
	}
	for i, req := range requests {
		resp := engine.VerifyClaim(context.Background(), req)
		if resp.TrustScore < 0 || resp.TrustScore > 100 {
			t.Errorf("request %d: trust score %d out of range", i, resp.TrustScore)
		}
		if resp.ReasonCodes == nil {
			t.Errorf("request %d: reason codes must not be nil", i)
		}
		if resp.RedFlags == nil {
			t.Errorf("request %d: red flags must not be nil", i)
		}
		if resp.Recommendation == "" {
			t.Errorf("request %d: missing recommendation", i)
		}
	}
}

func containsCode(codes []domain.ReasonCode, want domain.ReasonCode) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}
