package domain

import "sort"

// ReasonCode is a stable machine-readable code explaining a scoring
// decision. The set is closed and versioned: codes may be appended in
// later versions but never renamed, removed, or repurposed.
type ReasonCode string

const ReasonCodeRegistryVersion = "reason-codes.v1"

const (
	ReasonIdentityMissingVerifiedHuman  ReasonCode = "IDENTITY_MISSING_VERIFIED_HUMAN"
	ReasonIdentityNoCredentials         ReasonCode = "IDENTITY_NO_CREDENTIALS_PROVIDED"
	ReasonIntegrityTimelineInconsistent ReasonCode = "INTEGRITY_TIMELINE_INCONSISTENT"
	ReasonIntegrityFraudPatternHigh     ReasonCode = "INTEGRITY_FRAUD_PATTERN_HIGH"
	ReasonIntegrityFraudPatternMedium   ReasonCode = "INTEGRITY_FRAUD_PATTERN_MEDIUM"
	ReasonIntegrityLLMConfidenceLow     ReasonCode = "INTEGRITY_LLM_CONFIDENCE_LOW"
	ReasonIntegrityAmountExcessive      ReasonCode = "INTEGRITY_AMOUNT_EXCESSIVE"
	ReasonIntegrityRefundExcessive      ReasonCode = "INTEGRITY_REFUND_EXCESSIVE"
	ReasonIntegrityAmountInvalid        ReasonCode = "INTEGRITY_AMOUNT_INVALID"
	ReasonEvidenceNoneProvided          ReasonCode = "EVIDENCE_NONE_PROVIDED"
	ReasonEvidenceDeepfakeDetected      ReasonCode = "EVIDENCE_DEEPFAKE_DETECTED"
	ReasonEvidenceDeepfakeUnavailable   ReasonCode = "EVIDENCE_DEEPFAKE_PROVIDER_UNAVAILABLE"
	ReasonEvidenceMetadataInconsistent  ReasonCode = "EVIDENCE_METADATA_INCONSISTENT"
)

var registryCodes = map[ReasonCode]struct{}{
	ReasonIdentityMissingVerifiedHuman:  {},
	ReasonIdentityNoCredentials:         {},
	ReasonIntegrityTimelineInconsistent: {},
	ReasonIntegrityFraudPatternHigh:     {},
	ReasonIntegrityFraudPatternMedium:   {},
	ReasonIntegrityLLMConfidenceLow:     {},
	ReasonIntegrityAmountExcessive:      {},
	ReasonIntegrityRefundExcessive:      {},
	ReasonIntegrityAmountInvalid:        {},
	ReasonEvidenceNoneProvided:          {},
	ReasonEvidenceDeepfakeDetected:      {},
	ReasonEvidenceDeepfakeUnavailable:   {},
	ReasonEvidenceMetadataInconsistent:  {},
}

// AllReasonCodes returns the registry set for the current version.
func AllReasonCodes() map[ReasonCode]struct{} {
	out := make(map[ReasonCode]struct{}, len(registryCodes))
	for code := range registryCodes {
		out[code] = struct{}{}
	}
	return out
}

func KnownReasonCode(code ReasonCode) bool {
	_, ok := registryCodes[code]
	return ok
}

// CompareReasonCodes is the registry's total order: plain lexicographic
// byte order. The order is part of the audit contract and must not change.
func CompareReasonCodes(a, b ReasonCode) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// StableSortReasonCodes sorts by the registry order and drops exact
// duplicates. Codes outside the registry are not rejected at runtime;
// they sort by the same order as known codes.
func StableSortReasonCodes(codes []ReasonCode) []ReasonCode {
	if len(codes) == 0 {
		return nil
	}
	seen := make(map[ReasonCode]struct{}, len(codes))
	out := make([]ReasonCode, 0, len(codes))
	for _, code := range codes {
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool {
		return CompareReasonCodes(out[i], out[j]) < 0
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
