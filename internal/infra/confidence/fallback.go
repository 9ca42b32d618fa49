package confidence

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"claimtrust/internal/domain"
)

// Fallback confidence lands in [0.45, 0.95): reproducible for identical
// input, and never signaling total certainty in either direction.
const (
	fallbackFloor = 0.45
	fallbackSpan  = 0.50

	fallbackDescriptionLen = 200
)

// Fallback derives a deterministic confidence from the claim metadata
// alone. Identical input always yields the identical score.
func Fallback(input domain.ConfidenceInput) domain.ConfidenceResult {
	desc := input.Description
	if len(desc) > fallbackDescriptionLen {
		desc = desc[:fallbackDescriptionLen]
	}
	amount := ""
	if input.ClaimAmount != nil {
		amount = fmt.Sprintf("%.2f", *input.ClaimAmount)
	}
	seed := fmt.Sprintf("%s|%s|%s|%d|%d",
		input.ClaimType, amount, desc, input.TimelineCount, input.EvidenceCount)

	sum := sha256.Sum256([]byte(seed))

	return domain.ConfidenceResult{
		Version:    domain.ConfidenceResultVersion,
		Provider:   domain.ConfidenceProviderDeterministic,
		Confidence: fallbackFloor + seedRatio(sum[:])*fallbackSpan,
		Reason:     domain.ConfidenceReasonDeterministicFallback,
	}
}

// seedRatio maps a digest prefix into [0, 1). The 32-bit prefix over
// 2^32 keeps the ratio strictly below 1 even for an all-ones digest,
// so the confidence ceiling stays exclusive.
func seedRatio(digest []byte) float64 {
	return float64(binary.BigEndian.Uint32(digest)) / float64(1<<32)
}
