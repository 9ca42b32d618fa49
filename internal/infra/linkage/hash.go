package linkage

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"claimtrust/internal/domain"
)

// ComputeProofMetadataHash digests the declared evidence fields for
// content-addressed audit linkage. Server-generated timestamps are
// deliberately excluded from the input so the hash is idempotent.
func ComputeProofMetadataHash(url, mediaType string, uploadedAt *time.Time, metadata map[string]any) (string, error) {
	var uploaded any
	if uploadedAt != nil {
		uploaded = uploadedAt.UTC().Format(time.RFC3339Nano)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	canonical, err := Canonicalize(map[string]any{
		"url":         url,
		"media_type":  mediaType,
		"uploaded_at": uploaded,
		"metadata":    metadata,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// BuildEvidenceLinkage assembles the linkage record for one evidence
// item. Revocation checking and chain anchoring are surfaced as
// placeholders only; anchoring mechanics live outside this service.
func BuildEvidenceLinkage(item domain.EvidenceItem) (domain.EvidenceLinkage, error) {
	hash, err := ComputeProofMetadataHash(item.URL, item.MediaType, item.UploadedAt, item.Metadata)
	if err != nil {
		return domain.EvidenceLinkage{}, err
	}
	return domain.EvidenceLinkage{
		URL:               item.URL,
		MediaType:         item.MediaType,
		UploadedAt:        item.UploadedAt,
		ProofMetadataHash: hash,
		RevocationCheck:   domain.RevocationNotChecked,
		Anchor:            domain.Anchor{Status: domain.AnchorStatusSkipped},
	}, nil
}
