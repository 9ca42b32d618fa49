package domain

import "time"

type ClaimType string

const (
	ClaimTypeAutoInsurance   ClaimType = "auto_insurance"
	ClaimTypeRefund          ClaimType = "refund"
	ClaimTypeAgeVerification ClaimType = "age_verification"
	ClaimTypeIdentityCheck   ClaimType = "identity_check"
)

func (t ClaimType) Valid() bool {
	switch t {
	case ClaimTypeAutoInsurance, ClaimTypeRefund, ClaimTypeAgeVerification, ClaimTypeIdentityCheck:
		return true
	default:
		return false
	}
}

// Credential identifiers a claimant may hold. The identity sub-scorer
// matches on these exact values.
const (
	CredentialVerifiedHuman   = "verified_human"
	CredentialGovernmentID    = "government_id"
	CredentialAgeVerification = "age_verification"
	CredentialLocation        = "location"
)

type TimelineEvent struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
}

type EvidenceItem struct {
	MediaType  string         `json:"media_type"`
	URL        string         `json:"url"`
	UploadedAt *time.Time     `json:"uploaded_at,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ClaimRequest is the immutable input to one scoring pass.
type ClaimRequest struct {
	UserID          string          `json:"user_id"`
	ClaimType       ClaimType       `json:"claim_type"`
	ClaimAmount     *float64        `json:"claim_amount,omitempty"`
	Description     string          `json:"description"`
	Timeline        []TimelineEvent `json:"timeline,omitempty"`
	Evidence        []EvidenceItem  `json:"evidence,omitempty"`
	UserCredentials []string        `json:"user_credentials,omitempty"`
}

func (r ClaimRequest) HasCredential(name string) bool {
	for _, c := range r.UserCredentials {
		if c == name {
			return true
		}
	}
	return false
}
