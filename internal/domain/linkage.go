package domain

import "time"

type AnchorStatus string

// This service only ever emits "skipped"; "pending" and "anchored" are
// reserved contract values for when chain anchoring ships, so consumers
// can branch on them today.
const (
	AnchorStatusSkipped AnchorStatus = "skipped"
	AnchorStatusPending AnchorStatus = "pending"
	AnchorStatusDone    AnchorStatus = "anchored"
)

type Anchor struct {
	Status AnchorStatus `json:"status"`
	Chain  string       `json:"chain,omitempty"`
	TxHash string       `json:"tx_hash,omitempty"`
}

const RevocationNotChecked = "not_checked"

// EvidenceLinkage binds one evidence item to its content-addressed proof
// hash. proof_metadata_hash is a pure function of the declared fields;
// server-generated timestamps never enter the hash.
type EvidenceLinkage struct {
	URL               string     `json:"url"`
	MediaType         string     `json:"media_type"`
	UploadedAt        *time.Time `json:"uploaded_at,omitempty"`
	ProofMetadataHash string     `json:"proof_metadata_hash"`
	RevocationCheck   string     `json:"revocation_check"`
	Anchor            Anchor     `json:"anchor"`
}
