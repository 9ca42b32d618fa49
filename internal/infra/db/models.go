package db

import "time"

// ClaimModel stores one scored claim. ResponseJSON holds the full
// immutable ClaimVerifyResponse; the status columns are the reviewer
// overlay and are the only mutable fields after insert.
type ClaimModel struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	UserID         string    `gorm:"index;not null"`
	ClaimType      string    `gorm:"index;not null"`
	TrustScore     int       `gorm:"not null"`
	Recommendation string    `gorm:"not null"`
	ResponseJSON   []byte    `gorm:"type:jsonb;not null"`
	Status         string    `gorm:"index;not null"`
	Reviewer       string
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (ClaimModel) TableName() string {
	return "claims"
}
