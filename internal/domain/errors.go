package domain

import "errors"

var (
	ErrClaimNotFound      = errors.New("claim not found")
	ErrInvalidClaimType   = errors.New("invalid claim type")
	ErrInvalidStatus      = errors.New("invalid review status")
	ErrStoreUnavailable   = errors.New("claim store unavailable")
)
