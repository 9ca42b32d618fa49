package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"claimtrust/internal/domain"
)

// ClaimsService fronts the scoring engine with persistence: scored
// responses are saved as immutable audit records, with a reviewer
// status overlay patched separately.
type ClaimsService struct {
	engine *Engine
	store  ClaimStore
	now    func() time.Time
}

func NewClaimsService(engine *Engine, store ClaimStore, now func() time.Time) *ClaimsService {
	if now == nil {
		now = time.Now
	}
	return &ClaimsService{engine: engine, store: store, now: now}
}

// Verify scores the claim and persists the result. Persistence is best
// effort: a store failure logs and still returns the scored response,
// because the caller's claim pipeline must not stall on storage.
func (s *ClaimsService) Verify(ctx context.Context, req domain.ClaimRequest) domain.ClaimVerifyResponse {
	resp := s.engine.VerifyClaim(ctx, req)
	if s.store != nil {
		now := s.now()
		record := domain.ClaimRecord{
			ClaimID:   resp.ClaimID,
			UserID:    req.UserID,
			ClaimType: req.ClaimType,
			Response:  resp,
			Status:    domain.ReviewStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.Save(ctx, record); err != nil {
			log.Printf("persist claim %s failed: %v", resp.ClaimID, err)
		}
	}
	return resp
}

// Get returns the stored record; scoring fields are returned unchanged
// from the original pass.
func (s *ClaimsService) Get(ctx context.Context, claimID string) (*domain.ClaimRecord, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.Load(ctx, claimID)
}

// SetStatus patches the reviewer overlay without touching the scoring
// record.
func (s *ClaimsService) SetStatus(ctx context.Context, claimID string, status domain.ReviewStatus, reviewer string) error {
	if !status.Valid() || status == domain.ReviewStatusPending {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	return s.store.SetStatus(ctx, claimID, status, reviewer)
}
