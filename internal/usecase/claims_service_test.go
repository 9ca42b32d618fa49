package usecase

import (
	"context"
	"errors"
	"testing"

	"claimtrust/internal/domain"
)

type fakeStore struct {
	records map[string]domain.ClaimRecord
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]domain.ClaimRecord{}}
}

func (s *fakeStore) Load(ctx context.Context, claimID string) (*domain.ClaimRecord, error) {
	record, ok := s.records[claimID]
	if !ok {
		return nil, domain.ErrClaimNotFound
	}
	return &record, nil
}

func (s *fakeStore) Save(ctx context.Context, record domain.ClaimRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[record.ClaimID] = record
	return nil
}

func (s *fakeStore) SetStatus(ctx context.Context, claimID string, status domain.ReviewStatus, reviewer string) error {
	record, ok := s.records[claimID]
	if !ok {
		return domain.ErrClaimNotFound
	}
	record.Status = status
	record.Reviewer = reviewer
	s.records[claimID] = record
	return nil
}

func newTestService(store ClaimStore) *ClaimsService {
	engine := NewEngine(EngineDeps{Now: testClock(), NewClaimID: fixedClaimID})
	return NewClaimsService(engine, store, testClock())
}

func testRequest() domain.ClaimRequest {
	return domain.ClaimRequest{
		UserID:          "user-42",
		ClaimType:       domain.ClaimTypeRefund,
		Description:     "duplicate charge on the same order",
		UserCredentials: []string{domain.CredentialVerifiedHuman},
	}
}

func TestVerify_PersistsPendingRecord(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	resp := service.Verify(context.Background(), testRequest())
	record, ok := store.records[resp.ClaimID]
	if !ok {
		t.Fatalf("record not persisted for %s", resp.ClaimID)
	}
	if record.Status != domain.ReviewStatusPending {
		t.Fatalf("status = %s, want pending", record.Status)
	}
	if record.UserID != "user-42" {
		t.Fatalf("user id = %s", record.UserID)
	}
	if record.Response.TrustScore != resp.TrustScore {
		t.Fatalf("stored trust score %d != returned %d", record.Response.TrustScore, resp.TrustScore)
	}
}

func TestVerify_StoreFailureStillReturnsResponse(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("connection refused")
	service := newTestService(store)

	resp := service.Verify(context.Background(), testRequest())
	if resp.ClaimID == "" || resp.Recommendation == "" {
		t.Fatalf("scoring response must survive a store failure: %+v", resp)
	}
}

func TestVerify_NilStore(t *testing.T) {
	service := newTestService(nil)
	resp := service.Verify(context.Background(), testRequest())
	if resp.ClaimID == "" {
		t.Fatalf("expected scored response without a store")
	}
	if _, err := service.Get(context.Background(), resp.ClaimID); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Get without store: %v", err)
	}
}

func TestSetStatus_ReviewerOverlayDoesNotTouchScoring(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	resp := service.Verify(context.Background(), testRequest())

	if err := service.SetStatus(context.Background(), resp.ClaimID, domain.ReviewStatusApproved, "reviewer-9"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	record, err := service.Get(context.Background(), resp.ClaimID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if record.Status != domain.ReviewStatusApproved || record.Reviewer != "reviewer-9" {
		t.Fatalf("overlay not applied: %+v", record)
	}
	if record.Response.TrustScore != resp.TrustScore || record.Response.Recommendation != resp.Recommendation {
		t.Fatalf("scoring fields changed by status update")
	}
}

func TestSetStatus_RejectsInvalidStatus(t *testing.T) {
	service := newTestService(newFakeStore())
	for _, status := range []domain.ReviewStatus{"", "escalated", domain.ReviewStatusPending} {
		err := service.SetStatus(context.Background(), "any", status, "reviewer")
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Fatalf("SetStatus(%q) = %v, want ErrInvalidStatus", status, err)
		}
	}
}

func TestSetStatus_UnknownClaim(t *testing.T) {
	service := newTestService(newFakeStore())
	err := service.SetStatus(context.Background(), "missing", domain.ReviewStatusRejected, "reviewer")
	if !errors.Is(err, domain.ErrClaimNotFound) {
		t.Fatalf("expected ErrClaimNotFound, got %v", err)
	}
}
