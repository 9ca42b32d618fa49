// Package storemem is the in-memory ClaimStore used in tests and in
// no-db mode.
package storemem

import (
	"context"
	"sync"
	"time"

	"claimtrust/internal/domain"
	"claimtrust/internal/usecase"
)

type Store struct {
	mu      sync.Mutex
	records map[string]domain.ClaimRecord
	now     func() time.Time
}

func New() *Store {
	return &Store{
		records: make(map[string]domain.ClaimRecord),
		now:     time.Now,
	}
}

func (s *Store) Load(_ context.Context, claimID string) (*domain.ClaimRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[claimID]
	if !ok {
		return nil, domain.ErrClaimNotFound
	}
	return &record, nil
}

func (s *Store) Save(_ context.Context, record domain.ClaimRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ClaimID] = record
	return nil
}

func (s *Store) SetStatus(_ context.Context, claimID string, status domain.ReviewStatus, reviewer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[claimID]
	if !ok {
		return domain.ErrClaimNotFound
	}
	record.Status = status
	record.Reviewer = reviewer
	record.UpdatedAt = s.now()
	s.records[claimID] = record
	return nil
}

var _ usecase.ClaimStore = (*Store)(nil)
