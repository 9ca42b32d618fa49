package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"claimtrust/internal/domain"
	"claimtrust/internal/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClaimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(store *Store) *ClaimRepository {
	if store == nil {
		return &ClaimRepository{}
	}
	return &ClaimRepository{db: store.DB}
}

func (r *ClaimRepository) Load(ctx context.Context, claimID string) (*domain.ClaimRecord, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model ClaimModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", claimID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}

	var resp domain.ClaimVerifyResponse
	if err := json.Unmarshal(model.ResponseJSON, &resp); err != nil {
		return nil, fmt.Errorf("decode stored claim %s: %w", claimID, err)
	}
	return &domain.ClaimRecord{
		ClaimID:   model.ID,
		UserID:    model.UserID,
		ClaimType: domain.ClaimType(model.ClaimType),
		Response:  resp,
		Status:    domain.ReviewStatus(model.Status),
		Reviewer:  model.Reviewer,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func (r *ClaimRepository) Save(ctx context.Context, record domain.ClaimRecord) error {
	if r.db == nil {
		return errDBUnavailable
	}
	responseJSON, err := json.Marshal(record.Response)
	if err != nil {
		return fmt.Errorf("encode claim %s: %w", record.ClaimID, err)
	}
	model := ClaimModel{
		ID:             record.ClaimID,
		UserID:         record.UserID,
		ClaimType:      string(record.ClaimType),
		TrustScore:     record.Response.TrustScore,
		Recommendation: string(record.Response.Recommendation),
		ResponseJSON:   responseJSON,
		Status:         string(record.Status),
		Reviewer:       record.Reviewer,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

func (r *ClaimRepository) SetStatus(ctx context.Context, claimID string, status domain.ReviewStatus, reviewer string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).
		Model(&ClaimModel{}).
		Where("id = ?", claimID).
		Updates(map[string]any{
			"status":   string(status),
			"reviewer": reviewer,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrClaimNotFound
	}
	return nil
}

var _ usecase.ClaimStore = (*ClaimRepository)(nil)
