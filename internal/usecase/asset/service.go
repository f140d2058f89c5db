package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// CreateAssetInput represents the input for recording an asset manually
type CreateAssetInput struct {
	Name             string
	Value            decimal.Decimal
	Description      string
	Location         string
	AcquisitionDate  time.Time
	AcquisitionValue decimal.Decimal
	CategorySlug     string
	IsLiability      bool
	Metadata         domain.AssetMetadata
}

// AssetService handles manual asset management: create, list, delete.
// There is deliberately no update operation; records are immutable once
// created.
type AssetService struct {
	AssetRepo    domain.AssetRepository
	CategoryRepo domain.CategoryRepository
}

// NewAssetService creates a new AssetService instance
func NewAssetService(assetRepo domain.AssetRepository, categoryRepo domain.CategoryRepository) *AssetService {
	return &AssetService{
		AssetRepo:    assetRepo,
		CategoryRepo: categoryRepo,
	}
}

// Create records a new asset owned by userID
// Logic:
//  1. Resolve the category by slug when one is given
//  2. Default the acquisition date to now and the acquisition value to
//     the current value when the form left them blank
//  3. Validate and insert
func (s *AssetService) Create(ctx context.Context, userID uuid.UUID, input CreateAssetInput) (*domain.Asset, error) {
	var categoryID *uuid.UUID
	if input.CategorySlug != "" {
		category, err := s.CategoryRepo.GetBySlug(ctx, input.CategorySlug)
		if err != nil {
			return nil, err
		}
		categoryID = &category.ID
	}

	now := time.Now()
	acquisitionDate := input.AcquisitionDate
	if acquisitionDate.IsZero() {
		acquisitionDate = now
	}
	acquisitionValue := input.AcquisitionValue
	if acquisitionValue.IsZero() {
		acquisitionValue = input.Value
	}

	record := &domain.Asset{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             input.Name,
		Value:            input.Value,
		Description:      input.Description,
		Location:         input.Location,
		AcquisitionDate:  acquisitionDate,
		AcquisitionValue: acquisitionValue,
		CategoryID:       categoryID,
		IsLiability:      input.IsLiability,
		Metadata:         input.Metadata,
		CreatedAt:        now,
	}

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAsset, err)
	}

	if err := s.AssetRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// List retrieves all assets owned by userID.
func (s *AssetService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Asset, error) {
	return s.AssetRepo.ListByUser(ctx, userID)
}

// Delete removes an asset owned by userID. Deleting an asset that does
// not exist, or that belongs to another user, returns ErrAssetNotFound.
func (s *AssetService) Delete(ctx context.Context, userID, assetID uuid.UUID) error {
	return s.AssetRepo.Delete(ctx, userID, assetID)
}
