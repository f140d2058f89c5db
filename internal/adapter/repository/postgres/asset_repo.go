package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// Create inserts a new asset record
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (
			id, user_id, name, value, description, location,
			acquisition_date, acquisition_value, category_id,
			is_liability, metadata, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.UserID,
		asset.Name,
		asset.Value,
		asset.Description,
		asset.Location,
		asset.AcquisitionDate,
		asset.AcquisitionValue,
		asset.CategoryID,
		asset.IsLiability,
		asset.Metadata,
		asset.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// GetByID retrieves an asset by its ID
func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `
		SELECT id, user_id, name, value, description, location,
		       acquisition_date, acquisition_value, category_id,
		       is_liability, metadata, created_at
		FROM assets
		WHERE id = $1
	`

	var asset domain.Asset
	if err := r.db.GetContext(ctx, &asset, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}

	return &asset, nil
}

// ListByUser retrieves all assets owned by the given user
func (r *assetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Asset, error) {
	query := `
		SELECT id, user_id, name, value, description, location,
		       acquisition_date, acquisition_value, category_id,
		       is_liability, metadata, created_at
		FROM assets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	assets := make([]*domain.Asset, 0)
	if err := r.db.SelectContext(ctx, &assets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	return assets, nil
}

// Delete removes an asset owned by userID. The owner filter is part of
// the statement, so deleting another user's asset reports not found.
func (r *assetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM assets WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrAssetNotFound
	}

	return nil
}
