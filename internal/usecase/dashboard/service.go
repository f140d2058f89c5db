package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// UncategorizedSlug buckets assets that carry no category reference.
const UncategorizedSlug = "uncategorized"

// CategorySummary aggregates one category's assets for the summary view.
type CategorySummary struct {
	Total      decimal.Decimal `json:"total"`
	AssetCount int             `json:"assetCount"`
}

// Summary represents the calculated net worth breakdown
type Summary struct {
	NetWorth         decimal.Decimal            `json:"netWorth"`
	TotalAssets      decimal.Decimal            `json:"totalAssets"`
	TotalLiabilities decimal.Decimal            `json:"totalLiabilities"`
	Categories       map[string]CategorySummary `json:"categories"`
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	AssetRepo    domain.AssetRepository
	CategoryRepo domain.CategoryRepository
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(assetRepo domain.AssetRepository, categoryRepo domain.CategoryRepository) *DashboardService {
	return &DashboardService{
		AssetRepo:    assetRepo,
		CategoryRepo: categoryRepo,
	}
}

// GetSummary calculates the user's net worth
// Logic:
//   - TotalAssets: sum of value over non-liability records
//   - TotalLiabilities: sum of value over liability records
//   - NetWorth: TotalAssets - TotalLiabilities
//   - Categories: per-slug running total (liabilities subtract) and
//     record count, with uncategorized records under their own key
//
// All values are assumed to be in one reporting currency; any display
// conversion happens at render time.
func (s *DashboardService) GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	assets, err := s.AssetRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	categories, err := s.CategoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	slugByID := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		slugByID[category.ID] = category.Slug
	}

	summary := &Summary{
		NetWorth:         decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		Categories:       make(map[string]CategorySummary),
	}

	for _, asset := range assets {
		slug := UncategorizedSlug
		if asset.CategoryID != nil {
			if known, ok := slugByID[*asset.CategoryID]; ok {
				slug = known
			}
		}

		entry := summary.Categories[slug]
		entry.AssetCount++

		if asset.IsLiability {
			summary.TotalLiabilities = summary.TotalLiabilities.Add(asset.Value)
			entry.Total = entry.Total.Sub(asset.Value)
		} else {
			summary.TotalAssets = summary.TotalAssets.Add(asset.Value)
			entry.Total = entry.Total.Add(asset.Value)
		}
		summary.Categories[slug] = entry
	}

	summary.NetWorth = summary.TotalAssets.Sub(summary.TotalLiabilities)
	return summary, nil
}
