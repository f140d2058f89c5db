package aggregator

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// FallbackLabel buckets assets whose category is missing or unknown.
const FallbackLabel = "Other"

// DefaultColor is assigned to labels absent from the color table.
const DefaultColor = "#6b7280"

// categoryColors is the fixed display color per category slug.
var categoryColors = map[string]string{
	domain.CategoryCash:           "#10b981",
	domain.CategoryInvestments:    "#3b82f6",
	domain.CategoryRealEstate:     "#22c55e",
	domain.CategoryCryptocurrency: "#8b5cf6",
	domain.CategoryDebt:           "#ef4444",
}

// CategoryAggregate is one category's summed value and display color,
// the input shape of the allocation treemap. Derived on every render;
// carries no identity of its own.
type CategoryAggregate struct {
	Label string
	Value decimal.Decimal
	Color string
}

// Aggregate groups a flat asset collection into per-category value sums
// Logic:
//  1. Liabilities are excluded entirely
//  2. Assets without a resolvable category group under FallbackLabel
//  3. Sums are plain arithmetic over the value field; all amounts are
//     assumed to share one reporting currency
//
// The result is ordered by descending value for stable output; callers
// must not rely on any particular order.
func Aggregate(assets []*domain.Asset, categories []*domain.Category) []CategoryAggregate {
	slugByID := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		slugByID[category.ID] = category.Slug
	}

	sums := make(map[string]decimal.Decimal)
	for _, asset := range assets {
		if asset.IsLiability {
			continue
		}

		label := FallbackLabel
		if asset.CategoryID != nil {
			if slug, ok := slugByID[*asset.CategoryID]; ok {
				label = slug
			}
		}
		sums[label] = sums[label].Add(asset.Value)
	}

	aggregates := make([]CategoryAggregate, 0, len(sums))
	for label, sum := range sums {
		aggregates = append(aggregates, CategoryAggregate{
			Label: label,
			Value: sum,
			Color: ColorFor(label),
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if !aggregates[i].Value.Equal(aggregates[j].Value) {
			return aggregates[i].Value.GreaterThan(aggregates[j].Value)
		}
		return aggregates[i].Label < aggregates[j].Label
	})
	return aggregates
}

// ColorFor returns the display color for a category label.
func ColorFor(label string) string {
	if color, ok := categoryColors[label]; ok {
		return color
	}
	return DefaultColor
}
