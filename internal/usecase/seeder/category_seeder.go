package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// Fixed UUIDs for the seeded categories so lookups and references stay
// stable across environments.
var (
	CAT_CASH           = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	CAT_INVESTMENTS    = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	CAT_REAL_ESTATE    = uuid.MustParse("00000000-0000-0000-0000-000000000103")
	CAT_CRYPTOCURRENCY = uuid.MustParse("00000000-0000-0000-0000-000000000104")
	CAT_DEBT           = uuid.MustParse("00000000-0000-0000-0000-000000000105")
)

// CategorySeeder ensures the well-known asset categories exist
type CategorySeeder struct {
	repo domain.CategoryRepository
}

// NewCategorySeeder creates a new CategorySeeder instance
func NewCategorySeeder(repo domain.CategoryRepository) *CategorySeeder {
	return &CategorySeeder{
		repo: repo,
	}
}

// Seed ensures all well-known categories exist in the database
// If a category doesn't exist, it creates it
func (s *CategorySeeder) Seed(ctx context.Context) error {
	categories := []domain.Category{
		{ID: CAT_CASH, Name: "Cash", Slug: domain.CategoryCash, Icon: "DollarSign"},
		{ID: CAT_INVESTMENTS, Name: "Investments", Slug: domain.CategoryInvestments, Icon: "Landmark"},
		{ID: CAT_REAL_ESTATE, Name: "Real Estate", Slug: domain.CategoryRealEstate, Icon: "Home"},
		{ID: CAT_CRYPTOCURRENCY, Name: "Cryptocurrency", Slug: domain.CategoryCryptocurrency, Icon: "Coins"},
		{ID: CAT_DEBT, Name: "Debt", Slug: domain.CategoryDebt, Icon: "CreditCard"},
	}

	for _, category := range categories {
		// Try to get the category by ID
		_, err := s.repo.GetByID(ctx, category.ID)
		if err != nil {
			// Category doesn't exist, create it
			record := category

			// Validate before creating
			if err := record.Validate(); err != nil {
				return err
			}

			if err := s.repo.Create(ctx, &record); err != nil {
				return err
			}
		}
		// If category exists, no action needed
	}

	return nil
}
