package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Well-known category slugs. Assets are classified into one of these
// buckets; the import flow files brokerage holdings under investments.
const (
	CategoryCash           = "cash"
	CategoryInvestments    = "investments"
	CategoryRealEstate     = "real-estate"
	CategoryCryptocurrency = "cryptocurrency"
	CategoryDebt           = "debt"
)

// Category represents a named bucket assets are classified into.
// Categories are seeded at startup and looked up by slug.
type Category struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	Slug string    `db:"slug" json:"slug"`
	Icon string    `db:"icon" json:"icon"`
}

// Validate ensures the category adheres to domain rules
func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("category name cannot be empty")
	}
	if c.Slug == "" {
		return errors.New("category slug cannot be empty")
	}
	return nil
}
