package domain

import (
	"context"

	"github.com/google/uuid"
)

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// Create inserts a new asset record
	Create(ctx context.Context, asset *Asset) error

	// GetByID retrieves an asset by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// ListByUser retrieves all assets owned by the given user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Asset, error)

	// Delete removes an asset owned by userID.
	// Returns ErrAssetNotFound if the asset does not exist or belongs
	// to a different user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CategoryRepository defines the interface for category persistence operations
type CategoryRepository interface {
	// Create inserts a new category
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// GetBySlug retrieves a category by its slug string.
	// Returns ErrCategoryNotFound if no category carries the slug.
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	// List retrieves all categories
	List(ctx context.Context) ([]*Category, error)
}

// LinkingService defines the outbound interface to the external
// account-linking provider. Credentials travel with every call; no
// session state is shared between calls.
type LinkingService interface {
	// RegisterUser registers (or re-registers) the user with the
	// linking provider.
	RegisterUser(ctx context.Context, userID string) error

	// LoginRedirect requests a one-time redirect URL that begins the
	// account-linking handshake, returning to redirectURI afterwards.
	LoginRedirect(ctx context.Context, userID, redirectURI string) (string, error)

	// ListAccounts lists the user's linked brokerage accounts.
	ListAccounts(ctx context.Context, userID string) ([]BrokerageAccount, error)

	// ListHoldings lists the holdings of a single brokerage account.
	ListHoldings(ctx context.Context, accountID string) ([]Holding, error)
}
