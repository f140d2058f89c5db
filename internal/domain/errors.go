package domain

import "errors"

// Error taxonomy for the account-linking and import flows. Handlers map
// these onto redirect flags or HTTP status codes; per-holding insert
// failures are logged and skipped rather than surfaced.
var (
	// ErrMissingUserID is returned when the linking callback arrives
	// without a user identifier.
	ErrMissingUserID = errors.New("missing user id")

	// ErrConnectionFailed is returned when the linking callback reports
	// an unsuccessful connection.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUserMismatch is returned when the callback's user id does not
	// match the authenticated session identity.
	ErrUserMismatch = errors.New("user mismatch")

	// ErrCategoryNotFound is returned when a category lookup by slug
	// finds no row.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrAssetNotFound is returned when an asset does not exist or is
	// not owned by the requesting user.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidAsset wraps asset validation failures so transport
	// code can tell them apart from storage errors.
	ErrInvalidAsset = errors.New("invalid asset")

	// ErrNoRedirectURI is returned when the linking service's login
	// response carries no redirect URI.
	ErrNoRedirectURI = errors.New("no redirect URI returned from linking service")

	// ErrExternalService wraps non-2xx responses from the external
	// linking service. Fatal to the current operation; never retried.
	ErrExternalService = errors.New("external service error")
)
