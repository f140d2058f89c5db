package linking

import (
	"context"

	"github.com/google/uuid"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// CallbackPath is the fixed path on our origin the external provider
// redirects back to once the handshake completes.
const CallbackPath = "/api/snaptrade/callback"

// LinkService begins the account-linking handshake with the external
// provider.
type LinkService struct {
	Linking domain.LinkingService
}

// NewLinkService creates a new LinkService instance
func NewLinkService(linking domain.LinkingService) *LinkService {
	return &LinkService{Linking: linking}
}

// CreateUserLink registers the user with the linking provider and
// obtains a one-time redirect URL that starts the handshake
// Logic:
//  1. Register (or re-register) the user
//  2. Request a login redirect URL with the callback set to
//     origin + CallbackPath
//
// Failures surface as-is; the caller presents them and lets the user
// re-attempt. No retry.
func (s *LinkService) CreateUserLink(ctx context.Context, userID uuid.UUID, origin string) (string, error) {
	if err := s.Linking.RegisterUser(ctx, userID.String()); err != nil {
		return "", err
	}

	return s.Linking.LoginRedirect(ctx, userID.String(), origin+CallbackPath)
}
