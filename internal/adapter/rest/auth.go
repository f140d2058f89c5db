package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Authenticator resolves the authenticated user identity of a request.
// Session management itself belongs to the auth provider in front of
// this server; the backend only consumes the result.
type Authenticator interface {
	UserFromRequest(r *http.Request) (uuid.UUID, error)
}

// GatewayAuthenticator trusts the authentication gateway deployed in
// front of the server: it validates the shared bearer token and reads
// the user id the gateway injects into the X-User-Id header.
type GatewayAuthenticator struct {
	APIToken string
}

// UserFromRequest validates the bearer token and parses the user id.
func (a GatewayAuthenticator) UserFromRequest(r *http.Request) (uuid.UUID, error) {
	if r.Header.Get("Authorization") != "Bearer "+a.APIToken {
		return uuid.Nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(r.Header.Get("X-User-Id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id header: %w", err)
	}
	return userID, nil
}

type contextKey string

const userIDKey contextKey = "userID"

// requireUser authenticates the request and stores the user id in the
// request context. Unauthenticated requests get 401.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.Auth.UserFromRequest(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom reads the authenticated user id stored by requireUser.
func userFrom(ctx context.Context) uuid.UUID {
	userID, _ := ctx.Value(userIDKey).(uuid.UUID)
	return userID
}
