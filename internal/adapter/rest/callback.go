package rest

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

// handleCallback completes the external account-linking round trip.
// GET /api/snaptrade/callback?userId=...&accountId=...&success=true&code=...
//
// Preconditions are checked in order: a user id must be present, the
// success flag must be the string "true", and the authenticated session
// identity must equal the supplied user id. Everything after that runs
// under a single top-level error catch that turns any failure into a
// generic error redirect; the response is always a redirect back to the
// dashboard.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("userId")
	accountID := q.Get("accountId")
	success := q.Get("success")

	// Some providers send an OAuth-style code with no user id; nothing
	// to do with it here beyond noting it happened.
	if code := q.Get("code"); code != "" && userID == "" {
		log.Printf("linking callback carried a code but no userId")
	}

	if userID == "" {
		s.redirectCallback(w, r, "error=missing_user_id")
		return
	}

	if success != "true" {
		s.redirectCallback(w, r, "error=connection_failed")
		return
	}

	err := func() error {
		authID, err := s.Auth.UserFromRequest(r)
		if err != nil {
			return fmt.Errorf("auth error: %w", err)
		}
		if authID.String() != userID {
			return domain.ErrUserMismatch
		}

		imported, err := s.Importer.ImportHoldings(r.Context(), authID)
		if err != nil {
			return err
		}
		log.Printf("imported %d holdings for user %s (account %q)", imported, userID, accountID)
		return nil
	}()
	if err != nil {
		log.Printf("error processing linking callback: %v", err)
		s.redirectCallback(w, r, "error=true&message="+url.QueryEscape(err.Error()))
		return
	}

	s.redirectCallback(w, r, "success=true")
}

// redirectCallback sends the browser back to the dashboard with the
// given query flags.
func (s *Server) redirectCallback(w http.ResponseWriter, r *http.Request, query string) {
	http.Redirect(w, r, DashboardPath+"?"+query, http.StatusFound)
}
