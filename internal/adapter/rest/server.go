package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/asset"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/dashboard"
)

// DashboardPath is the page users land back on after the linking
// callback, with a success or error flag appended.
const DashboardPath = "/dashboard/assets"

// ImportService completes the import half of the linking round trip.
type ImportService interface {
	ImportHoldings(ctx context.Context, userID uuid.UUID) (int, error)
}

// LinkService begins the account-linking handshake.
type LinkService interface {
	CreateUserLink(ctx context.Context, userID uuid.UUID, origin string) (string, error)
}

// AssetService manages manual asset records.
type AssetService interface {
	Create(ctx context.Context, userID uuid.UUID, input asset.CreateAssetInput) (*domain.Asset, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Asset, error)
	Delete(ctx context.Context, userID, assetID uuid.UUID) error
}

// DashboardService computes net-worth summaries.
type DashboardService interface {
	GetSummary(ctx context.Context, userID uuid.UUID) (*dashboard.Summary, error)
}

// Server wires the HTTP surface onto the usecase services
type Server struct {
	Auth         Authenticator
	Importer     ImportService
	Linker       LinkService
	Assets       AssetService
	Dashboard    DashboardService
	CategoryRepo domain.CategoryRepository
}

// NewServer creates a new HTTP server instance
func NewServer(
	auth Authenticator,
	importer ImportService,
	linker LinkService,
	assets AssetService,
	dashboardService DashboardService,
	categoryRepo domain.CategoryRepository,
) *Server {
	return &Server{
		Auth:         auth,
		Importer:     importer,
		Linker:       linker,
		Assets:       assets,
		Dashboard:    dashboardService,
		CategoryRepo: categoryRepo,
	}
}

// Router builds the chi router for the server.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The callback is reached by browser redirect from the external
	// provider; it does its own identity check and always answers with
	// a redirect, never a JSON error.
	r.Get("/api/snaptrade/callback", s.handleCallback)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Post("/api/snaptrade/link", s.handleCreateLink)

		r.Route("/api/assets", func(r chi.Router) {
			r.Get("/", s.handleListAssets)
			r.Post("/", s.handleCreateAsset)
			r.Delete("/{id}", s.handleDeleteAsset)
		})

		r.Get("/api/dashboard/summary", s.handleSummary)
		r.Get("/api/dashboard/allocation", s.handleAllocation)
		r.Get("/api/categories", s.handleListCategories)
	})

	return r
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
