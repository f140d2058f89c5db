package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/aggregator"
	"github.com/nestfolio/nestfolio-backend/internal/usecase/asset"
)

type createLinkRequest struct {
	Origin string `json:"origin"`
}

// handleCreateLink registers the user with the linking provider and
// answers with the hosted portal URL the frontend should redirect to.
func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	// An empty body is fine; the Origin header covers that case.
	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	origin := req.Origin
	if origin == "" {
		origin = r.Header.Get("Origin")
	}
	if origin == "" {
		respondError(w, http.StatusBadRequest, "origin is required")
		return
	}

	redirectURI, err := s.Linker.CreateUserLink(r.Context(), userID, origin)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to create connection link")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"redirectUri": redirectURI})
}

type createAssetRequest struct {
	Name             string          `json:"name"`
	Value            decimal.Decimal `json:"value"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	AcquisitionDate  string          `json:"acquisitionDate"`
	AcquisitionValue decimal.Decimal `json:"acquisitionValue"`
	Category         string          `json:"category"`
	IsLiability      bool            `json:"isLiability"`
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	var req createAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var acquisitionDate time.Time
	if req.AcquisitionDate != "" {
		parsed, err := time.Parse("2006-01-02", req.AcquisitionDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid acquisition date, expected YYYY-MM-DD")
			return
		}
		acquisitionDate = parsed
	}

	record, err := s.Assets.Create(r.Context(), userID, asset.CreateAssetInput{
		Name:             req.Name,
		Value:            req.Value,
		Description:      req.Description,
		Location:         req.Location,
		AcquisitionDate:  acquisitionDate,
		AcquisitionValue: req.AcquisitionValue,
		CategorySlug:     req.Category,
		IsLiability:      req.IsLiability,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			respondError(w, http.StatusBadRequest, "unknown category")
		case errors.Is(err, domain.ErrInvalidAsset):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to create asset")
		}
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	assets, err := s.Assets.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}
	if assets == nil {
		assets = []*domain.Asset{}
	}

	respondJSON(w, http.StatusOK, assets)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	assetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	if err := s.Assets.Delete(r.Context(), userID, assetID); err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			respondError(w, http.StatusNotFound, "asset not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete asset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	summary, err := s.Dashboard.GetSummary(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

type allocationSlice struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
}

// handleAllocation answers the treemap input: per-category value sums
// with display colors, liabilities excluded.
func (s *Server) handleAllocation(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	assets, err := s.Assets.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}
	categories, err := s.CategoryRepo.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	aggregates := aggregator.Aggregate(assets, categories)
	slices := make([]allocationSlice, 0, len(aggregates))
	for _, agg := range aggregates {
		slices = append(slices, allocationSlice{
			Category: agg.Label,
			Value:    agg.Value.InexactFloat64(),
			Color:    agg.Color,
		})
	}

	respondJSON(w, http.StatusOK, slices)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.CategoryRepo.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	respondJSON(w, http.StatusOK, categories)
}
