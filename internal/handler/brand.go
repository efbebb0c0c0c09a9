package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/vehiclecatalog/internal/domain"
	"github.com/yourorg/vehiclecatalog/internal/service"
)

// BrandHandler handles brand CRUD endpoints
type BrandHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(catalog *service.CatalogService, logger *slog.Logger) *BrandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrandHandler{catalog: catalog, logger: logger}
}

// BrandRequest represents a brand write
type BrandRequest struct {
	Name *string `json:"name"`
}

// BrandResponse represents a brand on the wire
type BrandResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func brandResponse(b *domain.Brand) BrandResponse {
	return BrandResponse{ID: b.ID, Name: b.Name}
}

// List handles GET /api/brands/
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalog.ListBrands()
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, brandResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/brands/{id}
func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	brand, err := h.catalog.GetBrand(id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, brandResponse(brand))
}

// Create handles POST /api/brands/
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	brand, err := h.catalog.CreateBrand(req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, brandResponse(brand))
}

// Replace handles PUT /api/brands/{id}
func (h *BrandHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	brand, err := h.catalog.ReplaceBrand(id, req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, brandResponse(brand))
}

// Patch handles PATCH /api/brands/{id}
func (h *BrandHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	brand, err := h.catalog.PatchBrand(id, req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, brandResponse(brand))
}

// Delete handles DELETE /api/brands/{id}
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.catalog.DeleteBrand(id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
