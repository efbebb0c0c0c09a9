package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/vehiclecatalog/internal/domain"
	"github.com/yourorg/vehiclecatalog/internal/security/middleware"
	"github.com/yourorg/vehiclecatalog/internal/service"
)

// VehicleHandler handles vehicle CRUD endpoints
type VehicleHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(catalog *service.CatalogService, logger *slog.Logger) *VehicleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VehicleHandler{catalog: catalog, logger: logger}
}

// VehicleRequest represents a vehicle write. There is no owner field: the
// owning user is always the authenticated caller, so a client-supplied
// owner cannot even be expressed.
type VehicleRequest struct {
	Name        *string       `json:"name"`
	ReleaseYear *int          `json:"release_year"`
	Price       *domain.Price `json:"price"`
	Segment     *int64        `json:"segment"`
	Brand       *int64        `json:"brand"`
}

func (req VehicleRequest) params() service.VehicleParams {
	return service.VehicleParams{
		Name:        req.Name,
		ReleaseYear: req.ReleaseYear,
		Price:       req.Price,
		SegmentID:   req.Segment,
		BrandID:     req.Brand,
	}
}

// VehicleResponse represents a vehicle on the wire. SegmentName and
// BrandName are derived read-only labels.
type VehicleResponse struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	ReleaseYear int          `json:"release_year"`
	Price       domain.Price `json:"price"`
	Segment     int64        `json:"segment"`
	Brand       int64        `json:"brand"`
	SegmentName string       `json:"segment_name"`
	BrandName   string       `json:"brand_name"`
}

func vehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.ID,
		Name:        v.Name,
		ReleaseYear: v.ReleaseYear,
		Price:       v.Price,
		Segment:     v.SegmentID,
		Brand:       v.BrandID,
		SegmentName: v.SegmentName,
		BrandName:   v.BrandName,
	}
}

// List handles GET /api/vehicles/
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.catalog.ListVehicles()
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, vehicleResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/vehicles/{id}
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	vehicle, err := h.catalog.GetVehicle(id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleResponse(vehicle))
}

// Create handles POST /api/vehicles/. The new vehicle is owned by the
// calling user regardless of the request payload.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	vehicle, err := h.catalog.CreateVehicle(claims.UserID, req.params())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicleResponse(vehicle))
}

// Replace handles PUT /api/vehicles/{id}
func (h *VehicleHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	vehicle, err := h.catalog.ReplaceVehicle(id, req.params())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleResponse(vehicle))
}

// Patch handles PATCH /api/vehicles/{id}
func (h *VehicleHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	vehicle, err := h.catalog.PatchVehicle(id, req.params())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleResponse(vehicle))
}

// Delete handles DELETE /api/vehicles/{id}
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.catalog.DeleteVehicle(id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
