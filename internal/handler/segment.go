package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/vehiclecatalog/internal/domain"
	"github.com/yourorg/vehiclecatalog/internal/service"
)

// SegmentHandler handles segment CRUD endpoints
type SegmentHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewSegmentHandler creates a new segment handler
func NewSegmentHandler(catalog *service.CatalogService, logger *slog.Logger) *SegmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SegmentHandler{catalog: catalog, logger: logger}
}

// SegmentRequest represents a segment write. Name is a pointer so partial
// updates can tell "absent" from "blank".
type SegmentRequest struct {
	Name *string `json:"name"`
}

// SegmentResponse represents a segment on the wire
type SegmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func segmentResponse(s *domain.Segment) SegmentResponse {
	return SegmentResponse{ID: s.ID, Name: s.Name}
}

// List handles GET /api/segments/
func (h *SegmentHandler) List(w http.ResponseWriter, r *http.Request) {
	segments, err := h.catalog.ListSegments()
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]SegmentResponse, 0, len(segments))
	for _, s := range segments {
		out = append(out, segmentResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/segments/{id}
func (h *SegmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	segment, err := h.catalog.GetSegment(id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, segmentResponse(segment))
}

// Create handles POST /api/segments/
func (h *SegmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	segment, err := h.catalog.CreateSegment(req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, segmentResponse(segment))
}

// Replace handles PUT /api/segments/{id}
func (h *SegmentHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req SegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	segment, err := h.catalog.ReplaceSegment(id, req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, segmentResponse(segment))
}

// Patch handles PATCH /api/segments/{id}
func (h *SegmentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req SegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	segment, err := h.catalog.PatchSegment(id, req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, segmentResponse(segment))
}

// Delete handles DELETE /api/segments/{id}
func (h *SegmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.catalog.DeleteSegment(id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
