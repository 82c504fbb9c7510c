package server

import (
	"net/http"
	"strconv"

	"github.com/folioworks/folio/internal/models"
	"github.com/folioworks/folio/internal/services/position"
)

// PositionHandlers wires the position REST endpoints.
type PositionHandlers struct {
	service *position.Service
}

// NewPositionHandlers creates the handler set for position operations.
func NewPositionHandlers(service *position.Service) *PositionHandlers {
	return &PositionHandlers{service: service}
}

// List handles GET /api/positions with an optional ?portfolioId= filter.
func (h *PositionHandlers) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var filter *int64
	if raw := r.URL.Query().Get("portfolioId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid portfolioId", http.StatusBadRequest)
			return
		}
		filter = &id
	}

	records, err := h.service.List(r.Context(), p, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /api/positions/{id}.
func (h *PositionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	record, err := h.service.Get(r.Context(), p, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Create handles POST /api/positions. Admin only.
func (h *PositionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in models.Position
	if err := decodeJSON(r, &in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), p, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/positions/{id}. Admin only.
func (h *PositionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var in models.Position
	if err := decodeJSON(r, &in); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), p, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/positions/{id}. Admin only.
func (h *PositionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), p, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
