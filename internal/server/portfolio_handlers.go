package server

import (
	"net/http"

	"github.com/folioworks/folio/internal/models"
	"github.com/folioworks/folio/internal/services/portfolio"
)

// PortfolioHandlers wires the portfolio REST endpoints.
type PortfolioHandlers struct {
	service *portfolio.Service
}

// NewPortfolioHandlers creates the handler set for portfolio operations.
func NewPortfolioHandlers(service *portfolio.Service) *PortfolioHandlers {
	return &PortfolioHandlers{service: service}
}

// List handles GET /api/portfolios - visible portfolios for the caller.
func (h *PortfolioHandlers) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.service.List(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /api/portfolios/{id}.
func (h *PortfolioHandlers) Get(w http.ResponseWriter, r *http.Request) {
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

// Create handles POST /api/portfolios.
func (h *PortfolioHandlers) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in models.Portfolio
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

// Update handles PUT /api/portfolios/{id}.
func (h *PortfolioHandlers) Update(w http.ResponseWriter, r *http.Request) {
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

	var in models.Portfolio
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

// Delete handles DELETE /api/portfolios/{id}.
func (h *PortfolioHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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
