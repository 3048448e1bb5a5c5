package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// GET /api/inventory/{productId}
func (s *Server) handleGetAvailability(w http.ResponseWriter, r *http.Request) {
	a, err := s.inventory.GetAvailability(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// POST /api/inventory/{productId}/reserve
func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	s.handleQuantityChange(w, r, s.inventory.Reserve)
}

// POST /api/inventory/{productId}/release
func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	s.handleQuantityChange(w, r, s.inventory.Release)
}

func (s *Server) handleQuantityChange(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, productID string, qty int) (domain.Availability, error),
) {
	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	a, err := fn(r.Context(), chi.URLParam(r, "productId"), req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
