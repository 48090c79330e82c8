package capital

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casastock/casastock-backend/internal/apperr"
	"github.com/casastock/casastock-backend/internal/modules/auth"
)

// Handler exposes capital HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/capital", func(r chi.Router) {
		r.Get("/", h.current)
		r.Post("/", h.adjust)
	})
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}
	c, err := h.service.Current(r.Context(), owner)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	// c is nil until the owner records their starting capital.
	respond(w, http.StatusOK, map[string]interface{}{"data": c})
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}
	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.Adjust(r.Context(), owner, req)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"data": c})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
