package billing

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casastock/casastock-backend/internal/apperr"
	"github.com/casastock/casastock-backend/internal/modules/auth"
)

// Handler exposes billing HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the session-bound billing endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/billing", func(r chi.Router) {
		r.Post("/subscribe", h.subscribe)
		r.Post("/verify", h.verify)
		r.Get("/subscription", h.subscription)
	})
}

// RegisterWebhook mounts the public gateway callback.
func (h *Handler) RegisterWebhook(r chi.Router) {
	r.Post("/api/v1/webhooks/razorpay", h.webhook)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}
	checkout, err := h.service.Subscribe(r.Context(), owner)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{"data": checkout})
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sub, err := h.service.Verify(r.Context(), owner, req)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"data": sub})
}

func (h *Handler) subscription(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}
	sub, err := h.service.Current(r.Context(), owner)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	// sub is nil until the owner starts a subscription.
	respond(w, http.StatusOK, map[string]interface{}{"data": sub})
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}
	signature := r.Header.Get("X-Razorpay-Signature")
	if err := h.service.HandleWebhook(r.Context(), body, signature); err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"data": map[string]string{"status": "ok"}})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
