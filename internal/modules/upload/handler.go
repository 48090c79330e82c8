package upload

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/casastock/casastock-backend/internal/apperr"
	"github.com/casastock/casastock-backend/internal/modules/auth"
)

// maxUploadBytes caps product image uploads at 8 MiB.
const maxUploadBytes = 8 << 20

// Handler accepts product image uploads.
type Handler struct {
	storage Storage
	now     func() time.Time
}

func NewHandler(storage Storage) *Handler {
	return &Handler{storage: storage, now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/uploads", h.upload)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.OwnerID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	name := fmt.Sprintf("%d-%s", h.now().UnixNano(), SanitizeFilename(header.Filename))
	path, err := h.storage.Save(r.Context(), owner.String()+"/"+name, file)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}

	respond(w, http.StatusCreated, map[string]interface{}{"data": map[string]string{
		"path":       path,
		"public_url": h.storage.PublicURL(path),
	}})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
