package billing

import (
	"encoding/json"
	"net/http"

	"github.com/casastock/casastock-backend/internal/modules/auth"
)

// RequireActiveSubscription rejects requests whose owner does not hold
// an active subscription. It assumes auth middleware already ran.
func RequireActiveSubscription(service Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, ok := auth.OwnerID(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "not logged in")
				return
			}
			sub, err := service.Current(r.Context(), owner)
			if err != nil {
				deny(w, http.StatusInternalServerError, "subscription lookup failed")
				return
			}
			if sub == nil || sub.Status != StatusActive {
				deny(w, http.StatusPaymentRequired, "active subscription required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
