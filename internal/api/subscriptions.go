package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"binwatch/internal/schedule"
	"binwatch/internal/storage"

	"github.com/google/uuid"
)

// RegisterSubscriptionHandlers wires the reminder subscription endpoints:
// GET/POST /subscriptions and DELETE /subscriptions/{id}.
func RegisterSubscriptionHandlers(mux *http.ServeMux, st storage.Storage) {
	mux.HandleFunc("/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			subs, err := st.ListSubscriptions(r.Context())
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if subs == nil {
				subs = []storage.Subscription{}
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(subs)

		case http.MethodPost:
			var req struct {
				Council    string `json:"council"`
				Street     string `json:"street"`
				Email      string `json:"email"`
				DaysBefore int    `json:"days_before"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
			if req.Street == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
				http.Error(w, "street and a valid email are required", http.StatusBadRequest)
				return
			}
			if _, ok := schedule.GetCouncil(req.Council); !ok {
				http.Error(w, "unknown council", http.StatusBadRequest)
				return
			}
			if req.DaysBefore < 0 {
				req.DaysBefore = 0
			}

			sub := storage.Subscription{
				ID:         uuid.New().String(),
				Council:    req.Council,
				Street:     req.Street,
				Email:      req.Email,
				DaysBefore: req.DaysBefore,
				CreatedAt:  time.Now(),
			}
			if err := st.CreateSubscription(r.Context(), sub); err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(sub)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/subscriptions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/subscriptions/")
		if id == "" {
			http.NotFound(w, r)
			return
		}
		if err := st.DeleteSubscription(r.Context(), id); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
