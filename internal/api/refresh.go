package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"binwatch/internal/config"
	"binwatch/internal/schedule"
	"binwatch/internal/storage"
)

// RefreshResponse is the response structure for refresh endpoints.
type RefreshResponse struct {
	Council     string `json:"council"`
	DocumentURL string `json:"document_url,omitempty"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}

// RegisterRefreshHandler wires POST /refresh/{council}, which re-downloads
// the council's current timetable document into its data directory. Used by
// CronJobs and for manual refresh.
func RegisterRefreshHandler(mux *http.ServeMux, st storage.Storage) {
	mux.HandleFunc("/refresh/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		councilKey := strings.ToLower(strings.TrimPrefix(r.URL.Path, "/refresh/"))
		council, ok := schedule.GetCouncil(councilKey)
		if !ok {
			http.NotFound(w, r)
			return
		}

		if dir, ok := config.FromEnv().DataDirs[council.Key]; ok && dir != "" {
			council.DataDir = dir
		}

		resp := RefreshResponse{Council: councilKey, Status: "ok"}
		docURL, err := schedule.RefreshCouncilTimetable(council)
		if err != nil {
			log.Printf("refresh council %s failed: %v", councilKey, err)
			resp.Status = "error"
			resp.Error = err.Error()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(resp)
			return
		}
		resp.DocumentURL = docURL

		if st != nil {
			err := st.UpsertCouncil(r.Context(), storage.Council{
				Key:        council.Key,
				Name:       council.Name,
				LandingURL: council.LandingURL,
				DataDir:    council.DataDir,
				Notes:      council.Notes,
			})
			if err != nil {
				log.Printf("refresh: upsert council %s failed: %v", councilKey, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
}
