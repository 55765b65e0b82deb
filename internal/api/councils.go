package api

import (
	"encoding/json"
	"net/http"

	"binwatch/internal/schedule"
)

func RegisterCouncilsHandler(mux *http.ServeMux) {
	mux.HandleFunc("/councils", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		councils := schedule.Councils()

		response := struct {
			Councils []schedule.CouncilDescriptor `json:"councils"`
		}{
			Councils: councils,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}
