package api

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"binwatch/internal/metrics"
	"binwatch/internal/schedule"
)

// handleNext serves /next/{council}/{street} using the schedule service.
// The street segment is URL-escaped; "The Mall" arrives as The%20Mall.
func handleNext(svc *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/next/")
		parts := strings.SplitN(path, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			metrics.RequestErrorsTotal.WithLabelValues("unknown", r.URL.Path, "404").Inc()
			http.NotFound(w, r)
			return
		}

		councilKey := strings.ToLower(parts[0])
		street, err := url.PathUnescape(parts[1])
		if err != nil {
			metrics.RequestErrorsTotal.WithLabelValues(councilKey, "/next", "400").Inc()
			http.Error(w, "bad street", http.StatusBadRequest)
			return
		}

		labelsPath := "/next"
		defer func() {
			dur := time.Since(start).Seconds()
			metrics.RequestDurationSeconds.WithLabelValues(councilKey, labelsPath).Observe(dur)
		}()

		metrics.RequestsTotal.WithLabelValues(councilKey).Inc()
		metrics.ScansTotal.WithLabelValues(councilKey).Inc()

		resp, err := svc.NextCollection(r.Context(), councilKey, street)
		if err != nil {
			if strings.HasPrefix(err.Error(), "unknown council") {
				metrics.RequestErrorsTotal.WithLabelValues(councilKey, labelsPath, "404").Inc()
				http.NotFound(w, r)
				return
			}
			log.Printf("next collection for %s/%s failed: %v", councilKey, street, err)
			metrics.ScanFailuresTotal.WithLabelValues(councilKey).Inc()
			metrics.RequestErrorsTotal.WithLabelValues(councilKey, labelsPath, "500").Inc()
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("encode response failed: %v", err)
			metrics.RequestErrorsTotal.WithLabelValues(councilKey, labelsPath, "500").Inc()
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
}
