package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"binwatch/internal/api/swagger"
	"binwatch/internal/auth"
	"binwatch/internal/config"
	migrate "binwatch/internal/migrate"
	"binwatch/internal/notification"
	"binwatch/internal/schedule"
	"binwatch/internal/storage"
	"binwatch/internal/ui"
)

// NewMux constructs the HTTP mux, wiring in the schedule service, metrics,
// and health endpoints.
func NewMux() *http.ServeMux {
	cfg := schedule.Config{DataDirs: config.FromEnv().DataDirs}

	// Optional auto-migration: run `goose up` on startup when enabled.
	autoMig := os.Getenv("BINWATCH_AUTO_MIGRATE")
	driver := os.Getenv("BINWATCH_DB_DRIVER")
	dsn := os.Getenv("BINWATCH_DB_DSN")
	if autoMig == "1" || strings.ToLower(autoMig) == "true" || strings.ToLower(autoMig) == "yes" {
		ctx := context.Background()
		if driver == "" {
			driver = "sqlite"
		}
		if dsn == "" {
			dsn = "binwatch.db"
		}
		if err := migrate.Up(ctx, driver, dsn); err != nil {
			log.Printf("auto-migration failed: %v", err)
		}
	}

	// Construct the schedule service, preferring a real storage backend
	// when available.
	var svc *schedule.Service
	ctxSvc := context.Background()
	var st storage.Storage
	var err error
	if driver == "memory" {
		// Preload council descriptors so the UI and workers know which
		// councils exist without a real database.
		var cList []storage.Council
		for _, cd := range schedule.Councils() {
			cList = append(cList, storage.Council{
				Key:        cd.Key,
				Name:       cd.Name,
				LandingURL: cd.LandingURL,
				DataDir:    cd.DataDir,
				Notes:      cd.Notes,
			})
		}
		st = storage.NewMemoryWithCouncils(cList)
		err = nil
	} else {
		st, err = storage.Open(ctxSvc, storage.Config{Driver: driver, DSN: dsn})
	}
	if err != nil {
		log.Printf("storage.Open failed (driver=%s dsn=%s): %v; falling back to scan-only mode", driver, dsn, err)
		svc = schedule.NewService(cfg)
		st = nil
	} else {
		log.Printf("schedule service using storage backend driver=%s", driver)
		svc = schedule.NewServiceWithStorage(cfg, st)
	}

	mux := http.NewServeMux()

	// Metrics endpoint.
	mux.Handle("/metrics", promhttp.Handler())

	// Health / readiness / liveness.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		drv := os.Getenv("BINWATCH_DB_DRIVER")
		dsn := os.Getenv("BINWATCH_DB_DSN")
		if drv == "" {
			drv = "sqlite"
		}
		if dsn == "" {
			dsn = "binwatch.db"
		}
		st, err := storage.Open(ctx, storage.Config{Driver: drv, DSN: dsn})
		if err != nil {
			log.Printf("readyz: storage open failed: %v", err)
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		defer st.Close()
		if err := st.Ping(ctx); err != nil {
			log.Printf("readyz: db ping failed: %v", err)
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("live"))
	})

	// Collection lookup API.
	mux.HandleFunc("/next/", handleNext(svc))

	// Calendar feed.
	mux.HandleFunc("/calendar/", handleCalendar(svc))

	RegisterCouncilsHandler(mux)
	RegisterRefreshHandler(mux, st)

	if st != nil {
		RegisterSubscriptionHandlers(mux, st)

		authSvc, err := auth.NewService(st)
		if err != nil {
			log.Printf("auth service init failed: %v", err)
		} else {
			notifSvc := notification.NewService(st)
			registerNotificationRoutes(mux, authSvc, notifSvc)
		}
	}

	// API documentation.
	mux.Handle("/swagger/", http.StripPrefix("/swagger", swagger.Handler()))

	// Web UI
	mux.Handle("/ui/", http.StripPrefix("/ui/", ui.Handler()))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/ui/", http.StatusFound)
	})

	return mux
}
