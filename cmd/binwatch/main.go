package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"binwatch/internal/api"
	"binwatch/internal/config"
	"binwatch/internal/cron"
	migrate "binwatch/internal/migrate"
	"binwatch/internal/schedule"
)

func main() {
	root := &cobra.Command{
		Use:   "binwatch",
		Short: "Finds the next upcoming bin collection from council timetables",
	}

	root.AddCommand(serveCmd())
	root.AddCommand(nextCmd())
	root.AddCommand(refreshCmd())
	root.AddCommand(workerCmd())
	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8000"
			}

			mux := api.NewMux()

			addr := ":" + port
			log.Printf("binwatch listening on %s", addr)
			return http.ListenAndServe(addr, mux)
		},
	}
}

func nextCmd() *cobra.Command {
	var (
		councilKey string
		street     string
		dateStr    string
	)

	cmd := &cobra.Command{
		Use:   "next",
		Short: "One-shot lookup of the next collection for a street",
		RunE: func(cmd *cobra.Command, args []string) error {
			if street == "" {
				return fmt.Errorf("--street is required")
			}

			cfg := schedule.Config{DataDirs: config.FromEnv().DataDirs}
			if dateStr != "" {
				today, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
				cfg.Now = func() time.Time { return today }
			}

			svc := schedule.NewService(cfg)
			resp, err := svc.NextCollection(cmd.Context(), councilKey, street)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVar(&councilKey, "council", "ashfordvale", "council key")
	cmd.Flags().StringVar(&street, "street", "", "street name as it appears in the timetable")
	cmd.Flags().StringVar(&dateStr, "date", "", "reference date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func refreshCmd() *cobra.Command {
	var councilKey string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Discover and download a council's current timetable document",
		RunE: func(cmd *cobra.Command, args []string) error {
			council, ok := schedule.GetCouncil(councilKey)
			if !ok {
				return fmt.Errorf("unknown council: %s", councilKey)
			}
			if dir, ok := config.FromEnv().DataDirs[council.Key]; ok && dir != "" {
				council.DataDir = dir
			}

			docURL, err := schedule.RefreshCouncilTimetable(council)
			if err != nil {
				return err
			}
			fmt.Printf("downloaded %s into %s\n", docURL, council.DataDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&councilKey, "council", "", "council key")
	_ = cmd.MarkFlagRequired("council")
	return cmd
}

func workerCmd() *cobra.Command {
	var job string

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a background worker (refresh or reminders)",
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := os.Getenv("BINWATCH_DB_DRIVER")
			dsn := os.Getenv("BINWATCH_DB_DSN")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			switch job {
			case "refresh":
				return cron.Run(ctx, driver, dsn)
			case "reminders":
				return cron.RunReminders(ctx, driver, dsn)
			default:
				return fmt.Errorf("unknown job %q (use refresh or reminders)", job)
			}
		},
	}

	cmd.Flags().StringVar(&job, "job", "refresh", "which worker to run: refresh or reminders")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Run database migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := os.Getenv("BINWATCH_DB_DRIVER")
			dsn := os.Getenv("BINWATCH_DB_DSN")
			if driver == "" {
				driver = "sqlite"
			}
			if dsn == "" {
				dsn = "binwatch.db"
			}

			ctx := cmd.Context()
			switch args[0] {
			case "up":
				return migrate.Up(ctx, driver, dsn)
			case "down":
				return migrate.Down(ctx, driver, dsn)
			case "status":
				return migrate.Status(ctx, driver, dsn)
			default:
				return fmt.Errorf("unknown migrate action %q", args[0])
			}
		},
	}
	return cmd
}
