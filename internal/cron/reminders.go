package cron

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"binwatch/internal/config"
	"binwatch/internal/metrics"
	"binwatch/internal/notification"
	"binwatch/internal/schedule"
	"binwatch/internal/storage"
)

// RunReminders periodically walks all subscriptions and emails the ones
// whose next collection falls within their reminder window. Advisory locks
// keep multiple replicas from double-sending.
func RunReminders(ctx context.Context, driver, dsn string) error {
	if driver != "postgrespool" {
		return fmt.Errorf("reminder worker requires BINWATCH_DB_DRIVER=postgrespool (got %q)", driver)
	}

	st, err := storage.Open(ctx, storage.Config{Driver: driver, DSN: dsn})
	if err != nil {
		return fmt.Errorf("reminders: open storage: %w", err)
	}
	defer st.Close()

	pg, ok := st.(*storage.PostgresPoolStorage)
	if !ok {
		return fmt.Errorf("reminders: storage is not PostgresPoolStorage")
	}

	svc := schedule.NewServiceWithStorage(schedule.Config{DataDirs: config.FromEnv().DataDirs}, st)
	notifier := notification.NewService(st)

	intervalSec := 3600
	if raw := os.Getenv("BINWATCH_REMINDER_INTERVAL_SECONDS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			intervalSec = v
		}
	}

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	jobName := "send_reminders"
	const advisoryKey int64 = 13371337

	log.Printf("reminder worker starting: interval=%ds driver=postgrespool", intervalSec)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			started := time.Now()

			gotLock, err := pg.AcquireAdvisoryLock(ctx, advisoryKey)
			if err != nil {
				log.Printf("reminders: lock acquire error: %v", err)
				metrics.UpdateJobMetrics(jobName, started, err)
				continue
			}
			if !gotLock {
				log.Printf("reminders: lock held by another node, skipping this cycle")
				continue
			}

			var runErr error
			func() {
				defer func() {
					if _, err := pg.ReleaseAdvisoryLock(ctx, advisoryKey); err != nil {
						log.Printf("reminders: lock release error: %v", err)
					}
				}()

				runErr = dispatchReminders(ctx, st, svc, notifier)
			}()

			metrics.UpdateJobMetrics(jobName, started, runErr)
			dur := time.Since(started)
			errMsg := ""
			success := runErr == nil
			if runErr != nil {
				errMsg = runErr.Error()
			}
			if err := pg.UpdateScheduledJob(ctx, jobName, started, dur, success, errMsg); err != nil {
				log.Printf("reminders: update scheduled_jobs failed: %v", err)
			}

			if runErr != nil {
				log.Printf("reminders: run completed with error: %v", runErr)
			} else {
				log.Printf("reminders: run completed successfully")
			}
		}
	}
}

func dispatchReminders(ctx context.Context, st storage.Storage, svc *schedule.Service, notifier *notification.Service) error {
	subs, err := st.ListSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}

	today := time.Now()
	var firstErr error

	for _, sub := range subs {
		resp, err := svc.NextCollection(ctx, sub.Council, sub.Street)
		if err != nil {
			log.Printf("reminders: lookup %s/%s failed: %v", sub.Council, sub.Street, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if resp.Collection == nil {
			continue
		}
		if !notification.ReminderDue(sub, resp.Collection.Date, today) {
			continue
		}

		councilName := sub.Council
		if c, ok := schedule.GetCouncil(sub.Council); ok {
			councilName = c.Name
		}

		subject, body := notification.ComposeReminder(councilName, sub, resp.Collection)
		if err := notifier.SendEmail(ctx, sub.Email, subject, body); err != nil {
			log.Printf("reminders: send to %s failed: %v", sub.Email, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metrics.RemindersSentTotal.Inc()
	}

	return firstErr
}
