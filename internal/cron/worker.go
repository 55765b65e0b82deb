package cron

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"binwatch/internal/alerting"
	"binwatch/internal/config"
	"binwatch/internal/metrics"
	"binwatch/internal/schedule"
	"binwatch/internal/storage"

	"github.com/robfig/cron/v3"
)

// Run starts a cron worker that periodically re-downloads council timetables
// using a Postgres pgxpool backend and PostgreSQL advisory locks so that in a
// multi-instance deployment only one worker executes the job.
func Run(ctx context.Context, driver, dsn string) error {
	if driver == "" {
		driver = "postgrespool"
	}
	if driver != "postgrespool" {
		return fmt.Errorf("cron worker requires BINWATCH_DB_DRIVER=postgrespool (got %q)", driver)
	}

	stGeneric, err := storage.Open(ctx, storage.Config{Driver: driver, DSN: dsn})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer stGeneric.Close()

	pg, ok := stGeneric.(*storage.PostgresPoolStorage)
	if !ok {
		return fmt.Errorf("storage driver %q is not PostgresPoolStorage", driver)
	}

	alerter := alerting.NewAlerter(alerting.DefaultAlertConfig())

	// Interval can be integer seconds or a cron expression; the DB setting
	// overrides the environment so a running worker can be retuned live.
	intervalSetting := "86400"
	if raw := os.Getenv("BINWATCH_CRON_INTERVAL_SECONDS"); raw != "" {
		intervalSetting = raw
	}
	if val, err := stGeneric.GetSetting(ctx, "refresh_interval_seconds"); err == nil && val != "" {
		intervalSetting = val
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	getNextRun := func(setting string, lastRun time.Time) time.Time {
		if v, err := strconv.Atoi(setting); err == nil && v > 0 {
			return lastRun.Add(time.Duration(v) * time.Second)
		}
		if sched, err := cron.ParseStandard(setting); err == nil {
			return sched.Next(lastRun)
		}
		return lastRun.Add(24 * time.Hour)
	}

	nextRun := time.Now()

	jobName := "refresh_timetables"
	const lockKey int64 = 42

	log.Printf("cron worker starting, initial setting=%q driver=%s", intervalSetting, driver)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if val, err := stGeneric.GetSetting(ctx, "refresh_interval_seconds"); err == nil && val != "" {
				if val != intervalSetting {
					log.Printf("cron: interval updated from %q to %q", intervalSetting, val)
					intervalSetting = val
					nextRun = getNextRun(intervalSetting, time.Now())
				}
			}

			if time.Now().Before(nextRun) {
				continue
			}

			started := time.Now()

			ok, err := pg.AcquireAdvisoryLock(ctx, lockKey)
			if err != nil {
				log.Printf("cron: acquire advisory lock failed: %v", err)
				metrics.UpdateJobMetrics(jobName, started, err)
				nextRun = getNextRun(intervalSetting, time.Now())
				continue
			}
			if !ok {
				log.Printf("cron: advisory lock held by another worker, skipping run")
				nextRun = getNextRun(intervalSetting, time.Now())
				continue
			}

			var runErr error
			var failures []alerting.CouncilFailure
			councils := schedule.Councils()
			func() {
				defer func() {
					if _, err := pg.ReleaseAdvisoryLock(ctx, lockKey); err != nil {
						log.Printf("cron: release advisory lock failed: %v", err)
					}
				}()

				cfg := config.FromEnv()
				for _, c := range councils {
					if dir, ok := cfg.DataDirs[c.Key]; ok {
						c.DataDir = dir
					}
					if c.LandingURL == "" {
						continue
					}
					if _, err := schedule.RefreshCouncilTimetable(c); err != nil {
						log.Printf("cron: refresh council %s failed: %v", c.Key, err)
						failures = append(failures, alerting.CouncilFailure{
							Council:  c.Key,
							Error:    err.Error(),
							Attempts: 1,
						})
						if runErr == nil {
							runErr = err
						}
					}
				}
			}()

			metrics.UpdateJobMetrics(jobName, started, runErr)
			dur := time.Since(started)
			errMsg := ""
			success := runErr == nil
			if runErr != nil {
				errMsg = runErr.Error()
			}
			if err := pg.UpdateScheduledJob(ctx, jobName, started, dur, success, errMsg); err != nil {
				log.Printf("cron: update scheduled_jobs failed: %v", err)
			}

			if len(failures) > 0 {
				alert := alerting.RefreshAlert{
					JobName:       jobName,
					TotalCount:    len(councils),
					SuccessCount:  len(councils) - len(failures),
					FailedCount:   len(failures),
					Duration:      dur,
					FailedDetails: failures,
					Timestamp:     time.Now(),
				}
				if err := alerter.SendRefreshAlert(ctx, alert); err != nil {
					log.Printf("cron: send alert failed: %v", err)
				}
			}

			if runErr != nil {
				log.Printf("cron: job %s completed with error: %v (duration=%s)", jobName, runErr, dur)
			} else {
				log.Printf("cron: job %s completed successfully (duration=%s)", jobName, dur)
			}

			nextRun = getNextRun(intervalSetting, time.Now())
		}
	}
}
