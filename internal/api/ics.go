package api

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"binwatch/internal/schedule"
)

const (
	icsProductID = "-//binwatch//Collection Calendar//EN"
)

// handleCalendar serves /calendar/{council}/{street}.ics with the next
// upcoming collection as a subscribable all-day event.
func handleCalendar(svc *schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/calendar/")
		path = strings.TrimSuffix(path, ".ics")
		parts := strings.SplitN(path, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			http.NotFound(w, r)
			return
		}

		councilKey := strings.ToLower(parts[0])
		street, err := url.PathUnescape(parts[1])
		if err != nil {
			http.Error(w, "bad street", http.StatusBadRequest)
			return
		}

		resp, err := svc.NextCollection(r.Context(), councilKey, street)
		if err != nil {
			if strings.HasPrefix(err.Error(), "unknown council") {
				http.NotFound(w, r)
				return
			}
			log.Printf("calendar lookup for %s/%s failed: %v", councilKey, street, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.ics", councilKey))
		writeICS(w, councilKey, street, resp)
	}
}

func writeICS(w http.ResponseWriter, councilKey, street string, resp *schedule.NextCollectionResponse) {
	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", icsProductID)
	fmt.Fprintln(w, "METHOD:PUBLISH")
	fmt.Fprintf(w, "X-WR-CALNAME:Bin collections %s\n", street)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")
	fmt.Fprintln(w, "X-PUBLISHED-TTL:PT12H")

	if c := resp.Collection; c != nil {
		// Stable UID so calendar clients update rather than duplicate.
		uid := fmt.Sprintf("%s-%s-%s@binwatch", c.Date.Format("2006-01-02"), c.ServiceType, councilKey)
		summary := fmt.Sprintf("%s collection", strings.Title(string(c.ServiceType)))

		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:%s\n", uid)
		fmt.Fprintf(w, "DTSTAMP:%s\n", time.Now().UTC().Format("20060102T150405Z"))
		fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", c.Date.Format("20060102"))
		fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", c.Date.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(w, "SUMMARY:%s\n", summary)
		fmt.Fprintf(w, "DESCRIPTION:%s collection for %s\n", strings.Title(string(c.ServiceType)), street)
		fmt.Fprintf(w, "LOCATION:%s\n", street)
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}
