package schedule

import "time"

// ServiceType identifies which bin is collected.
type ServiceType string

const (
	ServiceRefuse    ServiceType = "refuse"
	ServiceRecycling ServiceType = "recycling"
)

// ServiceDetails is a single upcoming collection: the date it happens and
// which service runs that day.
type ServiceDetails struct {
	Date        time.Time   `json:"date"`
	ServiceType ServiceType `json:"service_type"`
}

// earlier reports whether a should replace b as the running minimum.
// Strict comparison: on an exact date tie the incumbent is kept, so the
// first candidate encountered wins at every reduction level.
func earlier(a, b *ServiceDetails) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Date.Before(b.Date)
}

// NextCollectionResponse is the JSON payload served by the API and cached
// as a schedule snapshot.
type NextCollectionResponse struct {
	Council    string          `json:"council"`
	Street     string          `json:"street"`
	Source     string          `json:"source"`
	FetchedAt  time.Time       `json:"fetched_at"`
	Collection *ServiceDetails `json:"collection"`
}
