package notification

import (
	"fmt"
	"strings"
	"time"

	"binwatch/internal/schedule"
	"binwatch/internal/storage"
)

// ReminderDue reports whether a subscription should be reminded today for
// the given collection. A subscription with DaysBefore=1 is reminded on the
// day before the collection; DaysBefore=0 on the day itself.
func ReminderDue(sub storage.Subscription, collection time.Time, today time.Time) bool {
	days := sub.DaysBefore
	if days < 0 {
		days = 0
	}
	remindOn := collection.AddDate(0, 0, -days)
	return today.Year() == remindOn.Year() && today.YearDay() == remindOn.YearDay()
}

// ComposeReminder builds the subject and HTML body for a reminder email.
func ComposeReminder(councilName string, sub storage.Subscription, details *schedule.ServiceDetails) (subject, body string) {
	kind := strings.Title(string(details.ServiceType))
	date := details.Date.Format("Monday 2 January 2006")

	subject = fmt.Sprintf("%s collection on %s", kind, date)
	body = fmt.Sprintf(
		"<p>Hello,</p>"+
			"<p>The next <strong>%s</strong> collection for <strong>%s</strong> (%s) is on <strong>%s</strong>.</p>"+
			"<p>Remember to put your bins out.</p>",
		strings.ToLower(kind), sub.Street, councilName, date)
	return subject, body
}
