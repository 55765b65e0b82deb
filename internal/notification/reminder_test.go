package notification

import (
	"strings"
	"testing"
	"time"

	"binwatch/internal/schedule"
	"binwatch/internal/storage"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReminderDue(t *testing.T) {
	collection := day(2024, time.July, 21)

	cases := []struct {
		name       string
		daysBefore int
		today      time.Time
		want       bool
	}{
		{"day before", 1, day(2024, time.July, 20), true},
		{"on the day with zero lead", 0, day(2024, time.July, 21), true},
		{"too early", 1, day(2024, time.July, 18), false},
		{"after the collection", 1, day(2024, time.July, 22), false},
		{"negative lead treated as zero", -3, day(2024, time.July, 21), true},
	}
	for _, c := range cases {
		sub := storage.Subscription{DaysBefore: c.daysBefore}
		if got := ReminderDue(sub, collection, c.today); got != c.want {
			t.Errorf("%s: ReminderDue = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestComposeReminder(t *testing.T) {
	sub := storage.Subscription{Street: "The Mall", Email: "a@b.c"}
	details := &schedule.ServiceDetails{
		Date:        day(2024, time.July, 21),
		ServiceType: schedule.ServiceRecycling,
	}

	subject, body := ComposeReminder("Ashford Vale District Council", sub, details)
	if !strings.Contains(subject, "Recycling") || !strings.Contains(subject, "21 July 2024") {
		t.Errorf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "The Mall") || !strings.Contains(body, "Ashford Vale District Council") {
		t.Errorf("unexpected body: %q", body)
	}
}
