package schedule

import (
	"errors"
	"testing"
	"time"
)

func refDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse reference date %q: %v", s, err)
	}
	return d
}

func TestResolveDate(t *testing.T) {
	today := refDate(t, "2024-07-01")

	d, err := ResolveDate("21 July", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.July || d.Day() != 21 {
		t.Errorf("unexpected date: %v", d)
	}
}

func TestResolveDate_TrimsWhitespace(t *testing.T) {
	today := refDate(t, "2024-07-01")

	d, err := ResolveDate("  4 August  ", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Month() != time.August || d.Day() != 4 {
		t.Errorf("unexpected date: %v", d)
	}
}

func TestResolveDate_YearFromReference(t *testing.T) {
	d, err := ResolveDate("21 July", refDate(t, "2025-01-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 {
		t.Errorf("expected year 2025, got %d", d.Year())
	}
}

func TestResolveDate_Malformed(t *testing.T) {
	today := refDate(t, "2024-07-01")

	for _, text := range []string{"", "Refuse", "21/07", "July 21", "32 July"} {
		if _, err := ResolveDate(text, today); !errors.Is(err, ErrMalformedDate) {
			t.Errorf("ResolveDate(%q): expected ErrMalformedDate, got %v", text, err)
		}
	}
}

func TestIsDateCell(t *testing.T) {
	today := refDate(t, "2024-07-01")

	if !IsDateCell("21 July", today) {
		t.Error("expected \"21 July\" to be a date cell")
	}
	if IsDateCell("The Mall", today) {
		t.Error("expected \"The Mall\" not to be a date cell")
	}
}
