package schedule

import (
	"errors"
	"testing"
)

func TestParseTimetableText(t *testing.T) {
	text := `Northmoor Borough Council 2024

Collection dates: 21 July, 28 July, 4 August
The Mall: Refuse, Recycling, Refuse
Acacia Avenue: Recycling, Refuse, Recycling
`
	wb, err := ParseTimetableText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(wb.Sheets))
	}

	rows := wb.Sheets[0].Rows
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "" || rows[0][1] != "21 July" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "The Mall" || rows[1][2] != "Recycling" {
		t.Errorf("unexpected street row: %v", rows[1])
	}

	// The synthesised grid must scan like an xlsx one.
	found, err := ScanSheet(wb.Sheets[0], "The Mall", refDate(t, "2024-07-01"))
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if found == nil || found.Date.Day() != 21 || found.ServiceType != ServiceRefuse {
		t.Fatalf("unexpected scan result: %+v", found)
	}
}

func TestParseTimetableText_FirstDatesLineWins(t *testing.T) {
	text := `Collection dates: 21 July
Collection dates: 28 July
The Mall: Refuse
`
	wb, err := ParseTimetableText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wb.Sheets[0].Rows[0][1] != "21 July" {
		t.Errorf("expected first dates line to win, got %v", wb.Sheets[0].Rows[0])
	}
}

func TestParseTimetableText_NoDatesLine(t *testing.T) {
	_, err := ParseTimetableText("The Mall: Refuse\n")
	if !errors.Is(err, ErrNoDateAnchor) {
		t.Fatalf("expected ErrNoDateAnchor, got %v", err)
	}
}

func TestParseTimetableText_SkipsProse(t *testing.T) {
	text := `Put bins out by 7am
Collection dates: 21 July
The Mall: Refuse
`
	wb, err := ParseTimetableText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wb.Sheets[0].Rows) != 2 {
		t.Errorf("prose lines must be skipped, got rows %v", wb.Sheets[0].Rows)
	}
}
