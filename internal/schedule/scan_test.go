package schedule

import (
	"errors"
	"testing"
	"time"
)

func mallSheet() Sheet {
	return Sheet{
		Name: "Area 1",
		Rows: [][]string{
			{"", "21 July", "28 July", "4 August"},
			{"The Mall", "Refuse", "Recycling", "Refuse"},
			{"Acacia Avenue", "Recycling", "Refuse", "Recycling"},
		},
	}
}

func TestScanSheet_FindsEarliestForStreet(t *testing.T) {
	today := refDate(t, "2024-07-01")

	found, err := ScanSheet(mallSheet(), "The Mall", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected a collection")
	}
	if found.Date.Day() != 21 || found.Date.Month() != time.July {
		t.Errorf("unexpected date: %v", found.Date)
	}
	if found.ServiceType != ServiceRefuse {
		t.Errorf("unexpected service type: %q", found.ServiceType)
	}
}

func TestScanSheet_ServiceTypeFromStreetRow(t *testing.T) {
	today := refDate(t, "2024-07-01")

	found, err := ScanSheet(mallSheet(), "Acacia Avenue", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected a collection")
	}
	if found.ServiceType != ServiceRecycling {
		t.Errorf("unexpected service type: %q", found.ServiceType)
	}
}

func TestScanSheet_FirstSeenWinsOnTie(t *testing.T) {
	today := refDate(t, "2024-07-01")
	sheet := Sheet{
		Name: "Tie",
		Rows: [][]string{
			{"", "21 July", "21 July"},
			{"The Mall", "Recycling", "Refuse"},
		},
	}

	found, err := ScanSheet(sheet, "The Mall", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected a collection")
	}
	// Equal dates keep the leftmost candidate.
	if found.ServiceType != ServiceRecycling {
		t.Errorf("expected leftmost candidate to win, got %q", found.ServiceType)
	}
}

func TestScanSheet_DateAnchorOnDifferentRow(t *testing.T) {
	today := refDate(t, "2024-07-01")
	sheet := Sheet{
		Name: "Offset header",
		Rows: [][]string{
			{"Collection days 2024"},
			{"", "21 July", "28 July"},
			{},
			{"The Mall", "Refuse", "Recycling"},
		},
	}

	found, err := ScanSheet(sheet, "The Mall", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil || found.Date.Day() != 21 {
		t.Fatalf("expected 21 July, got %+v", found)
	}
}

func TestScanSheet_NoStreetAnchor(t *testing.T) {
	today := refDate(t, "2024-07-01")

	_, err := ScanSheet(mallSheet(), "Missing Road", today)
	if !errors.Is(err, ErrNoStreetAnchor) {
		t.Fatalf("expected ErrNoStreetAnchor, got %v", err)
	}
}

func TestScanSheet_ExactStreetMatchOnly(t *testing.T) {
	today := refDate(t, "2024-07-01")

	if _, err := ScanSheet(mallSheet(), "the mall", today); !errors.Is(err, ErrNoStreetAnchor) {
		t.Fatalf("expected ErrNoStreetAnchor for case mismatch, got %v", err)
	}
}

func TestScanSheet_NoDateAnchor(t *testing.T) {
	today := refDate(t, "2024-07-01")
	sheet := Sheet{
		Name: "No dates",
		Rows: [][]string{
			{"The Mall", "Refuse", "Recycling"},
		},
	}

	_, err := ScanSheet(sheet, "The Mall", today)
	if !errors.Is(err, ErrNoDateAnchor) {
		t.Fatalf("expected ErrNoDateAnchor, got %v", err)
	}
}

func TestScanSheet_MalformedDateDiscardsSheet(t *testing.T) {
	today := refDate(t, "2024-07-01")
	sheet := Sheet{
		Name: "Corrupt",
		Rows: [][]string{
			{"", "21 July", "not a date", "4 August"},
			{"The Mall", "Refuse", "Recycling", "Refuse"},
		},
	}

	found, err := ScanSheet(sheet, "The Mall", today)
	if !errors.Is(err, ErrMalformedDate) {
		t.Fatalf("expected ErrMalformedDate, got %v", err)
	}
	if found != nil {
		t.Errorf("a malformed sheet must contribute nothing, got %+v", found)
	}
}

func TestScanSheet_ColumnsBoundedByStreetRow(t *testing.T) {
	today := refDate(t, "2024-07-01")
	// The date row extends past the street row; the extra garbage column
	// is out of range and must not abort the scan.
	sheet := Sheet{
		Name: "Ragged",
		Rows: [][]string{
			{"", "21 July", "28 July", "garbage"},
			{"The Mall", "Refuse", "Recycling"},
		},
	}

	found, err := ScanSheet(sheet, "The Mall", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil || found.Date.Day() != 21 {
		t.Fatalf("expected 21 July, got %+v", found)
	}
}

func TestScanSheet_NoColumnsInRange(t *testing.T) {
	today := refDate(t, "2024-07-01")
	sheet := Sheet{
		Name: "Street only",
		Rows: [][]string{
			{"", "21 July"},
			{"The Mall"},
		},
	}

	found, err := ScanSheet(sheet, "The Mall", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for a street row with no candidate columns, got %+v", found)
	}
}

func TestScanWorkbook_ReducesAcrossSheets(t *testing.T) {
	today := refDate(t, "2024-07-01")
	wb := &Workbook{Sheets: []Sheet{
		{
			Name: "Late",
			Rows: [][]string{
				{"", "4 August"},
				{"The Mall", "Refuse"},
			},
		},
		{
			Name: "Early",
			Rows: [][]string{
				{"", "21 July"},
				{"The Mall", "Recycling"},
			},
		},
	}}

	found := ScanWorkbook(wb, "The Mall", today)
	if found == nil || found.Date.Day() != 21 {
		t.Fatalf("expected 21 July, got %+v", found)
	}
	if found.ServiceType != ServiceRecycling {
		t.Errorf("unexpected service type: %q", found.ServiceType)
	}
}

func TestScanWorkbook_BadSheetsContributeNothing(t *testing.T) {
	today := refDate(t, "2024-07-01")
	wb := &Workbook{Sheets: []Sheet{
		{
			Name: "Corrupt",
			Rows: [][]string{
				{"", "bogus"},
				{"The Mall", "Refuse"},
			},
		},
		{
			Name: "Good",
			Rows: [][]string{
				{"", "28 July"},
				{"The Mall", "Refuse"},
			},
		},
	}}

	found := ScanWorkbook(wb, "The Mall", today)
	if found == nil || found.Date.Day() != 28 {
		t.Fatalf("expected 28 July from the good sheet, got %+v", found)
	}
}

func TestScanWorkbook_NothingFound(t *testing.T) {
	today := refDate(t, "2024-07-01")
	wb := &Workbook{Sheets: []Sheet{mallSheet()}}

	if found := ScanWorkbook(wb, "Missing Road", today); found != nil {
		t.Errorf("expected nil, got %+v", found)
	}
}

func TestEarlier(t *testing.T) {
	a := &ServiceDetails{Date: time.Date(2024, 7, 21, 0, 0, 0, 0, time.UTC)}
	b := &ServiceDetails{Date: time.Date(2024, 7, 28, 0, 0, 0, 0, time.UTC)}

	if !earlier(a, b) {
		t.Error("a should be earlier than b")
	}
	if earlier(b, a) {
		t.Error("b should not be earlier than a")
	}
	if earlier(nil, a) {
		t.Error("nil never replaces a candidate")
	}
	if !earlier(a, nil) {
		t.Error("any candidate replaces nil")
	}
	if earlier(a, a) {
		t.Error("equal dates keep the incumbent")
	}
}
