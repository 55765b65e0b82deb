package schedule

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"binwatch/internal/storage"

	"github.com/xuri/excelize/v2"
)

// writeXLSXFixture writes a one-sheet timetable workbook. rows[0] is the
// date header, the rest are street rows.
func writeXLSXFixture(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for r, cells := range rows {
		for c, text := range cells {
			if text == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, text); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
}

func useTestCouncil(t *testing.T, dataDir string) {
	t.Helper()
	t.Setenv("BINWATCH_COUNCILS_JSON", fmt.Sprintf(
		`[{"key":"testshire","name":"Testshire","landingUrl":"","dataDir":%q}]`, dataDir))
}

func pinnedService(st storage.Storage, today time.Time) *Service {
	cfg := Config{Now: func() time.Time { return today }}
	if st == nil {
		return NewService(cfg)
	}
	return NewServiceWithStorage(cfg, st)
}

func TestNextCollection_ScansXLSXDirectory(t *testing.T) {
	dir := t.TempDir()
	useTestCouncil(t, dir)

	writeXLSXFixture(t, filepath.Join(dir, "area1.xlsx"), [][]string{
		{"", "21 July", "28 July"},
		{"The Mall", "Refuse", "Recycling"},
	})

	svc := pinnedService(nil, refDate(t, "2024-07-01"))
	resp, err := svc.NextCollection(context.Background(), "testshire", "The Mall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Collection == nil {
		t.Fatal("expected a collection")
	}
	if resp.Collection.Date.Day() != 21 || resp.Collection.ServiceType != ServiceRefuse {
		t.Errorf("unexpected collection: %+v", resp.Collection)
	}
	if resp.Council != "testshire" || resp.Street != "The Mall" {
		t.Errorf("unexpected echo fields: %+v", resp)
	}
}

func TestNextCollection_ReducesAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	useTestCouncil(t, dir)

	writeXLSXFixture(t, filepath.Join(dir, "late.xlsx"), [][]string{
		{"", "4 August"},
		{"The Mall", "Refuse"},
	})
	writeXLSXFixture(t, filepath.Join(dir, "early.xlsx"), [][]string{
		{"", "21 July"},
		{"The Mall", "Recycling"},
	})

	svc := pinnedService(nil, refDate(t, "2024-07-01"))
	resp, err := svc.NextCollection(context.Background(), "testshire", "The Mall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Collection == nil || resp.Collection.Date.Day() != 21 {
		t.Fatalf("expected the earlier document to win, got %+v", resp.Collection)
	}
}

func TestNextCollection_NothingFoundIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	useTestCouncil(t, dir)

	writeXLSXFixture(t, filepath.Join(dir, "area1.xlsx"), [][]string{
		{"", "21 July"},
		{"Acacia Avenue", "Refuse"},
	})

	svc := pinnedService(nil, refDate(t, "2024-07-01"))
	resp, err := svc.NextCollection(context.Background(), "testshire", "The Mall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Collection != nil {
		t.Errorf("expected a definitive nothing-found, got %+v", resp.Collection)
	}
}

func TestNextCollection_MissingDataDirIsFatal(t *testing.T) {
	useTestCouncil(t, filepath.Join(t.TempDir(), "nope"))

	svc := pinnedService(nil, refDate(t, "2024-07-01"))
	if _, err := svc.NextCollection(context.Background(), "testshire", "The Mall"); err == nil {
		t.Fatal("expected an error for an unreadable data directory")
	}
}

func TestNextCollection_UnknownCouncil(t *testing.T) {
	svc := pinnedService(nil, refDate(t, "2024-07-01"))
	if _, err := svc.NextCollection(context.Background(), "atlantis", "The Mall"); err == nil {
		t.Fatal("expected an error for an unknown council")
	}
}

func TestNextCollection_SnapshotReusedSameDay(t *testing.T) {
	dir := t.TempDir()
	useTestCouncil(t, dir)

	writeXLSXFixture(t, filepath.Join(dir, "area1.xlsx"), [][]string{
		{"", "21 July"},
		{"The Mall", "Refuse"},
	})

	st := storage.NewMemory()
	today := refDate(t, "2024-07-01")
	svc := pinnedService(st, today)

	first, err := svc.NextCollection(context.Background(), "testshire", "The Mall")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if first.Collection == nil || first.Collection.Date.Day() != 21 {
		t.Fatalf("unexpected first result: %+v", first.Collection)
	}

	// Replace the timetable; a same-day lookup must still serve the
	// snapshot.
	writeXLSXFixture(t, filepath.Join(dir, "area1.xlsx"), [][]string{
		{"", "28 July"},
		{"The Mall", "Recycling"},
	})

	second, err := svc.NextCollection(context.Background(), "testshire", "The Mall")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if second.Collection == nil || second.Collection.Date.Day() != 21 {
		t.Errorf("expected the cached result, got %+v", second.Collection)
	}
}

func TestNextCollection_StaleSnapshotRescans(t *testing.T) {
	dir := t.TempDir()
	useTestCouncil(t, dir)

	writeXLSXFixture(t, filepath.Join(dir, "area1.xlsx"), [][]string{
		{"", "21 July"},
		{"The Mall", "Refuse"},
	})

	st := storage.NewMemory()

	day1 := pinnedService(st, refDate(t, "2024-07-01"))
	if _, err := day1.NextCollection(context.Background(), "testshire", "The Mall"); err != nil {
		t.Fatalf("day 1 lookup: %v", err)
	}

	writeXLSXFixture(t, filepath.Join(dir, "area1.xlsx"), [][]string{
		{"", "28 July"},
		{"The Mall", "Recycling"},
	})

	// Yesterday's snapshot may point at a past date; a new day rescans.
	day2 := pinnedService(st, refDate(t, "2024-07-02"))
	resp, err := day2.NextCollection(context.Background(), "testshire", "The Mall")
	if err != nil {
		t.Fatalf("day 2 lookup: %v", err)
	}
	if resp.Collection == nil || resp.Collection.Date.Day() != 28 {
		t.Errorf("expected a rescan on a new day, got %+v", resp.Collection)
	}
}
