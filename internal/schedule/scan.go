package schedule

import (
	"fmt"
	"log"
	"time"
)

// ScanSheet extracts the earliest upcoming collection for a street from
// one sheet.
//
// Two anchor cells are located independently, each by a row-major scan of
// the whole grid: the cell whose text equals the street name exactly, and
// the first cell that resolves as a date. They need not share a row (some
// councils put the date header several rows above the street table) but
// their columns are assumed aligned.
//
// Candidates are read column by column to the right of the street anchor,
// bounded by the street row's last populated cell: the date comes from
// the date anchor's row, the service type from the street's own row. A
// single malformed date cell in that range discards the whole sheet.
//
// A nil, nil return means the sheet was well formed but had no columns in
// range; it contributes nothing.
func ScanSheet(sheet Sheet, street string, today time.Time) (*ServiceDetails, error) {
	streetRow, streetCol, ok := firstCell(sheet, func(text string) bool {
		return text == street
	})
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoStreetAnchor, street)
	}

	dateRow, _, ok := firstCell(sheet, func(text string) bool {
		return IsDateCell(text, today)
	})
	if !ok {
		return nil, ErrNoDateAnchor
	}

	var best *ServiceDetails
	for col := streetCol + 1; col < len(sheet.Rows[streetRow]); col++ {
		date, err := ResolveDate(sheet.cellAt(dateRow, col), today)
		if err != nil {
			return nil, fmt.Errorf("sheet %q column %d: %w", sheet.Name, col, err)
		}
		candidate := &ServiceDetails{
			Date:        date,
			ServiceType: ClassifyService(sheet.cellAt(streetRow, col)),
		}
		if earlier(candidate, best) {
			best = candidate
		}
	}
	return best, nil
}

// ScanWorkbook reduces a workbook to the earliest collection found on any
// of its sheets. Sheets that fail to scan contribute nothing; a workbook
// scan itself never fails.
func ScanWorkbook(wb *Workbook, street string, today time.Time) *ServiceDetails {
	var best *ServiceDetails
	for _, sheet := range wb.Sheets {
		found, err := ScanSheet(sheet, street, today)
		if err != nil {
			continue
		}
		if earlier(found, best) {
			best = found
		}
	}
	return best
}

// ScanDirectory folds every loadable timetable under root into the single
// earliest collection for the street. Only the failure to list the
// directory itself is fatal; a file that cannot be loaded is logged and
// skipped. Each document is fully materialised and released before the
// next file is opened.
//
// A nil, nil return means the directory was searched and nothing matched.
func ScanDirectory(root, street string, today time.Time) (*ServiceDetails, error) {
	paths, err := ListTimetableFiles(root)
	if err != nil {
		return nil, err
	}

	var best *ServiceDetails
	for _, path := range paths {
		wb, err := LoadWorkbook(path)
		if err != nil {
			log.Printf("schedule: skipping %s: %v", path, err)
			continue
		}
		if found := ScanWorkbook(wb, street, today); earlier(found, best) {
			best = found
		}
	}
	return best, nil
}
