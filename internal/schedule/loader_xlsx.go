package schedule

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func init() {
	RegisterLoader(".xlsx", LoadXLSXWorkbook)
}

// LoadXLSXWorkbook reads an xlsx timetable into a Workbook. The excelize
// file is closed before returning, so the grid is the only thing a scan
// holds on to.
func LoadXLSXWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q of %s: %w", name, path, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}
	return wb, nil
}
