package schedule

// The scan algorithm runs over this plain grid rather than any decoding
// library's object model. Loaders (xlsx, pdf) materialise a Workbook and
// release their underlying document before returning, so a scan never
// holds a file handle.

// Sheet is a 2-D grid of cell texts, addressed row-major. Rows are ragged:
// each row ends at its last populated cell.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is an ordered sequence of sheets, as stored in the document.
type Workbook struct {
	Sheets []Sheet
}

// cellAt returns the cell text at (row, col), or "" when the address is
// outside the populated grid.
func (s Sheet) cellAt(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// firstCell visits rows in ascending index order and cells within each row
// in ascending column order, returning the first cell satisfying pred.
// Scanning stops at the first match.
func firstCell(s Sheet, pred func(text string) bool) (row, col int, ok bool) {
	for r, cells := range s.Rows {
		for c, text := range cells {
			if pred(text) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
