package schedule

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

func init() {
	RegisterLoader(".pdf", LoadPDFTimetable)
}

// LoadPDFTimetable opens a council PDF calendar, extracts its plain text
// and delegates to ParseTimetableText.
func LoadPDFTimetable(path string) (*Workbook, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	rc, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	return ParseTimetableText(buf.String())
}

// ParseTimetableText shapes a plain-text council timetable into the same
// grid the xlsx loader produces, so one scanner serves both formats.
//
// The text layout councils use:
//
//	Collection dates: 21 July, 28 July, 4 August
//	The Mall: Refuse, Recycling, Refuse
//	Acacia Avenue: Recycling, Refuse, Recycling
//
// The dates line becomes a header row with an empty leading cell; each
// street line becomes a row with the street name in column 0, keeping the
// street and date rows column-aligned.
func ParseTimetableText(text string) (*Workbook, error) {
	var dateRow []string
	var streetRows [][]string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rest, ok := cutPrefixFold(line, "collection dates:"); ok {
			if dateRow != nil {
				continue // first dates line wins
			}
			dateRow = append([]string{""}, splitCells(rest)...)
			continue
		}

		street, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		row := append([]string{strings.TrimSpace(street)}, splitCells(rest)...)
		streetRows = append(streetRows, row)
	}

	if dateRow == nil {
		return nil, fmt.Errorf("pdf timetable: %w", ErrNoDateAnchor)
	}

	sheet := Sheet{Name: "Timetable", Rows: append([][]string{dateRow}, streetRows...)}
	return &Workbook{Sheets: []Sheet{sheet}}, nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

func splitCells(s string) []string {
	parts := strings.Split(s, ",")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}
